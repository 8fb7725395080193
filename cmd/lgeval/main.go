// Command lgeval compares label graphs and summarizes the results.
//
// Usage:
//
//	lgeval compare [flags] output.lg target.lg
//	lgeval batch [flags] pairs.txt
//	lgeval confhist [flags] pairs.txt
//	lgeval filter [flags] input.lg [output.lg]
//	lgeval summary [flags] metrics.m
//	lgeval diffsum [flags] file.diff [labels.txt]
//	lgeval labels [flags] files.txt [labels.txt]
//	lgeval lg2or [flags] input.lg [output.or]
//
// Every subcommand accepts -config (a YAML, TOML or JSON settings file),
// -log-level, -node-metric, -edge-metric and -inter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/lgeval/config"
	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
)

// errUsage reports bad arguments; the flag set has already printed usage.
var errUsage = errors.New("lgeval: invalid arguments")

// env is what every subcommand runs with.
type env struct {
	cfg    *config.Config
	log    zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"compare":  {"compare two label graphs", runCompare},
	"batch":    {"compare the pairs of a list file", runBatch},
	"confhist": {"confusion histograms of substructure errors", runConfHist},
	"filter":   {"remove relation edges outside the spanning tree", runFilter},
	"summary":  {"summarize a metrics file", runSummary},
	"diffsum":  {"label confusion matrices of a diff file", runDiffSum},
	"labels":   {"node and edge labels used by a list of label graphs", runLabels},
	"lg2or":    {"write a label graph in object/relation form", runLg2Or},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "lgeval: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	e := &env{cfg: config.NewConfig(), stdout: stdout, stderr: stderr}
	if err := cmd.run(e, args[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "lgeval %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: lgeval <command> [flags] [args]")
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-9s %s\n", n, commands[n].summary)
	}
}

// common are the flags shared by all subcommands.
type common struct {
	configPath string
	logLevel   string
	nodeMetric string
	edgeMetric string
	inter      bool
}

func newFlagSet(e *env, name, args string) (*flag.FlagSet, *common) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	c := &common{}
	fs.StringVar(&c.configPath, "config", "", "settings file")
	fs.StringVar(&c.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&c.nodeMetric, "node-metric", "", "node label metric: default, synonym, filtered, intersect")
	fs.StringVar(&c.edgeMetric, "edge-metric", "", "edge label metric: default, synonym, filtered, intersect")
	fs.BoolVar(&c.inter, "inter", false, "use the intersection metric and label missing edges")
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "usage: lgeval %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}
	return fs, c
}

// parse parses args, applies the shared flags over the settings file and
// checks the positional argument count.
func (e *env) parse(fs *flag.FlagSet, c *common, args []string, minArgs, maxArgs int) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if n := fs.NArg(); n < minArgs || n > maxArgs {
		fs.Usage()
		return errUsage
	}

	if c.configPath != "" {
		if err := e.cfg.LoadFromFile(c.configPath); err != nil {
			return fmt.Errorf("loading %s: %w", c.configPath, err)
		}
	}
	if c.logLevel != "" {
		e.cfg.Set("logging.level", c.logLevel)
	}
	if c.nodeMetric != "" {
		e.cfg.Set("metric.node", c.nodeMetric)
	}
	if c.edgeMetric != "" {
		e.cfg.Set("metric.edge", c.edgeMetric)
	}
	if c.inter {
		e.cfg.Set("metric.node", metric.NameIntersect)
		e.cfg.Set("metric.edge", metric.NameIntersect)
	}
	e.log = e.cfg.NewLogger(e.stderr)
	return nil
}

// prepare returns the graph preparation for -inter, or nil.
func prepare(c *common) func(out, target *core.Graph) {
	if !c.inter {
		return nil
	}
	return func(out, target *core.Graph) {
		out.LabelMissingEdges()
		target.LabelMissingEdges()
	}
}

// create opens path for writing, or returns stdout when path is empty.
func (e *env) create(path string) (io.Writer, func() error, error) {
	if path == "" {
		return e.stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
