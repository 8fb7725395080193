package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/katalvlaran/lgeval/batch"
	"github.com/katalvlaran/lgeval/compare"
	"github.com/katalvlaran/lgeval/confusion"
	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/segment"
	"github.com/katalvlaran/lgeval/summary"
)

// matrixFilters are the label groups evaluated separately in matrix mode,
// in output order. The last pass ignores all of them.
var matrixFilters = []struct {
	suffix string
	label  string
}{
	{"Mat", "*M"},
	{"Col", "*C"},
	{"Row", "*R"},
	{"Cell", "*Cell"},
}

func runCompare(e *env, args []string) error {
	fs, c := newFlagSet(e, "compare", "output.lg target.lg")
	mode := fs.String("mode", "all", "output: all, diff or metrics")
	matrix := fs.String("matrix", "", "evaluate matrix label groups separately, writing <prefix>{Mat,Col,Row,Cell,Symb}.m")
	if err := e.parse(fs, c, args, 2, 2); err != nil {
		return err
	}
	outPath, targetPath := fs.Arg(0), fs.Arg(1)

	if *matrix != "" {
		return compareMatrix(e, outPath, targetPath, *matrix)
	}

	ctx, err := e.cfg.MetricContext()
	if err != nil {
		return err
	}
	out := core.ReadFile(outPath, core.WithLogger(e.log))
	target := core.ReadFile(targetPath, core.WithLogger(e.log))
	if p := prepare(c); p != nil {
		p(out, target)
	}
	res := compare.Compare(out, target, ctx, compare.WithLogger(e.log))

	switch *mode {
	case "all":
		if err := compare.WriteMetrics(e.stdout, res.Metrics); err != nil {
			return err
		}
		return compare.WriteDiff(e.stdout, res)
	case "diff":
		return compare.WriteDiff(e.stdout, res)
	case "metrics":
		return compare.WriteMetrics(e.stdout, res.Metrics)
	default:
		return fmt.Errorf("unknown mode %q", *mode)
	}
}

func compareMatrix(e *env, outPath, targetPath, prefix string) error {
	eval := func(ctx metric.Context, suffix string) error {
		out := core.ReadFile(outPath, core.WithLogger(e.log))
		target := core.ReadFile(targetPath, core.WithLogger(e.log))
		res := compare.Compare(out, target, ctx, compare.WithLogger(e.log))

		f, err := os.Create(prefix + suffix + ".m")
		if err != nil {
			return err
		}
		if err := compare.WriteMetrics(f, res.Metrics); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}

	ignore := make([]string, 0, len(matrixFilters))
	for _, mf := range matrixFilters {
		f := metric.NewFiltered(nil, []string{mf.label})
		if err := eval(metric.Context{Node: f, Edge: f}, mf.suffix); err != nil {
			return err
		}
		ignore = append(ignore, mf.label)
	}
	f := metric.NewFiltered(ignore, nil)
	return eval(metric.Context{Node: f, Edge: f}, "Symb")
}

// newRunner builds a batch runner from the settings.
func newRunner(e *env, c *common, mat, matObj bool) (*batch.Runner, error) {
	ctx, err := e.cfg.MetricContext()
	if err != nil {
		return nil, err
	}
	r := &batch.Runner{
		Context:        ctx,
		Workers:        e.cfg.Workers(),
		Logger:         e.log,
		PrimitiveSizes: e.cfg.ConfusionSizes(),
		ObjectSizes:    e.cfg.ObjectSizes(),
		Prepare:        prepare(c),
	}
	if mat {
		r.Matrix = confusion.NewMatrix(ctx)
	}
	if matObj {
		r.ObjectMatrix = confusion.NewObjectMatrix(ctx)
	}
	return r, nil
}

func readPairs(path string, gtFirst bool) ([]batch.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pairs, err := batch.ReadPairs(f)
	if err != nil {
		return nil, err
	}
	if gtFirst {
		pairs = batch.GTFirst(pairs)
	}
	return pairs, nil
}

func writeConfusion(w io.Writer, r *batch.Runner, minCount int) error {
	if r.Matrix != nil {
		if err := r.Matrix.WriteReport(w, minCount, minCount); err != nil {
			return err
		}
	}
	if r.ObjectMatrix != nil {
		if err := r.ObjectMatrix.WriteReport(w, minCount); err != nil {
			return err
		}
	}
	return nil
}

func runBatch(e *env, args []string) error {
	fs, c := newFlagSet(e, "batch", "pairs.txt")
	gtFirst := fs.Bool("gt-first", false, "the first column of the list is the ground truth")
	mat := fs.Bool("mat", false, "confusion matrix of primitive substructures")
	matObj := fs.Bool("matobj", false, "confusion matrix of object substructures")
	workers := fs.Int("workers", 0, "concurrent comparisons (0: from settings)")
	minCount := fs.Int("min-count", 0, "smallest error count listed in the confusion report (0: from settings)")
	if err := e.parse(fs, c, args, 1, 1); err != nil {
		return err
	}
	list := fs.Arg(0)
	if *gtFirst {
		e.cfg.Set("batch.gt_first", true)
	}
	if *workers > 0 {
		e.cfg.Set("batch.workers", *workers)
	}
	if *minCount > 0 {
		e.cfg.Set("confusion.min_count", *minCount)
	}

	pairs, err := readPairs(list, e.cfg.GTFirst())
	if err != nil {
		return err
	}
	r, err := newRunner(e, c, *mat || e.cfg.PrimitiveConfusion(), *matObj || e.cfg.ObjectConfusion())
	if err != nil {
		return err
	}

	mf, err := os.Create(list + ".m")
	if err != nil {
		return err
	}
	defer mf.Close()
	df, err := os.Create(list + ".diff")
	if err != nil {
		return err
	}
	defer df.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := r.Run(ctx, pairs, mf, df); err != nil {
		return err
	}
	if err := errors.Join(mf.Close(), df.Close()); err != nil {
		return err
	}
	e.log.Info().Str("metrics", list+".m").Str("diff", list+".diff").Msg("batch written")

	if r.Matrix == nil && r.ObjectMatrix == nil {
		return nil
	}
	report := list + ".confusion.txt"
	rf, err := os.Create(report)
	if err != nil {
		return err
	}
	if err := writeConfusion(rf, r, e.cfg.MinCount()); err != nil {
		rf.Close()
		return err
	}
	e.log.Info().Str("report", report).Msg("confusion report written")
	return rf.Close()
}

func runConfHist(e *env, args []string) error {
	fs, c := newFlagSet(e, "confhist", "pairs.txt")
	size := fs.Int("size", 0, "substructure size (0: sizes from settings)")
	minCount := fs.Int("min", 0, "smallest error count listed (0: from settings)")
	matObj := fs.Bool("obj", false, "object substructures instead of primitive ones")
	outPath := fs.String("o", "", "report file (default stdout)")
	if err := e.parse(fs, c, args, 1, 1); err != nil {
		return err
	}
	if *size > 0 {
		e.cfg.Set("confusion.sizes", []int{*size})
		e.cfg.Set("confusion.object_sizes", []int{*size})
	}
	if *minCount > 0 {
		e.cfg.Set("confusion.min_count", *minCount)
	}

	pairs, err := readPairs(fs.Arg(0), e.cfg.GTFirst())
	if err != nil {
		return err
	}
	r, err := newRunner(e, c, !*matObj, *matObj)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := r.Run(ctx, pairs, nil, nil); err != nil {
		return err
	}

	w, closeFn, err := e.create(*outPath)
	if err != nil {
		return err
	}
	if err := writeConfusion(w, r, e.cfg.MinCount()); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runFilter(e *env, args []string) error {
	fs, c := newFlagSet(e, "filter", "input.lg [output.lg]")
	if err := e.parse(fs, c, args, 1, 2); err != nil {
		return err
	}
	ctx, err := e.cfg.MetricContext()
	if err != nil {
		return err
	}

	g := core.ReadFile(fs.Arg(0), core.WithLogger(e.log))
	removed := segment.PruneNonTreeEdges(g, ctx)
	for _, re := range removed {
		e.log.Info().
			Str("from", re.Key.From).
			Str("to", re.Key.To).
			Str("labels", re.Labels.String()).
			Msg("removed non-tree edge")
	}

	w, closeFn, err := e.create(fs.Arg(1))
	if err != nil {
		return err
	}
	if _, err := g.WriteTo(w); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runSummary(e *env, args []string) error {
	fs, c := newFlagSet(e, "summary", "metrics.m")
	csvOut := fs.Bool("csv", false, "one CSV line instead of the report")
	header := fs.Bool("header", false, "with -csv, write the column names first")
	if err := e.parse(fs, c, args, 1, 1); err != nil {
		return err
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()
	recs, err := summary.ReadMetrics(f)
	if err != nil {
		return err
	}
	s := summary.Summarize(recs)

	if !*csvOut {
		return s.WriteReport(e.stdout)
	}
	if *header {
		if _, err := fmt.Fprintln(e.stdout, summary.CSVHeader); err != nil {
			return err
		}
	}
	return s.WriteCSV(e.stdout)
}

func runDiffSum(e *env, args []string) error {
	fs, c := newFlagSet(e, "diffsum", "file.diff [labels.txt]")
	outPath := fs.String("o", "", "report file (default stdout)")
	if err := e.parse(fs, c, args, 1, 2); err != nil {
		return err
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()
	diffs, err := summary.ReadDiff(f)
	if err != nil {
		return err
	}
	lc := summary.NewLabelConfusion()
	for _, d := range diffs {
		lc.Add(d)
	}

	var inv *summary.Inventory
	if fs.NArg() == 2 {
		lf, err := os.Open(fs.Arg(1))
		if err != nil {
			return err
		}
		inv, err = summary.ReadInventory(lf)
		lf.Close()
		if err != nil {
			return err
		}
	}
	e.log.Debug().Int("pairs", len(diffs)).Int("nodeErrors", lc.Nodes.Total()).
		Int("edgeErrors", lc.Edges.Total()).Msg("diff read")

	w, closeFn, err := e.create(*outPath)
	if err != nil {
		return err
	}
	if err := lc.WriteLabelReport(w, fs.Arg(0), inv); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

// readList returns the first column of every non-comment line of path.
func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		if p := strings.TrimSpace(rec[0]); p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}

func runLabels(e *env, args []string) error {
	fs, c := newFlagSet(e, "labels", "files.txt [labels.txt]")
	if err := e.parse(fs, c, args, 1, 2); err != nil {
		return err
	}
	paths, err := readList(fs.Arg(0))
	if err != nil {
		return err
	}

	inv := summary.NewInventory()
	for _, p := range paths {
		g := core.ReadFile(p, core.WithLogger(e.log))
		if g.HasError() {
			e.log.Warn().Str("file", p).Int("issues", len(g.Issues())).Msg("label graph has errors")
		}
		inv.Add(g)
	}

	w, closeFn, err := e.create(fs.Arg(1))
	if err != nil {
		return err
	}
	if _, err := inv.WriteTo(w); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func runLg2Or(e *env, args []string) error {
	fs, c := newFlagSet(e, "lg2or", "input.lg [output.or]")
	if err := e.parse(fs, c, args, 1, 2); err != nil {
		return err
	}
	ctx, err := e.cfg.MetricContext()
	if err != nil {
		return err
	}

	g := core.ReadFile(fs.Arg(0), core.WithLogger(e.log))
	w, closeFn, err := e.create(fs.Arg(1))
	if err != nil {
		return err
	}
	if err := segment.WriteObjects(w, g, ctx); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}
