package batch

import (
	"context"
	"io"
	"io/fs"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lgeval/compare"
	"github.com/katalvlaran/lgeval/confusion"
	"github.com/katalvlaran/lgeval/core"
	"github.com/katalvlaran/lgeval/metric"
	"github.com/katalvlaran/lgeval/smallgraph"
)

// Default substructure sizes for the confusion matrices.
var (
	DefaultPrimitiveSizes = []int{2, 3}
	DefaultObjectSizes    = []int{2}
)

// Runner compares pair lists.
type Runner struct {
	// FS resolves file names; nil means the local file system.
	FS fs.FS
	// Context holds the label metrics.
	Context metric.Context
	// Workers bounds the concurrent comparisons; <= 0 means runtime.NumCPU().
	Workers int
	// Logger receives load and comparison events.
	Logger zerolog.Logger
	// Matrix, when set, counts primitive-level confusions.
	Matrix *confusion.Matrix
	// ObjectMatrix, when set, counts object-level confusions.
	ObjectMatrix *confusion.ObjectMatrix
	// PrimitiveSizes and ObjectSizes select substructure sizes; nil means
	// DefaultPrimitiveSizes and DefaultObjectSizes.
	PrimitiveSizes []int
	ObjectSizes    []int
	// Prepare, when set, runs on both graphs of a pair before comparing.
	Prepare func(out, target *core.Graph)
}

// Outcome is the evaluation of one pair.
type Outcome struct {
	Pair         Pair
	Result       *compare.Result
	OutputError  bool // the output graph had recorded issues
	TargetError  bool // the target graph had recorded issues
	Mismatches   []smallgraph.Mismatch
	ObjectErrors []smallgraph.ObjectError
}

// Run evaluates pairs and writes their metrics and diffs in input order.
// Either writer may be nil. Confusion matrices are fed in input order too,
// so counts and representatives do not depend on scheduling.
//
// Run stops early, returning ctx.Err(), when ctx is cancelled; nothing is
// written in that case.
func (r *Runner) Run(ctx context.Context, pairs []Pair, metricsW, diffW io.Writer) ([]*Outcome, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	outcomes := make([]*Outcome, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.evaluate(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		if err := writeOutcome(o, metricsW, diffW); err != nil {
			return outcomes, err
		}
		r.count(o)
	}
	r.Logger.Info().Int("pairs", len(pairs)).Msg("batch evaluated")
	return outcomes, nil
}

func (r *Runner) load(name string) *core.Graph {
	if r.FS == nil {
		return core.ReadFile(name, core.WithLogger(r.Logger))
	}
	return core.Load(r.FS, name, core.WithLogger(r.Logger))
}

// evaluate owns both graphs of p for its whole duration.
func (r *Runner) evaluate(p Pair) *Outcome {
	out := r.load(p.Output)
	target := r.load(p.Target)
	if r.Prepare != nil {
		r.Prepare(out, target)
	}

	o := &Outcome{
		Pair:        p,
		OutputError: out.HasError(),
		TargetError: target.HasError(),
	}
	if o.OutputError || o.TargetError {
		r.Logger.Warn().
			Str("output", p.Output).
			Str("target", p.Target).
			Int("output_issues", len(out.Issues())).
			Int("target_issues", len(target.Issues())).
			Msg("comparing graphs with recorded issues")
	}

	o.Result = compare.Compare(out, target, r.Context, compare.WithLogger(r.Logger))
	if r.Matrix == nil && r.ObjectMatrix == nil {
		return o
	}

	nodeErrs, edgeErrs := o.Result.NodeErrors(), o.Result.EdgeErrors()
	if r.Matrix != nil {
		o.Mismatches = smallgraph.CompareSubStruct(out, target, r.Context, sizesOr(r.PrimitiveSizes, DefaultPrimitiveSizes)...)
		for _, m := range o.Mismatches {
			m.Output.MarkNodes(nodeErrs)
			m.Output.MarkEdges(edgeErrs)
		}
	}
	if r.ObjectMatrix != nil {
		o.ObjectErrors = smallgraph.CompareSegmentsStruct(out, target, r.Context, sizesOr(r.ObjectSizes, DefaultObjectSizes)...)
		for _, e := range o.ObjectErrors {
			e.Output.MarkNodes(nodeErrs)
			e.Output.MarkEdges(edgeErrs)
		}
	}
	return o
}

func (r *Runner) count(o *Outcome) {
	name := o.Pair.Name()
	if r.Matrix != nil {
		for _, m := range o.Mismatches {
			r.Matrix.Incr(m.Target, m.Output, name)
		}
	}
	if r.ObjectMatrix != nil {
		for _, e := range o.ObjectErrors {
			r.ObjectMatrix.Incr(e.Object, e.Target, e.Output, name)
		}
	}
}

func writeOutcome(o *Outcome, metricsW, diffW io.Writer) error {
	if metricsW != nil {
		if _, err := io.WriteString(metricsW, "*M,"+o.Pair.Output+","+o.Pair.Target+"\n"); err != nil {
			return err
		}
		if err := compare.WriteMetrics(metricsW, o.Result.Metrics); err != nil {
			return err
		}
	}
	if diffW != nil {
		if _, err := io.WriteString(diffW, "DIFF,"+o.Pair.Output+","+o.Pair.Target+"\n"); err != nil {
			return err
		}
		if err := compare.WriteDiff(diffW, o.Result); err != nil {
			return err
		}
	}
	return nil
}

func sizesOr(sizes, def []int) []int {
	if len(sizes) == 0 {
		return def
	}
	return sizes
}
