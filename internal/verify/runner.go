package verify

import (
	"io"
	"log/slog"
	"time"

	"github.com/example/kernelcheck/internal/bench"
	"github.com/example/kernelcheck/internal/sample"
)

// Options are the numeric knobs of a verification run.
type Options struct {
	// Trials is the number of random inputs a value check draws before the
	// final, reported sample.
	Trials int
	// Tolerance is the error threshold of every check. Tolerances overrides
	// it for the named cases.
	Tolerance  float64
	Tolerances map[string]float64

	// Rows is the size of the Richardson table, Step its initial half-width.
	Rows int
	Step float64
	// Bench enables the throughput measurement of each value check.
	Bench       bool
	BenchWindow time.Duration
	// Verbose writes full input and output dumps for every final sample and
	// Jacobian, not only for mismatches.
	Verbose bool
}

// DefaultOptions returns the options of a standard run.
func DefaultOptions() Options {
	return Options{
		Trials:      1000,
		Tolerance:   DefaultTolerance,
		Rows:        10,
		Step:        2,
		Bench:       true,
		BenchWindow: bench.DefaultWindow,
		Verbose:     true,
	}
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	check  Options
	logger *slog.Logger
	clock  bench.Clock
}

func defaultOptions() options {
	return options{
		check:  DefaultOptions(),
		logger: slog.Default(),
		clock:  time.Now,
	}
}

// Option configures a Runner.
type Option func(*options)

// WithOptions replaces the numeric options.
func WithOptions(o Options) Option {
	return func(opts *options) { opts.check = o }
}

// WithLogger sets the slog.Logger used for mismatch and verdict logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock driving the throughput window.
func WithClock(c bench.Clock) Option {
	return func(o *options) { o.clock = c }
}

// ---------------------------------------------------------------------------
// Runner
// ---------------------------------------------------------------------------

// Runner executes checks. It is not safe for concurrent use: all checks draw
// from one random source.
type Runner struct {
	src   *sample.Source
	out   io.Writer
	opts  Options
	log   *slog.Logger
	clock bench.Clock
}

// NewRunner returns a Runner drawing inputs from src and writing diagnostic
// dumps to w.
func NewRunner(src *sample.Source, w io.Writer, optFns ...Option) *Runner {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if w == nil {
		w = io.Discard
	}

	return &Runner{
		src:   src,
		out:   w,
		opts:  opts.check,
		log:   opts.logger,
		clock: opts.clock,
	}
}

// Options returns the numeric options in effect.
func (r *Runner) Options() Options { return r.opts }

func (r *Runner) tolerance(name string) float64 {
	return ToleranceFor(r.opts.Tolerances, name, r.opts.Tolerance)
}

func (r *Runner) rows() int {
	if r.opts.Rows < 1 {
		return 1
	}
	return r.opts.Rows
}
