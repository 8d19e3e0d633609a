package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"passat/internal/classify"
	"passat/internal/config"
	"passat/internal/input"
	"passat/internal/model"
	"passat/internal/stats"
)

// lineBuffer is the channel capacity between the producer, the workers, and
// the fold goroutine. Large enough to keep workers busy across scheduling
// hiccups, small enough to bound memory for pathological inputs.
const lineBuffer = 256

// record is one input line annotated with its 1-based line number.
type record struct {
	n    int
	text string
}

// outcome is the per-line result handed to the fold goroutine.
// Exactly one of the fields is meaningful: skipped lines (empty candidates
// or records dropped under the decode policy) carry a nil Classification.
type outcome struct {
	skipped bool
	c       *model.Classification
}

// Runner drives a source through the pipeline with a worker pool and folds
// the results into the shared aggregator.
//
// Design decision: We use errgroup with a fixed worker count rather than a
// goroutine per line because inputs are routinely tens of millions of lines.
// Results are folded by a single owner goroutine so the aggregator's counter
// maps need no locking.
type Runner struct {
	pipeline *Pipeline
	workers  int
	logger   *slog.Logger
	policy   config.DecodePolicy
	progress func(n int)
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithWorkers sets the classification worker count. Values below 1 are
// ignored; 1 degenerates to a sequential pass.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithRunnerLogger sets a custom logger.
func WithRunnerLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithDecodePolicy selects the malformed-$HEX policy. The default is
// config.DecodeSkip.
func WithDecodePolicy(policy config.DecodePolicy) RunnerOption {
	return func(r *Runner) {
		r.policy = policy
	}
}

// WithProgress registers a callback invoked from the fold goroutine with
// the number of lines folded since the previous call. Used for progress
// display; the callback must not block for long.
func WithProgress(fn func(n int)) RunnerOption {
	return func(r *Runner) {
		r.progress = fn
	}
}

// NewRunner creates a Runner over the given pipeline.
func NewRunner(p *Pipeline, opts ...RunnerOption) *Runner {
	r := &Runner{
		pipeline: p,
		workers:  config.DefaultWorkers,
		policy:   config.DecodeSkip,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Run processes one source to completion, folding every line into agg.
//
// Callers typically hand in a fresh per-source aggregator and merge it into
// the run-wide one only on success: statistics must reflect completed
// sources only, and an error here (cancelled context, or a malformed $HEX
// record under the abort policy) leaves agg partially populated.
func (r *Runner) Run(ctx context.Context, src *input.Source, agg *stats.Aggregator) error {
	g, gctx := errgroup.WithContext(ctx)

	lines := make(chan record, lineBuffer)
	results := make(chan outcome, lineBuffer)

	// Producer: read lines in order.
	g.Go(func() error {
		defer close(lines)
		n := 0
		return src.EachLine(gctx, func(line string) error {
			n++
			select {
			case lines <- record{n: n, text: line}:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	// Workers: classify lines. Fuzzy matching dominates here.
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			for rec := range lines {
				out, err := r.process(gctx, src.Name(), rec)
				if err != nil {
					return err
				}
				select {
				case results <- out:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Single owner folds results into the shared counters.
	foldDone := make(chan struct{})
	go func() {
		defer close(foldDone)
		for out := range results {
			if out.skipped {
				agg.RecordLine()
			} else {
				agg.Record(out.c)
			}
			if r.progress != nil {
				r.progress(1)
			}
		}
	}()

	err := g.Wait()
	<-foldDone
	if err != nil {
		return err
	}

	agg.AddSource(src.Name())
	return nil
}

// process classifies a single line. A nil error with a skipped outcome
// means the line counts as read but yields no password.
func (r *Runner) process(ctx context.Context, source string, rec record) (outcome, error) {
	candidate := classify.ExtractPassword(rec.text)
	if candidate == "" {
		return outcome{skipped: true}, nil
	}

	password, err := classify.DecodeHexEscape(candidate)
	if err != nil {
		if r.policy == config.DecodeAbort {
			return outcome{}, fmt.Errorf("%s: line %d: %w", source, rec.n, err)
		}
		r.logger.Warn("skipping record with malformed hex escape",
			"source", source,
			"line_number", rec.n,
			"error", err,
		)
		return outcome{skipped: true}, nil
	}

	c := &model.Classification{
		Password: password,
		Length:   utf8.RuneCountInString(password),
	}
	if err := r.pipeline.Execute(ctx, c); err != nil {
		return outcome{}, err
	}

	r.logger.Debug("classified password",
		"password", password,
		"shape", c.Shape,
		"taxonomy", c.TaxonomyLabels,
		"categories", c.Categories,
	)
	return outcome{c: c}, nil
}
