package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"passat/internal/model"
)

// Step is one classification stage. Steps receive the in-progress
// Classification and fill in the fields they own.
//
// Design decision: We use an interface rather than function types because:
//  1. It allows steps to carry configuration state (masker, rule table,
//     resolver)
//  2. It provides a Name() method for logging and debugging
//  3. It's more extensible for future stages
type Step interface {
	// Do executes the step. The steps shipped here cannot fail, but the
	// error return keeps the contract open for stages that can.
	Do(ctx context.Context, c *model.Classification) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes an ordered list of steps for every password.
// The steps are mutually independent given the password, so order does not
// affect results; it is fixed only to keep logs deterministic.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a Pipeline with the given options.
// Steps are added with AddStep/AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{steps: make([]Step, 0)}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Len returns the number of configured steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Execute runs all steps against one classification.
// It checks for cancellation between steps and stops on the first step
// error.
func (p *Pipeline) Execute(ctx context.Context, c *model.Classification) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := step.Do(ctx, c); err != nil {
			return fmt.Errorf("step %s: %w", step.Name(), err)
		}
	}
	return nil
}
