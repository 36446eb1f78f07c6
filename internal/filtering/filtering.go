package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
)

// Filter represents a single filtering step applied to interview results.
type Filter interface {
	Name() string
	IsEnabled() bool
	Apply(ctx context.Context, r *interviewer.Results) (*interviewer.Results, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// Run executes the enabled steps in order and recomputes the summary from the
// submissions that are left.
func (f *Filtering) Run(ctx context.Context, r *interviewer.Results) (*interviewer.Results, error) {
	filtered := false
	for _, step := range f.steps {
		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		r = next
		filtered = true
	}

	if filtered {
		if r.Unfiltered == nil {
			backend := r.Summary
			r.Unfiltered = &backend
		}
		r.Summary = interviewer.Summarize(r.Submissions)
	}

	return r, nil
}
