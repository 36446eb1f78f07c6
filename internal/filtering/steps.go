package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
)

type recommendationFilter struct {
	allowed map[interviewer.Recommendation]struct{}
}

// NewRecommendation keeps submissions whose recommendation is one of values.
// It is disabled when values is empty.
func NewRecommendation(values []string) (Filter, error) {
	allowed := make(map[interviewer.Recommendation]struct{}, len(values))
	for _, v := range values {
		r := interviewer.Recommendation(strings.ToLower(strings.TrimSpace(v)))
		if r == "" {
			continue
		}
		if !r.Valid() && r != interviewer.Pending {
			return nil, fmt.Errorf("unknown recommendation %q", v)
		}
		allowed[r] = struct{}{}
	}
	return &recommendationFilter{allowed: allowed}, nil
}

func (f *recommendationFilter) Name() string { return "recommendation" }

func (f *recommendationFilter) IsEnabled() bool { return len(f.allowed) > 0 }

func (f *recommendationFilter) Apply(_ context.Context, r *interviewer.Results) (*interviewer.Results, Step, error) {
	initial := r.Len()
	dropped := r.Retain(func(s *interviewer.Submission) bool {
		_, ok := f.allowed[s.Recommendation]
		return ok
	})
	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}

type minScoreFilter struct {
	min float64
}

// NewMinScore keeps submissions scoring at least min. It is disabled for
// min <= 0.
func NewMinScore(min float64) Filter {
	return &minScoreFilter{min: min}
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) IsEnabled() bool { return f.min > 0 }

func (f *minScoreFilter) Apply(_ context.Context, r *interviewer.Results) (*interviewer.Results, Step, error) {
	initial := r.Len()
	dropped := r.Retain(func(s *interviewer.Submission) bool {
		return s.OverallScore >= f.min
	})
	return r, Step{Initial: initial, Dropped: len(dropped), Left: r.Len()}, nil
}
