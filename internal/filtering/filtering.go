package filtering

import (
	"context"
	"fmt"
	"maps"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/records"
)

// Filter represents a single filtering step applied to jobs before ranking.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, jobs *records.Jobs) (*records.Jobs, Step, error)
}

// Deps aggregates dependencies shared across all filtering steps.
type Deps struct {
	Records *records.Client
	Scorer  *matching.Scorer
	Logger  *zap.Logger
	Resume  *records.Resume
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains configuration settings consumed by the filters.
type Config struct {
	Companies    []string `mapstructure:"exclude-companies"`
	ExcludeFile  string   `mapstructure:"exclude-file"`
	MinimumScore int      `mapstructure:"minimum-score"`
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// scoreCollector is implemented by filters that score jobs as a side effect.
type scoreCollector interface {
	Scores() map[string]matching.MatchResult
}

// Default returns the standard filter chain in execution order.
func Default(skipApplied bool) []Filter {
	return []Filter{
		NewAppliedHistory(skipApplied),
		NewCompanies(),
		NewExcludeFile(),
		NewMinimumScore(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the supplied filters sequentially. It returns the remaining jobs
// and any scores computed along the way, keyed by job id.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, jobs *records.Jobs) (*records.Jobs, map[string]matching.MatchResult, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	scores := make(map[string]matching.MatchResult)
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, deps, jobs)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		jobs = next

		if collector, ok := step.(scoreCollector); ok {
			maps.Copy(scores, collector.Scores())
		}
	}

	return jobs, scores, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
