package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/records"
)

type minimumScoreFilter struct {
	disabled bool
	reason   string
	minimum  int
	scores   map[string]matching.MatchResult
}

// NewMinimumScore creates a filter that scores every job against the résumé and
// drops the ones below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return "minimum_score" }

func (f *minimumScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minimumScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg != nil {
		f.minimum = cfg.MinimumScore
	}
	if f.minimum < 0 || f.minimum > 100 {
		return fmt.Errorf("minimum score must be within [0, 100], got %d", f.minimum)
	}
	return nil
}

func (f *minimumScoreFilter) Apply(ctx context.Context, deps Deps, jobs *records.Jobs) (*records.Jobs, Step, error) {
	initial := jobs.Len()
	if f.minimum == 0 {
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}
	if deps.Scorer == nil {
		return jobs, Step{}, fmt.Errorf("scorer is required")
	}
	if deps.Resume == nil {
		return jobs, Step{}, fmt.Errorf("resume is required for scoring")
	}

	f.scores = make(map[string]matching.MatchResult, initial)
	kept := make([]*records.Job, 0, initial)

	for _, job := range jobs.Items {
		if err := ctx.Err(); err != nil {
			return jobs, Step{}, err
		}

		result, err := deps.Scorer.ScoreOne(deps.Resume.CandidateProfile, job.JobRequirement)
		if err != nil {
			return jobs, Step{}, fmt.Errorf("score job %s: %w", job.ID, err)
		}

		if result.Score < f.minimum {
			deps.Logger.Debug("job below minimum score",
				zap.String("job_id", job.ID),
				zap.Int("score", result.Score),
			)
			continue
		}

		f.scores[job.ID] = *result
		kept = append(kept, job)
	}

	jobs.Items = kept

	if dropped := initial - len(kept); dropped > 0 {
		deps.Logger.Info("excluding jobs below minimum score",
			zap.Int("minimum_score", f.minimum),
			zap.Int("excluded", dropped),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *minimumScoreFilter) Scores() map[string]matching.MatchResult {
	if f.scores == nil {
		return map[string]matching.MatchResult{}
	}
	return f.scores
}

func (f *minimumScoreFilter) Status() Status {
	details := map[string]string{
		"minimum_score": strconv.Itoa(f.minimum),
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
