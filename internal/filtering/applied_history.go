package filtering

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/records"
)

type appliedHistoryFilter struct {
	ignore   bool
	disabled bool
	reason   string
}

// NewAppliedHistory creates a filter that removes jobs the résumé owner already applied to.
func NewAppliedHistory(ignore bool) Filter {
	return &appliedHistoryFilter{ignore: ignore}
}

func (f *appliedHistoryFilter) Name() string { return "applied_history" }

func (f *appliedHistoryFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *appliedHistoryFilter) IsEnabled() bool { return !f.disabled }

func (f *appliedHistoryFilter) Validate(*Config) error { return nil }

func (f *appliedHistoryFilter) Apply(ctx context.Context, deps Deps, jobs *records.Jobs) (*records.Jobs, Step, error) {
	initial := jobs.Len()
	if f.ignore {
		deps.Logger.Info("keeping already applied jobs", zap.String("reason", "skip requested via flag"))
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	if deps.Records == nil {
		return jobs, Step{}, fmt.Errorf("records client is required")
	}
	if deps.Resume == nil || deps.Resume.UserID == "" {
		deps.Logger.Info("resume has no owner; applied history is not checked")
		return jobs, Step{Initial: initial, Dropped: 0, Left: jobs.Len()}, nil
	}

	applied, err := deps.Records.AppliedJobIDs(ctx, deps.Resume.UserID)
	if err != nil {
		return jobs, Step{}, fmt.Errorf("get applications: %w", err)
	}

	excluded := jobs.Exclude(records.JobIDField, applied)
	if len(excluded) > 0 {
		deps.Logger.Info("excluding jobs based on my applications",
			zap.Strings("excluded_jobs", excluded),
			zap.Int("jobs_left", jobs.Len()),
		)
	}

	return jobs, Step{Initial: initial, Dropped: len(excluded), Left: jobs.Len()}, nil
}

func (f *appliedHistoryFilter) Status() Status {
	details := map[string]string{
		"exclude_applied": strconv.FormatBool(!f.ignore),
	}
	reason := f.reason
	if reason == "" && f.ignore {
		reason = "skip requested via flag"
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: reason, Details: details}
}
