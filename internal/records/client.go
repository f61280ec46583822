package records

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// DefaultJobsLimit caps how many active jobs are loaded for ranking.
const DefaultJobsLimit = 50

type Client struct {
	store     Store
	logger    *zap.Logger
	JobsLimit int
}

func New(store Store, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		store:     store,
		logger:    logger,
		JobsLimit: DefaultJobsLimit,
	}
}

// ActiveJobs returns the newest active jobs, at most JobsLimit of them.
func (c *Client) ActiveJobs(ctx context.Context) (*Jobs, error) {
	recs, err := c.store.Find(ctx, CollectionJobs, Query{
		Where:   map[string]any{"is_active": true},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   c.JobsLimit,
	})
	if err != nil {
		return nil, err
	}

	jobs := &Jobs{Items: make([]*Job, 0, len(recs))}
	for _, rec := range recs {
		job, err := DecodeJob(rec)
		if err != nil {
			return nil, err
		}
		jobs.Items = append(jobs.Items, job)
	}

	c.logger.Debug("loaded active jobs", zap.Int("count", jobs.Len()))

	return jobs, nil
}

func (c *Client) Job(ctx context.Context, id string) (*Job, error) {
	rec, err := c.findOne(ctx, CollectionJobs, id)
	if err != nil {
		return nil, err
	}
	return DecodeJob(rec)
}

func (c *Client) Resume(ctx context.Context, id string) (*Resume, error) {
	rec, err := c.findOne(ctx, CollectionResumes, id)
	if err != nil {
		return nil, err
	}
	return DecodeResume(rec)
}

// UserResumes returns every résumé owned by the user, newest first.
func (c *Client) UserResumes(ctx context.Context, userID string) ([]*Resume, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}

	recs, err := c.store.Find(ctx, CollectionResumes, Query{
		Where:   map[string]any{"user_id": userID},
		OrderBy: "created_at",
		Desc:    true,
	})
	if err != nil {
		return nil, err
	}

	resumes := make([]*Resume, 0, len(recs))
	for _, rec := range recs {
		resume, err := DecodeResume(rec)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}

	c.logger.Debug("loaded user resumes", zap.String("user_id", userID), zap.Int("count", len(resumes)))

	return resumes, nil
}

// AppliedJobIDs returns ids of jobs the user already applied to.
func (c *Client) AppliedJobIDs(ctx context.Context, userID string) ([]string, error) {
	recs, err := c.store.Find(ctx, CollectionApplications, Query{
		Where: map[string]any{"user_id": userID},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		app, err := DecodeApplication(rec)
		if err != nil {
			return nil, err
		}
		ids = append(ids, app.JobID)
	}

	return ids, nil
}

func (c *Client) findOne(ctx context.Context, collection, id string) (Record, error) {
	if id == "" {
		return nil, fmt.Errorf("%s id is required", collection)
	}

	recs, err := c.store.Find(ctx, collection, Query{})
	if err != nil {
		return nil, err
	}

	for _, rec := range recs {
		if valueAsString(rec["id"]) == id {
			return rec, nil
		}
	}

	return nil, fmt.Errorf("%s %q: %w", collection, id, ErrNotFound)
}
