package matching

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ScoreBatch scores every job for one candidate and returns the results
// sorted by score, highest first. Equal scores keep the order of jobs.
// The whole batch fails on the first job that violates the contract.
func (s *Scorer) ScoreBatch(candidate CandidateProfile, jobs []JobRequirement) ([]MatchResult, error) {
	results := make([]MatchResult, 0, len(jobs))
	for idx, job := range jobs {
		result, err := s.ScoreOne(candidate, job)
		if err != nil {
			return nil, fmt.Errorf("job #%d (%s): %w", idx, job.ID, err)
		}
		results = append(results, *result)
	}

	SortByScore(results)

	return results, nil
}

// SortByScore orders results by score, highest first. Equal scores keep their order.
func SortByScore(results []MatchResult) {
	slices.SortStableFunc(results, func(a, b MatchResult) int {
		return b.Score - a.Score
	})
}

// BestAcrossResumes keeps, for every job, the highest score reached by any of
// the résumés along with that résumé's matched skills. The earlier résumé wins
// a tie. Results are sorted by score, highest first, stable on job order.
func (s *Scorer) BestAcrossResumes(ctx context.Context, resumes []CandidateProfile, jobs []JobRequirement) ([]BestMatch, error) {
	if len(resumes) == 0 || len(jobs) == 0 {
		return []BestMatch{}, nil
	}

	perResume := make([][]MatchResult, len(resumes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for idx, resume := range resumes {
		idx, resume := idx, resume
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results := make([]MatchResult, 0, len(jobs))
			for _, job := range jobs {
				result, err := s.ScoreOne(resume, job)
				if err != nil {
					return fmt.Errorf("resume #%d (%s), job %s: %w", idx, resume.ID, job.ID, err)
				}
				results = append(results, *result)
			}
			perResume[idx] = results
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := make([]BestMatch, len(jobs))
	for jobIdx := range jobs {
		for resumeIdx, results := range perResume {
			candidate := results[jobIdx]
			if resumeIdx == 0 || candidate.Score > best[jobIdx].Score {
				best[jobIdx] = BestMatch{
					MatchResult: candidate,
					ResumeID:    resumes[resumeIdx].ID,
				}
			}
		}
	}

	slices.SortStableFunc(best, func(a, b BestMatch) int {
		return b.Score - a.Score
	})

	s.logger.Debug("best matches across resumes computed",
		zap.Int("resumes", len(resumes)),
		zap.Int("jobs", len(jobs)),
	)

	return best, nil
}

// Top returns at most n leading entries. A non-positive n returns all of them.
func Top[T any](items []T, n int) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
