package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJobs() []JobRequirement {
	return []JobRequirement{
		{ID: "ops", Title: "DevOps Engineer", RequiredSkills: []string{"Kubernetes", "Terraform"}, ExperienceRequired: 4},
		{ID: "frontend", Title: "React Developer", RequiredSkills: []string{"React", "TypeScript", "Node.js"}, ExperienceRequired: 2},
		{ID: "empty", Title: "Intern"},
		{ID: "go", Title: "Go Developer", RequiredSkills: []string{"Go", "PostgreSQL"}, ExperienceRequired: 3},
		{ID: "frontend-2", Title: "React Developer", RequiredSkills: []string{"React", "TypeScript", "Node.js"}, ExperienceRequired: 2},
	}
}

func TestScoreBatchSortsDescending(t *testing.T) {
	t.Parallel()

	scorer := newTestScorer(t)
	candidate := CandidateProfile{Skills: []string{"React", "TypeScript", "Go"}, ExperienceYears: 3}
	jobs := sampleJobs()

	results, err := scorer.ScoreBatch(candidate, jobs)
	require.NoError(t, err)
	require.Len(t, results, len(jobs))

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.JobID)
	}
	// Equal scores keep input order.
	assert.Equal(t, []string{"frontend", "frontend-2", "go", "ops", "empty"}, ids)
}

func TestScoreBatchEmpty(t *testing.T) {
	t.Parallel()

	results, err := newTestScorer(t).ScoreBatch(CandidateProfile{}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestScoreBatchFailsOnContractViolation(t *testing.T) {
	t.Parallel()

	jobs := append(sampleJobs(), JobRequirement{Title: "No ID", RequiredSkills: []string{"Go"}})

	results, err := newTestScorer(t).ScoreBatch(CandidateProfile{Skills: []string{"Go"}}, jobs)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, results)
}

func TestBestAcrossResumes(t *testing.T) {
	t.Parallel()

	scorer := newTestScorer(t)
	resumes := []CandidateProfile{
		{ID: "frontend-cv", Skills: []string{"React", "TypeScript", "Node.js"}, ExperienceYears: 2},
		{ID: "backend-cv", Skills: []string{"Go", "PostgreSQL", "Kubernetes"}, ExperienceYears: 5},
	}
	jobs := []JobRequirement{
		{ID: "go", Title: "Go Developer", RequiredSkills: []string{"Go", "PostgreSQL"}, ExperienceRequired: 3},
		{ID: "frontend", Title: "React Developer", RequiredSkills: []string{"React", "TypeScript"}, ExperienceRequired: 2},
		{ID: "ops", Title: "SRE", RequiredSkills: []string{"Kubernetes", "Terraform"}, ExperienceRequired: 4},
	}

	best, err := scorer.BestAcrossResumes(context.Background(), resumes, jobs)
	require.NoError(t, err)
	require.Len(t, best, len(jobs))

	byJob := make(map[string]BestMatch, len(best))
	for _, b := range best {
		byJob[b.JobID] = b
	}

	assert.Equal(t, "backend-cv", byJob["go"].ResumeID)
	assert.Equal(t, []string{"go", "postgresql"}, byJob["go"].SkillMatch.Matched)
	assert.Equal(t, "frontend-cv", byJob["frontend"].ResumeID)
	assert.Equal(t, "backend-cv", byJob["ops"].ResumeID)
	assert.Equal(t, []string{"kubernetes"}, byJob["ops"].SkillMatch.Matched)

	for i := 1; i < len(best); i++ {
		assert.GreaterOrEqual(t, best[i-1].Score, best[i].Score)
	}

	for _, b := range best {
		for _, resume := range resumes {
			single, err := scorer.ScoreOne(resume, jobByID(jobs, b.JobID))
			require.NoError(t, err)
			assert.GreaterOrEqual(t, b.Score, single.Score)
		}
	}
}

func TestBestAcrossResumesTieKeepsFirstResume(t *testing.T) {
	t.Parallel()

	resumes := []CandidateProfile{
		{ID: "first", Skills: []string{"Go"}},
		{ID: "second", Skills: []string{"go"}},
	}
	jobs := []JobRequirement{{ID: "j", Title: "Backend", RequiredSkills: []string{"Go"}}}

	best, err := newTestScorer(t).BestAcrossResumes(context.Background(), resumes, jobs)
	require.NoError(t, err)
	require.Len(t, best, 1)
	assert.Equal(t, "first", best[0].ResumeID)
}

func TestBestAcrossResumesEmptyInputs(t *testing.T) {
	t.Parallel()

	scorer := newTestScorer(t)

	best, err := scorer.BestAcrossResumes(context.Background(), nil, sampleJobs())
	require.NoError(t, err)
	assert.Empty(t, best)

	best, err = scorer.BestAcrossResumes(context.Background(), []CandidateProfile{{ID: "r"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, best)
}

func TestBestAcrossResumesPropagatesErrors(t *testing.T) {
	t.Parallel()

	resumes := []CandidateProfile{{ID: "ok"}, {ID: "broken", ExperienceYears: -3}}

	_, err := newTestScorer(t).BestAcrossResumes(context.Background(), resumes, sampleJobs())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSortByScoreIsStable(t *testing.T) {
	t.Parallel()

	results := []MatchResult{{JobID: "a", Score: 10}, {JobID: "b", Score: 50}, {JobID: "c", Score: 10}, {JobID: "d", Score: 50}}
	SortByScore(results)

	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.JobID)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids)
}

func TestTop(t *testing.T) {
	t.Parallel()

	items := []int{5, 4, 3}
	assert.Equal(t, []int{5, 4}, Top(items, 2))
	assert.Equal(t, items, Top(items, 0))
	assert.Equal(t, items, Top(items, 10))
}

func jobByID(jobs []JobRequirement, id string) JobRequirement {
	for _, job := range jobs {
		if job.ID == id {
			return job
		}
	}
	return JobRequirement{}
}
