package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/matching"
	"github.com/spigell/resume-matcher/internal/profile"
	"github.com/spigell/resume-matcher/internal/records"
)

func TestGetConfigDefaults(t *testing.T) {
	t.Setenv("RESUME_MATCHER_STORE_JOBS", "/data/jobs.yaml")

	config, err := getConfig()
	require.NoError(t, err)

	assert.Equal(t, matching.DefaultConfig(), config.Matching)
	assert.Equal(t, records.DefaultJobsLimit, config.Store.JobsLimit)
	assert.Equal(t, "/data/jobs.yaml", config.Store.Jobs)
	assert.Equal(t, "/data/jobs.yaml", config.Store.Paths()[records.CollectionJobs])
	assert.Empty(t, config.Store.Paths()[records.CollectionApplications])
}

func TestRankingActions(t *testing.T) {
	t.Parallel()

	r := &ranking{jobs: &records.Jobs{}, results: []matching.MatchResult{{JobID: "1"}}}

	assert.Equal(t,
		[]string{PromptPrint, PromptBreakdown, PromptReportByCompanies, PromptResultsToFile, PromptExit},
		r.actions(""),
	)
	assert.Contains(t, r.actions("excluded.json"), PromptAppendToExcludeFile)

	r.results = nil
	assert.NotContains(t, r.actions("excluded.json"), PromptAppendToExcludeFile)
}

func testJobs() *records.Jobs {
	return &records.Jobs{Items: []*records.Job{
		{JobRequirement: matching.JobRequirement{ID: "1", Title: "Go Developer", RequiredSkills: []string{"Go", "SQL"}}},
		{JobRequirement: matching.JobRequirement{ID: "2", Title: "Designer", RequiredSkills: []string{"Figma"}}},
	}}
}

func TestRankJobsReusesFilterScores(t *testing.T) {
	t.Parallel()

	scorer, err := matching.NewScorer(matching.DefaultConfig(), nil)
	require.NoError(t, err)

	resume := &records.Resume{CandidateProfile: matching.CandidateProfile{ID: "r1", Skills: []string{"Go"}}}
	scores := map[string]matching.MatchResult{
		"1": {JobID: "1", Score: 11},
		"2": {JobID: "2", Score: 42},
	}

	results, err := rankJobs(scorer, resume, testJobs(), scores)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2", results[0].JobID)
	assert.Equal(t, 42, results[0].Score)
	assert.Equal(t, 11, results[1].Score)
}

func TestRankJobsScoresWhenFilterScoresAreIncomplete(t *testing.T) {
	t.Parallel()

	scorer, err := matching.NewScorer(matching.DefaultConfig(), nil)
	require.NoError(t, err)

	resume := &records.Resume{CandidateProfile: matching.CandidateProfile{ID: "r1", Skills: []string{"Go"}}}

	for _, scores := range []map[string]matching.MatchResult{nil, {"1": {JobID: "1", Score: 1}}} {
		results, err := rankJobs(scorer, resume, testJobs(), scores)
		require.NoError(t, err)
		require.Len(t, results, 2)
		// 50*0.7 + 100*0.2 + 50*0.1
		assert.Equal(t, "1", results[0].JobID)
		assert.Equal(t, 60, results[0].Score)
		assert.Equal(t, "2", results[1].JobID)
	}
}

func TestScoreExtracted(t *testing.T) {
	t.Parallel()

	scorer, err := matching.NewScorer(matching.DefaultConfig(), nil)
	require.NoError(t, err)

	extracted := profile.Extract("Go developer with 4 years of SQL and Docker", nil)
	job := testJobs().Items[0]
	job.ExperienceRequired = 2

	match, err := scoreExtracted(scorer, extracted, "cv.txt", job)
	require.NoError(t, err)

	assert.Equal(t, extracted, match.Profile)
	assert.Equal(t, "1", match.Match.JobID)
	assert.Equal(t, 100.0, match.Match.SkillMatch.Score)
	assert.Equal(t, 100.0, match.Match.ExperienceScore)
	// The title is in the text.
	assert.Equal(t, 100.0, match.Match.RoleScore)
	assert.Equal(t, 100, match.Match.Score)

	_, err = scoreExtracted(scorer, extracted, "cv.txt", &records.Job{})
	assert.ErrorIs(t, err, matching.ErrInvalidInput)
}
