package records

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-matcher/internal/matching"
)

func testJobs() *Jobs {
	return &Jobs{Items: []*Job{
		{JobRequirement: matching.JobRequirement{ID: "1", Title: "Go Developer"}, Company: "Acme", ExternalLink: "https://jobs.example.com/1"},
		{JobRequirement: matching.JobRequirement{ID: "2", Title: "React Developer"}, Company: "Globex"},
		{JobRequirement: matching.JobRequirement{ID: "3", Title: "SRE"}, Company: "Acme"},
		{JobRequirement: matching.JobRequirement{ID: "4", Title: "Intern"}},
	}}
}

func TestJobsExcludeKeepsOrder(t *testing.T) {
	t.Parallel()

	jobs := testJobs()
	excluded := jobs.Exclude(JobCompanyField, []string{"Acme"})

	assert.Equal(t, []string{"1", "3"}, excluded)
	require.Equal(t, 2, jobs.Len())
	assert.Equal(t, "2", jobs.Items[0].ID)
	assert.Equal(t, "4", jobs.Items[1].ID)

	assert.Empty(t, jobs.Exclude(JobIDField, []string{"missing"}))
	assert.Equal(t, 2, jobs.Len())
}

func TestJobsRequirementsAndFind(t *testing.T) {
	t.Parallel()

	jobs := testJobs()
	reqs := jobs.Requirements()
	require.Len(t, reqs, 4)
	assert.Equal(t, "SRE", reqs[2].Title)

	assert.Equal(t, "Globex", jobs.FindByID("2").Company)
	assert.Nil(t, jobs.FindByID("nope"))
}

func TestReportByCompany(t *testing.T) {
	t.Parallel()

	jobs := testJobs()
	jobs.Items[0].RequiredSkills = []string{"Go", "Docker"}
	jobs.Items[3].RequiredSkills = []string{"Excel"}

	report := jobs.ReportByCompany([]matching.MatchResult{
		{JobID: "1", Score: 85, SkillMatch: matching.SkillMatchResult{Matched: []string{"go"}, Missing: []string{"docker"}}},
		{JobID: "4", Score: 10},
		{JobID: "ghost", Score: 99},
	}, []string{"Go"})

	require.Len(t, report, 2)
	require.Len(t, report["Acme"], 1)

	entry := report["Acme"][0]
	assert.Equal(t, "Go Developer", entry["title"])
	assert.Equal(t, "85", entry["score"])
	assert.Equal(t, "50", entry["coverage"])
	assert.Equal(t, "medium", entry["badge"])
	assert.Equal(t, "go", entry["matched"])
	assert.Equal(t, "docker", entry["missing"])

	assert.Equal(t, "0", report["Unknown"][0]["coverage"])
	assert.Equal(t, "low", report["Unknown"][0]["badge"])
}

func TestExcludedJobsRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "excluded.json")

	excluded, err := GetExcludedJobsFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, excluded.Items)

	jobs := testJobs()
	excluded.Append(jobs.ToExcluded(ExcludeActorUser, "not interested"))
	require.NoError(t, excluded.ToFile(path))

	// A shorter list must not leave stale bytes behind.
	short := &ExcludedJobs{Items: excluded.Items[:1]}
	require.NoError(t, short.ToFile(path))

	loaded, err := GetExcludedJobsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, loaded.JobIDs())
	assert.Equal(t, "not interested", loaded.Items[0].Reason)
	assert.Equal(t, "https://jobs.example.com/1", loaded.Items[0].URL)
}

func TestGetExcludedJobsFromFileErrors(t *testing.T) {
	t.Parallel()

	empty := writeFile(t, "empty.json", "\n")
	excluded, err := GetExcludedJobsFromFile(empty)
	require.NoError(t, err)
	assert.Empty(t, excluded.Items)

	_, err = GetExcludedJobsFromFile(writeFile(t, "broken.json", "{"))
	assert.Error(t, err)
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	name, err := DumpToTmpFile("jobs-*.json", testJobs())
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Go Developer")
}

func TestClientQueries(t *testing.T) {
	t.Parallel()

	applications := writeFile(t, "applications.yaml", `
- {id: 1, user_id: u1, job_id: 2, status: pending}
- {id: 2, user_id: u2, job_id: 1, status: rejected}
`)
	store := NewFileStore(map[string]string{
		CollectionJobs:         writeFile(t, "jobs.yaml", jobsYAML),
		CollectionResumes:      writeFile(t, "resumes.json", resumesJSON),
		CollectionApplications: applications,
	})
	client := New(store, nil)
	ctx := context.Background()

	jobs, err := client.ActiveJobs(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, jobs.Len())
	assert.Equal(t, "2", jobs.Items[0].ID)

	client.JobsLimit = 1
	jobs, err = client.ActiveJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, jobs.Len())

	job, err := client.Job(ctx, "3")
	require.NoError(t, err)
	assert.False(t, job.Active)

	_, err = client.Job(ctx, "100")
	assert.ErrorIs(t, err, ErrNotFound)

	resume, err := client.Resume(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Go developer", resume.RawText)

	resumes, err := client.UserResumes(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, resumes, 2)
	assert.Equal(t, "r2", resumes[0].ID)

	applied, err := client.AppliedJobIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, applied)
}
