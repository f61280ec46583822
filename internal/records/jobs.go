package records

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spigell/resume-matcher/internal/matching"
)

const (
	JobIDField      = "ID"
	JobCompanyField = "Company"
)

// ExcludeActorUser marks jobs excluded by hand.
const ExcludeActorUser = "user"

type Jobs struct {
	Items []*Job
}

// Job is a posting as stored, with the requirement the scorer needs.
type Job struct {
	matching.JobRequirement
	Company      string `json:"company,omitempty"`
	Location     string `json:"location,omitempty"`
	SalaryRange  string `json:"salary_range,omitempty"`
	ExternalLink string `json:"external_link,omitempty"`
	Active       bool   `json:"is_active"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// Resume is a stored résumé with the extracted profile.
type Resume struct {
	matching.CandidateProfile
	UserID   string `json:"user_id,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// Application records that a user already applied to a job.
type Application struct {
	ID     string
	UserID string
	JobID  string
	Status string
}

type ExcludedJobs struct {
	Items []*ExcludedJob
}

type ExcludedJob struct {
	ID         string
	URL        string
	Company    string
	Actor      string `json:",omitempty"`
	Reason     string `json:",omitempty"`
	ExcludedAt time.Time
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// Requirements returns the scoring view of every job, in list order.
func (j *Jobs) Requirements() []matching.JobRequirement {
	reqs := make([]matching.JobRequirement, 0, len(j.Items))
	for _, job := range j.Items {
		reqs = append(reqs, job.JobRequirement)
	}
	return reqs
}

// Exclude removes every job whose field equals one of the targets and returns
// the removed job ids. The order of the remaining jobs is kept.
func (j *Jobs) Exclude(name string, targets []string) []string {
	var excluded []string
	j.Items = slices.DeleteFunc(j.Items, func(job *Job) bool {
		if slices.Contains(targets, job.GetStringField(name)) {
			excluded = append(excluded, job.ID)
			return true
		}
		return false
	})
	return excluded
}

func (job *Job) GetStringField(name string) string {
	switch name {
	case JobIDField:
		return job.ID
	case JobCompanyField:
		return job.Company
	default:
		return ""
	}
}

func (j *Jobs) ToExcluded(actor, reason string) *ExcludedJobs {
	excluded := &ExcludedJobs{}
	for _, job := range j.Items {
		excluded.Items = append(excluded.Items, &ExcludedJob{
			ID:         job.ID,
			URL:        job.ExternalLink,
			Company:    job.Company,
			Actor:      actor,
			Reason:     reason,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// ReportByCompany groups scored jobs by company for display. The badge follows
// the share of required skills the candidate covers, as on the job board cards.
func (j *Jobs) ReportByCompany(results []matching.MatchResult, candidateSkills []string) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, result := range results {
		job := j.FindByID(result.JobID)
		if job == nil {
			continue
		}

		company := job.Company
		if company == "" {
			company = "Unknown"
		}

		coverage := matching.SkillCoverage(candidateSkills, job.RequiredSkills)

		report[company] = append(report[company], map[string]string{
			"title":    job.Title,
			"url":      job.ExternalLink,
			"location": job.Location,
			"salary":   job.SalaryRange,
			"score":    fmt.Sprintf("%d", result.Score),
			"coverage": fmt.Sprintf("%d", coverage),
			"badge":    string(matching.BadgeFor(coverage)),
			"matched":  strings.Join(result.SkillMatch.Matched, ", "),
			"missing":  strings.Join(result.SkillMatch.Missing, ", "),
		})
	}
	return report
}

// GetExcludedJobsFromFile reads the exclude file. A missing or empty file
// means nothing is excluded.
func GetExcludedJobsFromFile(path string) (*ExcludedJobs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ExcludedJobs{}, nil
	}
	if err != nil {
		return nil, err
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return &ExcludedJobs{}, nil
	}

	var excluded ExcludedJobs
	if err := json.Unmarshal(data, &excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedJobs) Append(s *ExcludedJobs) {
	e.Items = append(e.Items, s.Items...)
}

func (e *ExcludedJobs) JobIDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, job := range e.Items {
		ids = append(ids, job.ID)
	}
	return ids
}

func (e *ExcludedJobs) ToFile(path string) error {
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// DumpToTmpFile writes v as indented JSON to a new temporary file and returns its name.
func DumpToTmpFile(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
