package records

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"

	"github.com/spigell/resume-matcher/internal/matching"
)

// ErrMissingField is returned when a record lacks a field the scorer relies on.
var ErrMissingField = errors.New("missing required field")

var ErrNotFound = errors.New("not found")

var validate = validator.New()

type jobRecord struct {
	ID                 any      `mapstructure:"id"`
	Title              string   `mapstructure:"title" validate:"required"`
	Company            string   `mapstructure:"company"`
	Location           string   `mapstructure:"location"`
	SalaryRange        string   `mapstructure:"salary_range"`
	ExternalLink       string   `mapstructure:"external_link"`
	RequiredSkills     []string `mapstructure:"required_skills"`
	ExperienceRequired *float64 `mapstructure:"experience_required" validate:"omitempty,min=0"`
	IsActive           bool     `mapstructure:"is_active"`
	CreatedAt          any      `mapstructure:"created_at"`
}

type resumeRecord struct {
	ID              any      `mapstructure:"id"`
	UserID          any      `mapstructure:"user_id"`
	FileName        string   `mapstructure:"file_name"`
	Skills          []string `mapstructure:"skills"`
	ExperienceYears *float64 `mapstructure:"experience_years" validate:"omitempty,min=0"`
	Education       string   `mapstructure:"education"`
	// Only a string is used; other shapes are ignored.
	ParsedContent any `mapstructure:"parsed_content"`
}

type applicationRecord struct {
	ID     any    `mapstructure:"id"`
	UserID any    `mapstructure:"user_id"`
	JobID  any    `mapstructure:"job_id"`
	Status string `mapstructure:"status"`
}

// DecodeJob maps a job record onto a Job. Records without an id or title, or
// with a non-numeric or negative experience requirement, are rejected.
func DecodeJob(rec Record) (*Job, error) {
	var raw jobRecord
	if err := decode(rec, &raw); err != nil {
		return nil, fmt.Errorf("job %s: %w", describe(rec), err)
	}

	id := valueAsString(raw.ID)
	if id == "" {
		return nil, fmt.Errorf("job %s: id: %w", describe(rec), ErrMissingField)
	}

	experience, err := wholeYears(raw.ExperienceRequired)
	if err != nil {
		return nil, fmt.Errorf("job %s: experience_required: %w", id, err)
	}

	skills := raw.RequiredSkills
	if skills == nil {
		skills = []string{}
	}

	return &Job{
		JobRequirement: matching.JobRequirement{
			ID:                 id,
			Title:              raw.Title,
			RequiredSkills:     skills,
			ExperienceRequired: experience,
		},
		Company:      raw.Company,
		Location:     raw.Location,
		SalaryRange:  raw.SalaryRange,
		ExternalLink: raw.ExternalLink,
		Active:       raw.IsActive,
		CreatedAt:    valueAsString(raw.CreatedAt),
	}, nil
}

// DecodeResume maps a résumé record onto a CandidateProfile.
func DecodeResume(rec Record) (*Resume, error) {
	var raw resumeRecord
	if err := decode(rec, &raw); err != nil {
		return nil, fmt.Errorf("resume %s: %w", describe(rec), err)
	}

	id := valueAsString(raw.ID)
	if id == "" {
		return nil, fmt.Errorf("resume %s: id: %w", describe(rec), ErrMissingField)
	}

	experience, err := wholeYears(raw.ExperienceYears)
	if err != nil {
		return nil, fmt.Errorf("resume %s: experience_years: %w", id, err)
	}

	text, _ := raw.ParsedContent.(string)

	return &Resume{
		CandidateProfile: matching.CandidateProfile{
			ID:              id,
			Skills:          raw.Skills,
			ExperienceYears: experience,
			Education:       raw.Education,
			RawText:         text,
		},
		UserID:   valueAsString(raw.UserID),
		FileName: raw.FileName,
	}, nil
}

// DecodeApplication maps an application record.
func DecodeApplication(rec Record) (*Application, error) {
	var raw applicationRecord
	if err := decode(rec, &raw); err != nil {
		return nil, fmt.Errorf("application %s: %w", describe(rec), err)
	}

	jobID := valueAsString(raw.JobID)
	if jobID == "" {
		return nil, fmt.Errorf("application %s: job_id: %w", describe(rec), ErrMissingField)
	}

	return &Application{
		ID:     valueAsString(raw.ID),
		UserID: valueAsString(raw.UserID),
		JobID:  jobID,
		Status: raw.Status,
	}, nil
}

func decode(rec Record, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}

	if err := decoder.Decode(map[string]any(rec)); err != nil {
		return err
	}

	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("validation: %w", err)
	}

	return nil
}

func wholeYears(v *float64) (int, error) {
	if v == nil {
		return 0, nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v != math.Trunc(*v) {
		return 0, fmt.Errorf("%v is not a whole number of years", *v)
	}
	if *v < 0 {
		return 0, fmt.Errorf("%v is negative", *v)
	}
	return int(*v), nil
}

func describe(rec Record) string {
	if id := valueAsString(rec["id"]); id != "" {
		return id
	}
	return "<no id>"
}

func valueAsString(v any) string {
	if v == nil {
		return ""
	}

	switch typed := v.(type) {
	case string:
		return strings.TrimSpace(typed)
	case fmt.Stringer:
		return strings.TrimSpace(typed.String())
	default:
		return fmt.Sprintf("%v", v)
	}
}
