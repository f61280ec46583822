package matching

import "errors"

// ErrInvalidInput is returned when a profile or job violates the scoring contract.
var ErrInvalidInput = errors.New("invalid input")

// CandidateProfile is the extracted content of a single résumé.
type CandidateProfile struct {
	// ID labels results in the best-across-résumés mode. Optional.
	ID              string   `json:"id,omitempty"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Education       string   `json:"education,omitempty"`
	// RawText is only used by the role/title heuristic.
	RawText string `json:"raw_text,omitempty"`
}

// JobRequirement is the part of a job posting the scorer looks at.
type JobRequirement struct {
	ID                 string   `json:"id"`
	Title              string   `json:"title"`
	RequiredSkills     []string `json:"required_skills"`
	ExperienceRequired int      `json:"experience_required"`
}

// SkillMatchResult partitions the normalized required skills of a job.
type SkillMatchResult struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Score   float64  `json:"score"`
}

// MatchResult is the score of one (candidate, job) pair.
type MatchResult struct {
	JobID           string           `json:"job_id"`
	Score           int              `json:"score"`
	SkillMatch      SkillMatchResult `json:"skill_match"`
	ExperienceScore float64          `json:"experience_score"`
	RoleScore       float64          `json:"role_score"`
	Tier            Tier             `json:"tier"`
	Analysis        string           `json:"analysis"`
}

// BestMatch is the highest scoring résumé for a job.
type BestMatch struct {
	MatchResult
	ResumeID string `json:"resume_id"`
}
