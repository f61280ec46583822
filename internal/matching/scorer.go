package matching

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"
)

// Scorer computes match results for a bound Config.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	config Config
	logger *zap.Logger
}

// NewScorer validates cfg and binds it to a new Scorer.
func NewScorer(cfg Config, logger *zap.Logger) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("matching config: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scorer{config: cfg, logger: logger}, nil
}

// Config returns the bound configuration.
func (s *Scorer) Config() Config {
	return s.config
}

// ScoreOne scores a single (candidate, job) pair.
func (s *Scorer) ScoreOne(candidate CandidateProfile, job JobRequirement) (*MatchResult, error) {
	if err := validatePair(candidate, job); err != nil {
		return nil, err
	}

	if len(job.RequiredSkills) == 0 {
		s.logger.Debug("job has no required skills",
			zap.String("job_id", job.ID),
		)
		return &MatchResult{
			JobID: job.ID,
			SkillMatch: SkillMatchResult{
				Matched: []string{},
				Missing: []string{},
			},
			Tier:     TierNone,
			Analysis: noSkillsAnalysis,
		}, nil
	}

	skills := MatchSkills(candidate.Skills, job.RequiredSkills)
	experience := ExperienceScore(candidate.ExperienceYears, job.ExperienceRequired)
	role := s.roleScore(candidate, job.Title)

	w := s.config.Weights
	total := skills.Score*w.Skill + experience*w.Experience + role*w.Role
	score := clampScore(int(math.Round(total)))
	tier := s.config.Thresholds.TierFor(score)

	s.logger.Debug("scored job",
		zap.String("job_id", job.ID),
		zap.String("resume_id", candidate.ID),
		zap.Float64("skill_score", skills.Score),
		zap.Float64("experience_score", experience),
		zap.Float64("role_score", role),
		zap.Int("score", score),
	)

	return &MatchResult{
		JobID:           job.ID,
		Score:           score,
		SkillMatch:      skills,
		ExperienceScore: experience,
		RoleScore:       role,
		Tier:            tier,
		Analysis:        Analysis(score, tier),
	}, nil
}

// ExperienceScore is 100 when the candidate meets the requirement and the
// linear share of the requirement otherwise.
func ExperienceScore(candidateYears, requiredYears int) float64 {
	if candidateYears >= requiredYears {
		return 100
	}
	return 100 * float64(candidateYears) / float64(max(requiredYears, 1))
}

// roleScore is a weak hint that the candidate already holds the job title.
// With résumé text only the title found verbatim in it counts. Skills found in
// the title are checked only when there is no text.
func (s *Scorer) roleScore(candidate CandidateProfile, title string) float64 {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return 0
	}

	if candidate.RawText != "" {
		if strings.Contains(strings.ToLower(candidate.RawText), title) {
			return s.config.RoleBonus.TitleInText
		}
		return 0
	}

	for _, skill := range candidateSet(candidate.Skills) {
		if strings.Contains(title, skill) {
			return s.config.RoleBonus.SkillInTitle
		}
	}

	return 0
}

func validatePair(candidate CandidateProfile, job JobRequirement) error {
	if candidate.ExperienceYears < 0 {
		return fmt.Errorf("candidate experience %d is negative: %w", candidate.ExperienceYears, ErrInvalidInput)
	}
	if strings.TrimSpace(job.ID) == "" {
		return fmt.Errorf("job id is empty: %w", ErrInvalidInput)
	}
	if job.ExperienceRequired < 0 {
		return fmt.Errorf("job %s requires negative experience %d: %w", job.ID, job.ExperienceRequired, ErrInvalidInput)
	}
	return nil
}

func clampScore(score int) int {
	return min(max(score, 0), 100)
}
