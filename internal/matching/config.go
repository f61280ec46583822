package matching

import (
	"errors"
	"fmt"
	"math"
)

const weightsTolerance = 1e-6

// Weights are the shares of each sub-score in the published score.
type Weights struct {
	Skill      float64 `mapstructure:"skill" json:"skill"`
	Experience float64 `mapstructure:"experience" json:"experience"`
	Role       float64 `mapstructure:"role" json:"role"`
}

// Thresholds split published scores into tiers. Comparisons are strict.
type Thresholds struct {
	Excellent int `mapstructure:"excellent" json:"excellent"`
	Good      int `mapstructure:"good" json:"good"`
}

// RoleBonus holds the role sub-score values of the title heuristic.
type RoleBonus struct {
	TitleInText  float64 `mapstructure:"title-in-text" json:"title_in_text"`
	SkillInTitle float64 `mapstructure:"skill-in-title" json:"skill_in_title"`
}

// Config is bound to a Scorer at construction.
type Config struct {
	Weights    Weights    `mapstructure:"weights" json:"weights"`
	Thresholds Thresholds `mapstructure:"thresholds" json:"thresholds"`
	RoleBonus  RoleBonus  `mapstructure:"role-bonus" json:"role_bonus"`
	// Workers limits how many résumés are scored at once by BestAcrossResumes.
	Workers int `mapstructure:"workers" json:"workers"`
}

// DefaultConfig returns the weights and thresholds of the job board.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Skill:      0.70,
			Experience: 0.20,
			Role:       0.10,
		},
		Thresholds: Thresholds{
			Excellent: 80,
			Good:      60,
		},
		RoleBonus: RoleBonus{
			TitleInText:  100,
			SkillInTitle: 50,
		},
		Workers: 4,
	}
}

// Validate checks that the config produces scores in [0,100].
func (c Config) Validate() error {
	w := c.Weights
	if w.Skill < 0 || w.Experience < 0 || w.Role < 0 {
		return errors.New("weights must not be negative")
	}

	if sum := w.Skill + w.Experience + w.Role; math.Abs(sum-1) > weightsTolerance {
		return fmt.Errorf("weights must sum to 1, got %.4f", sum)
	}

	if c.Thresholds.Good > c.Thresholds.Excellent {
		return fmt.Errorf("good threshold (%d) is above excellent threshold (%d)", c.Thresholds.Good, c.Thresholds.Excellent)
	}

	for name, bonus := range map[string]float64{
		"title-in-text":  c.RoleBonus.TitleInText,
		"skill-in-title": c.RoleBonus.SkillInTitle,
	} {
		if bonus < 0 || bonus > 100 {
			return fmt.Errorf("role bonus %s must be within [0,100], got %v", name, bonus)
		}
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	return nil
}
