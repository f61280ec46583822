package matching

import "fmt"

// Tier is the label derived from a published score.
type Tier string

const (
	// TierNone marks results that could not be evaluated.
	TierNone      Tier = "none"
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierGaps      Tier = "gaps"
)

const noSkillsAnalysis = "No skills required for this job."

var tierSentences = map[Tier]string{
	TierExcellent: "Excellent match! You have most required skills.",
	TierGood:      "Good potential. You meet core requirements.",
	TierGaps:      "Some gaps found. Consider upskilling.",
}

// TierFor places a score into a tier using strict comparisons.
func (t Thresholds) TierFor(score int) Tier {
	switch {
	case score > t.Excellent:
		return TierExcellent
	case score > t.Good:
		return TierGood
	default:
		return TierGaps
	}
}

// Analysis renders the human readable summary of a score.
func Analysis(score int, tier Tier) string {
	sentence, ok := tierSentences[tier]
	if !ok {
		return noSkillsAnalysis
	}
	return fmt.Sprintf("Match Score: %d%%. %s", score, sentence)
}

// Badge is the colour class used when displaying a score.
type Badge string

const (
	BadgeHigh   Badge = "high"
	BadgeMedium Badge = "medium"
	BadgeLow    Badge = "low"
)

// BadgeFor returns the display badge for a score.
func BadgeFor(score int) Badge {
	switch {
	case score >= 80:
		return BadgeHigh
	case score >= 50:
		return BadgeMedium
	default:
		return BadgeLow
	}
}
