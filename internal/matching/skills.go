package matching

import (
	"math"
	"strings"
)

// NormalizeSkill lower-cases and trims a skill string.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// NormalizeSkills normalizes every entry. Order and duplicates are preserved.
func NormalizeSkills(skills []string) []string {
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		normalized = append(normalized, NormalizeSkill(skill))
	}
	return normalized
}

// Satisfies reports whether the required skill is contained in, or contains,
// any of the candidate skills. Both sides are normalized before comparison.
// Candidate skills that are blank after normalization never match.
func Satisfies(required string, candidate []string) bool {
	return satisfies(NormalizeSkill(required), candidateSet(candidate))
}

// MatchSkills splits the required skills into matched and missing ones.
//
// Duplicates in required are kept: every occurrence is matched on its own and
// counts towards the denominator of the score. Both lists hold normalized
// skills in the order of required.
func MatchSkills(candidate, required []string) SkillMatchResult {
	result := SkillMatchResult{
		Matched: make([]string, 0, len(required)),
		Missing: make([]string, 0),
	}

	if len(required) == 0 {
		return result
	}

	skills := candidateSet(candidate)
	for _, req := range NormalizeSkills(required) {
		if satisfies(req, skills) {
			result.Matched = append(result.Matched, req)
			continue
		}
		result.Missing = append(result.Missing, req)
	}

	result.Score = 100 * float64(len(result.Matched)) / float64(len(required))

	return result
}

// SkillCoverage returns the rounded percentage of required skills covered by
// the candidate. It is 0 when either list is empty.
func SkillCoverage(candidate, required []string) int {
	if len(required) == 0 || len(candidate) == 0 {
		return 0
	}
	return int(math.Round(MatchSkills(candidate, required).Score))
}

func satisfies(required string, candidate []string) bool {
	for _, skill := range candidate {
		if strings.Contains(skill, required) || strings.Contains(required, skill) {
			return true
		}
	}
	return false
}

// candidateSet normalizes candidate skills and drops blank ones, since an empty
// string is a substring of every requirement.
func candidateSet(candidate []string) []string {
	skills := make([]string, 0, len(candidate))
	for _, skill := range candidate {
		if normalized := NormalizeSkill(skill); normalized != "" {
			skills = append(skills, normalized)
		}
	}
	return skills
}
