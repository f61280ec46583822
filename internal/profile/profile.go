package profile

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/spigell/resume-matcher/internal/matching"
)

const (
	// MaxTextLength caps the stored résumé text, in runes.
	MaxTextLength = 2000
	// maxExperienceYears rejects numbers that are unlikely to be years of experience.
	maxExperienceYears = 50

	EducationPhD      = "PhD"
	EducationMaster   = "Master's Degree"
	EducationBachelor = "Bachelor's Degree"
	EducationUnknown  = "Not specified"
)

// DefaultTaxonomy is the skill list searched for when none is configured.
var DefaultTaxonomy = []string{
	"javascript", "typescript", "react", "node.js", "python", "java", "c++", "c#", "go", "rust",
	"html", "css", "sql", "postgresql", "mongodb", "aws", "docker", "kubernetes", "git", "graphql",
	"next.js", "vue", "angular", "express", "django", "flask", "springboot", "redux", "tailwind",
	"agile", "scrum", "jira", "figma", "machine learning", "ai", "nlp", "tensorflow", "pytorch",
	"pandas", "numpy", "scikit-learn", "keras", "opencv", "azure", "gcp", "linux", "bash",
}

var (
	experienceRe = regexp.MustCompile(`(\d+)\+?\s*(?:year|yr)s?`)
	emailRe      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe      = regexp.MustCompile(`(\+?\d{1,3}[-.]?)?\(?\d{3}\)?[-.]?\d{3}[-.]?\d{4}`)
	spaceRe      = regexp.MustCompile(`\s+`)

	educationKeywords = []struct {
		level    string
		keywords []string
	}{
		{level: EducationPhD, keywords: []string{"phd", "doctorate"}},
		{level: EducationMaster, keywords: []string{"master", "mba", "m.s.", "m.tech"}},
		{level: EducationBachelor, keywords: []string{"bachelor", "b.s.", "b.a.", "b.tech", "btech"}},
	}
)

// Extracted is what a plain-text résumé yields.
type Extracted struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Education       string   `json:"education"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Text            string   `json:"text"`
}

// Extract finds taxonomy skills, years of experience, education level and
// contacts in text. Skill matching is a plain substring search, so short
// entries like "go" also match inside longer words.
func Extract(text string, taxonomy []string) Extracted {
	if len(taxonomy) == 0 {
		taxonomy = DefaultTaxonomy
	}

	clean := strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
	lower := strings.ToLower(clean)

	return Extracted{
		Skills:          findSkills(lower, taxonomy),
		ExperienceYears: findExperience(lower),
		Education:       findEducation(lower),
		Email:           emailRe.FindString(clean),
		Phone:           phoneRe.FindString(clean),
		Text:            truncate(clean, MaxTextLength),
	}
}

// Profile converts the extraction into a candidate profile with the given id.
func (e Extracted) Profile(id string) matching.CandidateProfile {
	return matching.CandidateProfile{
		ID:              id,
		Skills:          e.Skills,
		ExperienceYears: e.ExperienceYears,
		Education:       e.Education,
		RawText:         e.Text,
	}
}

func findSkills(lower string, taxonomy []string) []string {
	seen := make(map[string]struct{}, len(taxonomy))
	skills := make([]string, 0)

	for _, skill := range taxonomy {
		normalized := matching.NormalizeSkill(skill)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		if strings.Contains(lower, normalized) {
			seen[normalized] = struct{}{}
			skills = append(skills, normalized)
		}
	}

	return skills
}

func findExperience(lower string) int {
	match := experienceRe.FindStringSubmatch(lower)
	if match == nil {
		return 0
	}

	years, err := strconv.Atoi(match[1])
	if err != nil || years >= maxExperienceYears {
		return 0
	}
	return years
}

func findEducation(lower string) string {
	for _, level := range educationKeywords {
		for _, keyword := range level.keywords {
			if strings.Contains(lower, keyword) {
				return level.level
			}
		}
	}
	return EducationUnknown
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
