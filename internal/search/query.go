// Package search ranks candidates against free-text recruiter queries.
package search

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParsedQuery is the structured form of a search query.
type ParsedQuery struct {
	Skills             []string `json:"extracted_skills"`
	ExperienceKeywords []string `json:"experience_keywords"`
	Keywords           []string `json:"keywords"`
	MinExperience      *int     `json:"min_experience"`
	RawQuery           string   `json:"raw_query"`
	Augmented          bool     `json:"augmented"`
}

// AllKeywords returns role keywords followed by experience phrases.
func (q ParsedQuery) AllKeywords() []string {
	out := make([]string, 0, len(q.Keywords)+len(q.ExperienceKeywords))
	out = append(out, q.Keywords...)
	return append(out, q.ExperienceKeywords...)
}

// Experience hints, tried in order. The first pattern that matches wins.
var experiencePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*\+\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+)\s*(?:years?|yrs?)`),
	regexp.MustCompile(`(?i)(\d+)\s*\+?\s*năm`),
}

// RoleKeywords is the catalog of seniority and role words recognized in queries.
var RoleKeywords = []string{
	"senior",
	"junior",
	"mid-level",
	"middle",
	"lead",
	"principal",
	"intern",
	"fresher",
	"developer",
	"engineer",
	"architect",
	"frontend",
	"backend",
	"fullstack",
	"full-stack",
}

// NormalizeQuery applies Unicode NFC and trims surrounding whitespace.
func NormalizeQuery(query string) string {
	return strings.TrimSpace(norm.NFC.String(query))
}

// ExperienceHint returns the first experience phrase found in query and its year count.
func ExperienceHint(query string) (string, int, bool) {
	query = norm.NFC.String(query)
	for _, re := range experiencePatterns {
		m := re.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return strings.ToLower(strings.Join(strings.Fields(m[0]), " ")), years, true
	}
	return "", 0, false
}

// matchKeywords returns the catalog keywords contained in query, in catalog order. Plain
// substring matching lets plurals such as "engineers" count.
func matchKeywords(keywords []string, query string) []string {
	out := make([]string, 0)
	lower := strings.ToLower(norm.NFC.String(query))
	seen := make(map[string]struct{})
	for _, k := range keywords {
		k = strings.ToLower(k)
		if _, ok := seen[k]; ok || k == "" {
			continue
		}
		if strings.Contains(lower, k) {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}
