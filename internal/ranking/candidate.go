// Package ranking scores candidates against parsed job requirements and orders candidate pools.
package ranking

import (
	"math"

	"github.com/spf13/cast"
)

// Analysis keys holding the externally computed experience, in lookup order.
const (
	ExperienceYearsKey      = "experience_years"
	TotalExperienceYearsKey = "total_experience_years"

	breakdownKey = "breakdown"
)

// Candidate is a candidate record. Everything except Skills, Summary and Analysis is opaque
// payload that is passed through to results.
type Candidate struct {
	ID       string         `json:"id"`
	UserID   string         `json:"user_id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Summary  string         `json:"summary,omitempty"`
	Skills   []string       `json:"skills"`
	Analysis map[string]any `json:"analysis,omitempty"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// JobRequirements are the parsed requirements of a job posting.
type JobRequirements struct {
	Title              string   `json:"title,omitempty"`
	RequiredSkills     []string `json:"required_skills"`
	NiceToHaveSkills   []string `json:"nice_to_have_skills"`
	MinExperienceYears *int     `json:"min_experience_years,omitempty"`
}

// ExperienceYears reads the candidate's experience from its analysis. The analysis itself and a
// nested "breakdown" map are searched, each for experience_years first and then
// total_experience_years. Values that cannot be read as a non-negative number are skipped.
func (c Candidate) ExperienceYears() (int, bool) {
	return experienceYears(c.Analysis)
}

func experienceYears(analysis map[string]any) (int, bool) {
	if analysis == nil {
		return 0, false
	}

	sources := []map[string]any{analysis}
	if nested, ok := analysis[breakdownKey].(map[string]any); ok {
		sources = append(sources, nested)
	}

	for _, src := range sources {
		for _, key := range []string{ExperienceYearsKey, TotalExperienceYearsKey} {
			if years, ok := parseYears(src[key]); ok {
				return years, true
			}
		}
	}
	return 0, false
}

func parseYears(v any) (int, bool) {
	switch v.(type) {
	case nil, bool:
		return 0, false
	}

	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, false
	}
	// Cap so absurd values stay large instead of overflowing int.
	return int(math.Floor(math.Min(f, math.MaxInt32))), true
}
