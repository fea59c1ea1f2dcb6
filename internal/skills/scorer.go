package skills

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/spigell/skill-matcher/internal/taxonomy"
)

// Component bounds of the hybrid skill score.
const (
	MaxCompleteness    = 7
	MaxCategorization  = 6
	MaxEvidence        = 6
	MaxMarketRelevance = 6
	MaxTotal           = MaxCompleteness + MaxCategorization + MaxEvidence + MaxMarketRelevance

	// NeutralEvidence is used when no usable external rating is supplied.
	NeutralEvidence = 3

	maxCategoryPoints       = 5
	minCategoriesForTopTier = 3
	maxRecommendations      = 5
	maxMissingCategoryHint  = 3
	missingCategoriesShown  = 2
	hotSkillExamples        = 3
	lowCompleteness         = 4
)

// Breakdown is the hybrid skill score. Total is always the sum of the other four fields.
type Breakdown struct {
	Completeness    int `json:"completeness_score"`
	Categorization  int `json:"categorization_score"`
	Evidence        int `json:"evidence_score"`
	MarketRelevance int `json:"market_relevance_score"`
	Total           int `json:"total_score"`
}

// Validate reports components or totals outside their bounds, including a total that does not
// equal the sum of the components.
func (b Breakdown) Validate() error {
	checks := []struct {
		name  string
		value int
		max   int
	}{
		{"completeness_score", b.Completeness, MaxCompleteness},
		{"categorization_score", b.Categorization, MaxCategorization},
		{"evidence_score", b.Evidence, MaxEvidence},
		{"market_relevance_score", b.MarketRelevance, MaxMarketRelevance},
		{"total_score", b.Total, MaxTotal},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			return fmt.Errorf("%s %d is outside [0,%d]", c.name, c.value, c.max)
		}
	}

	if sum := b.Completeness + b.Categorization + b.Evidence + b.MarketRelevance; sum != b.Total {
		return fmt.Errorf("total_score %d does not match sum of components %d", b.Total, sum)
	}
	return nil
}

// Clamp bounds every component and recomputes the total.
func (b Breakdown) Clamp() Breakdown {
	b.Completeness = clampInt(b.Completeness, 0, MaxCompleteness)
	b.Categorization = clampInt(b.Categorization, 0, MaxCategorization)
	b.Evidence = clampInt(b.Evidence, 0, MaxEvidence)
	b.MarketRelevance = clampInt(b.MarketRelevance, 0, MaxMarketRelevance)
	b.Total = b.Completeness + b.Categorization + b.Evidence + b.MarketRelevance
	return b
}

// SkillScore is the result of Scorer.Calculate.
type SkillScore struct {
	Breakdown       Breakdown `json:"breakdown"`
	Recommendations []string  `json:"recommendations"`
	HotSkills       []string  `json:"hot_skills"`
	SkillCount      int       `json:"skill_count"`
}

// Scorer computes hybrid skill scores. It holds only read-only data.
type Scorer struct {
	hot    taxonomy.HotSkills
	years  []int
	logger *zap.Logger
}

// NewScorer returns a scorer using the given hot skill catalog. No years means all known years.
func NewScorer(hot taxonomy.HotSkills, years []int, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{hot: hot, years: append([]int{}, years...), logger: logger}
}

// Calculate scores an extracted skill set. evidence is an optional decoded record of shape
// {"criteria": {"skills": 0-100}}; anything else yields the neutral evidence score.
func (s *Scorer) Calculate(skills SkillSet, evidence any) SkillScore {
	hotSkills := s.HotSkillsIn(skills)

	b := Breakdown{
		Completeness:    CompletenessScore(skills),
		Categorization:  CategorizationScore(skills),
		Evidence:        EvidenceScore(evidence),
		MarketRelevance: min(len(hotSkills), MaxMarketRelevance),
	}
	b.Total = b.Completeness + b.Categorization + b.Evidence + b.MarketRelevance

	result := SkillScore{
		Breakdown:       b,
		Recommendations: s.recommendations(skills, b, len(hotSkills)),
		HotSkills:       hotSkills,
		SkillCount:      skills.Count(),
	}

	s.logger.Debug("skill score calculated",
		zap.Int("skills", result.SkillCount),
		zap.Int("hot_skills", len(hotSkills)),
		zap.Int("total_score", b.Total),
	)

	return result
}

// HotSkillsIn returns the distinct skills of the set that are hot in any configured year.
func (s *Scorer) HotSkillsIn(skills SkillSet) []string {
	hot := s.hot.Set(s.years...)
	out := make([]string, 0)
	for _, skill := range skills.Flat() {
		if _, ok := hot[skill]; ok {
			out = append(out, skill)
		}
	}
	return out
}

// CompletenessScore maps the distinct skill count to 0-7. The top tier needs skills in at least
// three categories.
func CompletenessScore(skills SkillSet) int {
	n := skills.Count()
	switch {
	case n == 0:
		return 0
	case n <= 2:
		return 1
	case n <= 4:
		return 2
	case n == 5:
		return 3
	case n <= 8:
		return 4
	case n <= 10:
		return 5
	case n <= 15:
		return 6
	case len(skills.NonEmptyCategories()) >= minCategoriesForTopTier:
		return 7
	default:
		return 6
	}
}

// CategorizationScore gives a point per covered main category (up to five) plus a bonus for a
// balanced distribution across at least two main categories.
func CategorizationScore(skills SkillSet) int {
	covered := 0
	for _, c := range taxonomy.MainCategories {
		if len(skills[c]) > 0 {
			covered++
		}
	}

	score := min(covered, maxCategoryPoints)
	if covered >= 2 && isBalanced(skills) {
		score++
	}
	return min(score, MaxCategorization)
}

// EvidenceScore rescales an external 0-100 skills rating to 0-6.
func EvidenceScore(evidence any) int {
	root, ok := evidence.(map[string]any)
	if !ok {
		return NeutralEvidence
	}
	criteria, ok := root["criteria"].(map[string]any)
	if !ok {
		return NeutralEvidence
	}

	raw, ok := criteria["skills"]
	if !ok || raw == nil {
		return NeutralEvidence
	}
	switch v := raw.(type) {
	case bool:
		return NeutralEvidence
	case string:
		if strings.TrimSpace(v) == "" {
			return NeutralEvidence
		}
		raw = strings.TrimSpace(v)
	}

	value, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return NeutralEvidence
	}

	// Clamp before converting so out-of-range ratings cannot overflow int.
	value = math.Max(0, math.Min(100, value))
	return int(math.Round(value * MaxEvidence / 100))
}

// dominantCategory returns the category holding more than half of all skills, if any.
func dominantCategory(skills SkillSet) (taxonomy.Category, bool) {
	total := 0
	for _, list := range skills {
		total += len(list)
	}
	if total == 0 {
		return "", false
	}

	for _, c := range skills.NonEmptyCategories() {
		if len(skills[c])*2 > total {
			return c, true
		}
	}
	return "", false
}

func isBalanced(skills SkillSet) bool {
	_, dominant := dominantCategory(skills)
	return !dominant
}

func (s *Scorer) recommendations(skills SkillSet, b Breakdown, hotCount int) []string {
	out := make([]string, 0, maxRecommendations)
	add := func(msg string) {
		if len(out) < maxRecommendations {
			out = append(out, msg)
		}
	}

	if b.Completeness < lowCompleteness {
		add(fmt.Sprintf("List more of your relevant skills: only %d were recognized.", skills.Count()))
	}

	if hotCount == 0 {
		if examples := s.hot.Examples(hotSkillExamples, s.years...); len(examples) > 0 {
			add(fmt.Sprintf("Consider adding in-demand skills such as %s.", strings.Join(examples, ", ")))
		}
	}

	var missing []string
	for _, c := range taxonomy.MainCategories {
		if len(skills[c]) == 0 {
			missing = append(missing, CategoryName(c))
		}
	}
	if len(missing) > 0 && len(missing) <= maxMissingCategoryHint {
		add(fmt.Sprintf("Add skills in %s to broaden your profile.", strings.Join(missing[:min(len(missing), missingCategoriesShown)], " and ")))
	}

	if b.Evidence < NeutralEvidence {
		add("Back your skills with concrete projects, achievements or certifications.")
	}

	if c, ok := dominantCategory(skills); ok {
		add(fmt.Sprintf("Most of your skills are in %s; diversify across other areas.", CategoryName(c)))
	}

	return out
}

var categoryNames = map[taxonomy.Category]string{
	taxonomy.AIML:   "AI/ML",
	taxonomy.DevOps: "DevOps",
}

// CategoryName returns a human readable category name.
func CategoryName(c taxonomy.Category) string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	// Casers keep state, so one is built per call.
	return cases.Title(language.English).String(strings.ReplaceAll(string(c), "_", " "))
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
