package skills

import (
	"math"

	"go.uber.org/zap"
)

// SkillMatch compares a candidate skill set with the skills required by a text.
// Matched, Missing and Extra only hold categories with at least one skill.
type SkillMatch struct {
	Matched       SkillSet `json:"matched"`
	Missing       SkillSet `json:"missing"`
	Extra         SkillSet `json:"extra"`
	MatchedCount  int      `json:"matched_count"`
	RequiredCount int      `json:"required_count"`
	MatchRate     float64  `json:"skill_match_rate"`
}

// Matcher compares categorized candidate skills with requirement texts.
type Matcher struct {
	extractor *Extractor
	logger    *zap.Logger
}

func NewMatcher(extractor *Extractor, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{extractor: extractor, logger: logger}
}

// MatchSkills extracts the requirement skills from text and compares them with candidate.
func (m *Matcher) MatchSkills(candidate SkillSet, requirementText string) SkillMatch {
	return m.MatchSkillSets(candidate, m.extractor.ExtractSkills(requirementText))
}

// MatchSkillSets compares two categorized skill sets. The candidate set is normalized first,
// see NormalizeCandidate.
func (m *Matcher) MatchSkillSets(candidate, requirement SkillSet) SkillMatch {
	candidate = m.NormalizeCandidate(candidate)

	result := SkillMatch{
		Matched: SkillSet{},
		Missing: SkillSet{},
		Extra:   SkillSet{},
	}

	for c, required := range requirement {
		for _, skill := range required {
			result.RequiredCount++
			if candidate.Has(c, skill) {
				result.Matched.Add(c, skill)
				result.MatchedCount++
				continue
			}
			result.Missing.Add(c, skill)
		}
	}

	for c, have := range candidate {
		for _, skill := range have {
			if !requirement.Has(c, skill) {
				result.Extra.Add(c, skill)
			}
		}
	}

	result.MatchRate = MatchRate(result.MatchedCount, result.RequiredCount)

	result.Matched.compact()
	result.Missing.compact()
	result.Extra.compact()

	m.logger.Debug("skills matched",
		zap.Int("required", result.RequiredCount),
		zap.Int("matched", result.MatchedCount),
		zap.Float64("skill_match_rate", result.MatchRate),
	)

	return result
}

// NormalizeCandidate canonicalizes candidate skills. Skills known to the taxonomy move to their
// taxonomy category, unknown ones stay where the caller put them, lowercased.
func (m *Matcher) NormalizeCandidate(candidate SkillSet) SkillSet {
	out := SkillSet{}
	for c, list := range candidate {
		for _, raw := range list {
			if owner, ok := m.extractor.SkillCategory(raw); ok {
				canonical, _ := m.extractor.NormalizeSkill(raw)
				out.Add(owner, canonical)
				continue
			}
			out.Add(c, raw)
		}
	}
	return out
}

// MatchRate returns matched/total rounded to four decimals, and 0 when total is 0.
func MatchRate(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	rate := float64(matched) / float64(total)
	return math.Round(min(max(rate, 0), 1)*1e4) / 1e4
}
