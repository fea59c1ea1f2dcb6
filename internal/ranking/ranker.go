package ranking

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/skills"
)

// Score weights. The skill weight is split between required and nice-to-have skills.
const (
	RequiredWeight   = 60
	NiceToHaveWeight = 10
	SkillWeight      = RequiredWeight + NiceToHaveWeight
	ExperienceWeight = 30
	MaxScore         = SkillWeight + ExperienceWeight
)

// MatchBreakdown explains a candidate score. Matched, Missing and Extra are keyed by taxonomy
// category, with unknown skills under "other".
type MatchBreakdown struct {
	Matched         skills.SkillSet `json:"matched"`
	Missing         skills.SkillSet `json:"missing"`
	Extra           skills.SkillSet `json:"extra"`
	RequiredMatched []string        `json:"required_matched"`
	NiceMatched     []string        `json:"nice_matched"`
	SkillScore      float64         `json:"skill_score"`
	ExperienceScore float64         `json:"experience_score"`
	ExperienceYears *int            `json:"experience_years"`
}

// RankedCandidate is a scored candidate.
type RankedCandidate struct {
	Candidate Candidate      `json:"candidate"`
	Score     int            `json:"score"`
	Breakdown MatchBreakdown `json:"breakdown"`
}

// Ranker scores candidates against job requirements.
type Ranker struct {
	extractor *skills.Extractor
	logger    *zap.Logger
}

func NewRanker(extractor *skills.Extractor, logger *zap.Logger) *Ranker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ranker{extractor: extractor, logger: logger}
}

// Score computes the 0-100 match score of one candidate.
func (r *Ranker) Score(job JobRequirements, c Candidate) RankedCandidate {
	required := CanonicalList(r.extractor, job.RequiredSkills)
	nice := CanonicalList(r.extractor, job.NiceToHaveSkills)
	have := CanonicalList(r.extractor, c.Skills)

	requiredMatched := Intersect(required, have)
	niceMatched := Intersect(nice, have)

	skillScore := WeightedRatio(len(requiredMatched), len(required), RequiredWeight) +
		WeightedRatio(len(niceMatched), len(nice), NiceToHaveWeight)

	var years *int
	if y, ok := c.ExperienceYears(); ok {
		years = &y
	}
	experienceScore := ExperienceScore(job.MinExperienceYears, years)

	wanted := append(append([]string{}, required...), nice...)
	wanted = Dedupe(wanted)

	return RankedCandidate{
		Candidate: c,
		Score:     ClampScore(skillScore + experienceScore),
		Breakdown: MatchBreakdown{
			Matched:         r.extractor.Categorize(Intersect(wanted, have)),
			Missing:         r.extractor.Categorize(Subtract(wanted, have)),
			Extra:           r.extractor.Categorize(Subtract(have, wanted)),
			RequiredMatched: requiredMatched,
			NiceMatched:     niceMatched,
			SkillScore:      round2(skillScore),
			ExperienceScore: round2(experienceScore),
			ExperienceYears: years,
		},
	}
}

// Rank scores every candidate in parallel and returns the requested page.
func (r *Ranker) Rank(ctx context.Context, job JobRequirements, candidates []Candidate, opts Options) (Page[RankedCandidate], error) {
	scored, err := ScoreAll(ctx, candidates, func(c Candidate) RankedCandidate {
		return r.Score(job, c)
	})
	if err != nil {
		return Page[RankedCandidate]{}, fmt.Errorf("score candidates: %w", err)
	}

	page := Paginate(scored, func(rc RankedCandidate) int { return rc.Score }, opts)

	r.logger.Debug("candidates ranked",
		zap.Int("pool", len(candidates)),
		zap.Int("total", page.Total),
		zap.Int("returned", len(page.Items)),
		zap.Int("min_score", opts.MinScore),
	)

	return page, nil
}

// ExperienceScore awards the full experience weight when nothing is required, nothing when the
// candidate's experience is unknown and a proportional share otherwise.
func ExperienceScore(minYears, years *int) float64 {
	if minYears == nil || *minYears <= 0 {
		return ExperienceWeight
	}
	if years == nil {
		return 0
	}
	if *years >= *minYears {
		return ExperienceWeight
	}
	return float64(max(*years, 0)) / float64(*minYears) * ExperienceWeight
}

// WeightedRatio returns matched/total scaled to weight, or the full weight when total is 0.
func WeightedRatio(matched, total int, weight float64) float64 {
	if total <= 0 {
		return weight
	}
	return float64(matched) / float64(total) * weight
}

// ClampScore rounds a raw score and bounds it to [0,100].
func ClampScore(v float64) int {
	if math.IsNaN(v) {
		return 0
	}
	return int(math.Round(min(max(v, 0), MaxScore)))
}

// CanonicalList canonicalizes names through the taxonomy, dropping blanks and duplicates while
// keeping first-seen order.
func CanonicalList(e *skills.Extractor, names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, e.Canonicalize(name))
	}
	return Dedupe(out)
}

// Dedupe drops blanks and case-insensitive duplicates, keeping first-seen order.
func Dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

// Intersect returns the items of a also present in b, case-insensitively, in a's order.
func Intersect(a, b []string) []string {
	set := toSet(b)
	out := make([]string, 0)
	for _, s := range a {
		if _, ok := set[strings.ToLower(s)]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Subtract returns the items of a missing from b, case-insensitively, in a's order.
func Subtract(a, b []string) []string {
	set := toSet(b)
	out := make([]string, 0)
	for _, s := range a {
		if _, ok := set[strings.ToLower(s)]; !ok {
			out = append(out, s)
		}
	}
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[strings.ToLower(s)] = struct{}{}
	}
	return set
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
