package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/ai"
	"github.com/spigell/skill-matcher/internal/ranking"
	"github.com/spigell/skill-matcher/internal/skills"
)

// Score weights of a search result.
const (
	SkillWeight   = 70
	KeywordWeight = 30

	// NeutralSkillScore is awarded when the query names no skills.
	NeutralSkillScore = SkillWeight / 2

	// MinRuleSkillsBeforeAugment is the number of rule-based skills below which the query
	// analyzer is consulted.
	MinRuleSkillsBeforeAugment = 2
)

// Breakdown explains a search score.
type Breakdown struct {
	MatchedSkills   []string `json:"matched_skills"`
	MatchedKeywords []string `json:"matched_keywords"`
	SkillScore      float64  `json:"skill_score"`
	KeywordScore    float64  `json:"keyword_score"`
}

// Result is a scored candidate.
type Result struct {
	Candidate ranking.Candidate `json:"candidate"`
	Score     int               `json:"score"`
	Breakdown Breakdown         `json:"breakdown"`
}

// Response is the outcome of one search call.
type Response struct {
	Query ParsedQuery          `json:"query"`
	Page  ranking.Page[Result] `json:"page"`
}

// Searcher parses queries and scores candidates against them.
type Searcher struct {
	extractor *skills.Extractor
	analyzer  ai.QueryAnalyzer
	keywords  []string
	logger    *zap.Logger
}

// Option customizes a Searcher.
type Option func(*Searcher)

// WithAnalyzer enables augmentation of sparse queries through a language model.
func WithAnalyzer(analyzer ai.QueryAnalyzer) Option {
	return func(s *Searcher) {
		s.analyzer = analyzer
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewSearcher(extractor *skills.Extractor, opts ...Option) *Searcher {
	s := &Searcher{
		extractor: extractor,
		keywords:  RoleKeywords,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseQuery extracts skills, role keywords and an experience hint from query. When fewer than
// MinRuleSkillsBeforeAugment skills are found and an analyzer is configured, its output is merged
// in. Analyzer failures are logged and ignored.
func (s *Searcher) ParseQuery(ctx context.Context, query string) ParsedQuery {
	normalized := NormalizeQuery(query)

	parsed := ParsedQuery{
		Skills:             s.extractor.ExtractSkillsFlat(normalized),
		ExperienceKeywords: []string{},
		Keywords:           matchKeywords(s.keywords, normalized),
		RawQuery:           query,
	}

	if phrase, years, ok := ExperienceHint(normalized); ok {
		parsed.ExperienceKeywords = append(parsed.ExperienceKeywords, phrase)
		parsed.MinExperience = &years
	}

	if len(parsed.Skills) < MinRuleSkillsBeforeAugment && s.analyzer != nil && normalized != "" {
		analysis, err := s.analyze(ctx, normalized)
		switch {
		case err != nil:
			s.logger.Warn("query augmentation failed, using rule-based result",
				zap.Int("rule_skills", len(parsed.Skills)),
				zap.Error(err),
			)
		case analysis != nil:
			parsed = s.merge(parsed, analysis)
		}
	}

	s.logger.Debug("query parsed",
		zap.Strings("skills", parsed.Skills),
		zap.Strings("keywords", parsed.Keywords),
		zap.Bool("augmented", parsed.Augmented),
	)

	return parsed
}

// analyze calls the analyzer, turning a panic into an error.
func (s *Searcher) analyze(ctx context.Context, query string) (analysis *ai.QueryAnalysis, err error) {
	defer func() {
		if r := recover(); r != nil {
			analysis, err = nil, fmt.Errorf("query analyzer panicked: %v", r)
		}
	}()
	return s.analyzer.AnalyzeQuery(ctx, query)
}

func (s *Searcher) merge(parsed ParsedQuery, analysis *ai.QueryAnalysis) ParsedQuery {
	augmented := make([]string, 0, len(analysis.Skills))
	for _, raw := range analysis.Skills {
		augmented = append(augmented, s.extractor.Canonicalize(raw))
	}
	parsed.Skills = ranking.Dedupe(append(parsed.Skills, augmented...))
	parsed.Keywords = ranking.Dedupe(append(parsed.Keywords, analysis.Keywords...))

	if parsed.MinExperience == nil && analysis.MinExperience != nil && *analysis.MinExperience >= 0 {
		years := *analysis.MinExperience
		parsed.MinExperience = &years
	}

	parsed.Augmented = true
	return parsed
}

// Score computes the 0-100 relevance of one candidate to a parsed query.
func (s *Searcher) Score(query ParsedQuery, c ranking.Candidate) Result {
	have := ranking.CanonicalList(s.extractor, c.Skills)

	skillScore := float64(NeutralSkillScore)
	matched := []string{}
	if len(query.Skills) > 0 {
		matched = ranking.Intersect(query.Skills, have)
		skillScore = ranking.WeightedRatio(len(matched), len(query.Skills), SkillWeight)
	}

	keywords := ranking.Dedupe(query.AllKeywords())
	found := KeywordsIn(keywords, c.Summary)
	keywordScore := 0.0
	if len(keywords) > 0 && strings.TrimSpace(c.Summary) != "" {
		keywordScore = float64(len(found)) / float64(len(keywords)) * KeywordWeight
	}

	return Result{
		Candidate: c,
		Score:     ranking.ClampScore(skillScore + keywordScore),
		Breakdown: Breakdown{
			MatchedSkills:   matched,
			MatchedKeywords: found,
			SkillScore:      round2(skillScore),
			KeywordScore:    round2(keywordScore),
		},
	}
}

// Search parses query and returns the requested page of scored candidates.
func (s *Searcher) Search(ctx context.Context, query string, candidates []ranking.Candidate, opts ranking.Options) (Response, error) {
	parsed := s.ParseQuery(ctx, query)

	scored, err := ranking.ScoreAll(ctx, candidates, func(c ranking.Candidate) Result {
		return s.Score(parsed, c)
	})
	if err != nil {
		return Response{}, fmt.Errorf("score candidates: %w", err)
	}

	page := ranking.Paginate(scored, func(r Result) int { return r.Score }, opts)

	s.logger.Debug("candidates searched",
		zap.Int("pool", len(candidates)),
		zap.Int("total", page.Total),
		zap.Int("returned", len(page.Items)),
	)

	return Response{Query: parsed, Page: page}, nil
}

// KeywordsIn returns the keywords contained in text, case-insensitively.
func KeywordsIn(keywords []string, text string) []string {
	out := []string{}
	lower := strings.ToLower(text)
	if strings.TrimSpace(lower) == "" {
		return out
	}
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			out = append(out, k)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
