package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/ai"
	"github.com/spigell/skill-matcher/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

// QueryAnalyzer asks Gemini to pull skills, role keywords and an experience hint out of a
// search query.
type QueryAnalyzer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var systemPrompt string

const (
	defaultMaxLogLength = 200
	// maxExperienceYears caps a model supplied experience hint before it is converted to int.
	maxExperienceYears = math.MaxInt32
)

var _ ai.QueryAnalyzer = (*QueryAnalyzer)(nil)

func NewQueryAnalyzer(generator contentGenerator, maxLogLength int, logger *zap.Logger) *QueryAnalyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &QueryAnalyzer{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *QueryAnalyzer) AnalyzeQuery(ctx context.Context, query string) (*ai.QueryAnalysis, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	message := buildMessage(query)

	a.logger.Debug("gemini query analysis request",
		zap.Int("message_length", utf8.RuneCountInString(message)),
		zap.String("query_preview", utils.TruncateForLog(query, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, systemPrompt, message)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("gemini query analysis response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, err
	}

	analysis.Raw = raw
	return analysis, nil
}

func buildMessage(query string) string {
	return "Query:\n" + query + "\n\nJSON Response:"
}

func parseAnalysis(raw string) (*ai.QueryAnalysis, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	analysis := &ai.QueryAnalysis{
		Skills:   coerceStrings(data["skills"]),
		Keywords: coerceStrings(data["keywords"]),
	}

	if years := coerceFloat(data["min_experience"]); !math.IsNaN(years) && !math.IsInf(years, 0) && years >= 0 {
		v := int(math.Floor(math.Min(years, maxExperienceYears)))
		analysis.MinExperience = &v
	}

	return analysis, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// coerceStrings accepts a JSON array of strings or a comma separated string.
func coerceStrings(v any) []string {
	var items []string
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			items = append(items, coerceString(item))
		}
	case string:
		items = strings.Split(val, ",")
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// coerceFloat reads a number or a numeric string such as "5+". Anything else is NaN.
func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case nil, bool:
		return math.NaN()
	case string:
		val = strings.TrimSuffix(strings.TrimSpace(val), "+")
		if val == "" {
			return math.NaN()
		}
		v = val
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}
