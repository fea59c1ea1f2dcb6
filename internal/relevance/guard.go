package relevance

import (
	"math"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Defaults of Settings.
const (
	DefaultMinSimilarity      = 0.5
	DefaultMismatchConfidence = 0.3

	// antiKeywordPenalty is subtracted from a profile score per anti-keyword found.
	antiKeywordPenalty = 2
	// confidenceVocabularyShare scales the profile vocabulary size used to normalize confidence.
	confidenceVocabularyShare = 0.3
)

// Detection is the career field of a text and how strongly the text supports it.
type Detection struct {
	Field      Field   `json:"field"`
	Confidence float64 `json:"confidence"`
}

// DetectCareerField scores every profile as keywords found minus twice the anti-keywords found.
// The best positive score wins, earlier profiles winning ties. Without a positive score the
// result is Unknown with zero confidence.
func DetectCareerField(text string) Detection {
	lower := normalize(text)
	if lower == "" {
		return Detection{Field: Unknown}
	}

	best := Detection{Field: Unknown}
	bestScore := 0
	for _, p := range profiles {
		score := countIn(lower, p.Keywords) - antiKeywordPenalty*countIn(lower, p.AntiKeywords)
		if score <= bestScore {
			continue
		}
		bestScore = score
		best = Detection{
			Field:      p.Field,
			Confidence: math.Min(1, float64(score)/math.Max(confidenceVocabularyShare*float64(len(p.Keywords)), 1)),
		}
	}
	return best
}

// Settings tune the Guard.
type Settings struct {
	Enabled            bool    `mapstructure:"enabled"`
	MinSimilarity      float64 `mapstructure:"min-similarity"`
	MismatchConfidence float64 `mapstructure:"mismatch-confidence"`
}

// DefaultSettings returns enabled settings with the default thresholds.
func DefaultSettings() Settings {
	return Settings{
		Enabled:            true,
		MinSimilarity:      DefaultMinSimilarity,
		MismatchConfidence: DefaultMismatchConfidence,
	}
}

// Decision explains why a piece of context was accepted or rejected.
type Decision struct {
	Relevant  bool      `json:"relevant"`
	Reason    string    `json:"reason"`
	Detected  Detection `json:"detected"`
	AntiMatch string    `json:"anti_match,omitempty"`
}

// Decision reasons.
const (
	ReasonLowSimilarity  = "below_min_similarity"
	ReasonDisabled       = "check_disabled"
	ReasonUnknownSubject = "unknown_subject_field"
	ReasonUnknownContext = "unknown_context_field"
	ReasonSameField      = "same_field"
	ReasonWeakDetection  = "weak_detection"
	ReasonNoAntiKeyword  = "no_anti_keyword"
	ReasonFieldMismatch  = "field_mismatch"
)

// Guard rejects retrieved context from a career field other than the subject's.
type Guard struct {
	settings Settings
	logger   *zap.Logger
}

func NewGuard(settings Settings, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{settings: settings, logger: logger}
}

func (g *Guard) Settings() Settings {
	return g.settings
}

// IsContextRelevant reports whether text may be used as context for a subject of the given field.
func (g *Guard) IsContextRelevant(subject Field, text string, similarity float64) bool {
	return g.Evaluate(subject, text, similarity).Relevant
}

// Evaluate is IsContextRelevant with the reasoning attached.
//
// Context below the similarity threshold is always rejected. Otherwise it is rejected only when
// its detected field differs from subject with enough confidence and it also contains one of the
// subject field's anti-keywords.
func (g *Guard) Evaluate(subject Field, text string, similarity float64) Decision {
	if math.IsNaN(similarity) || similarity < g.settings.MinSimilarity {
		return Decision{Reason: ReasonLowSimilarity}
	}
	if !g.settings.Enabled {
		return Decision{Relevant: true, Reason: ReasonDisabled}
	}
	if subject == "" || subject == Unknown {
		return Decision{Relevant: true, Reason: ReasonUnknownSubject}
	}

	detected := DetectCareerField(text)
	switch {
	case detected.Field == Unknown:
		return Decision{Relevant: true, Reason: ReasonUnknownContext, Detected: detected}
	case detected.Field == subject:
		return Decision{Relevant: true, Reason: ReasonSameField, Detected: detected}
	case detected.Confidence <= g.settings.MismatchConfidence:
		return Decision{Relevant: true, Reason: ReasonWeakDetection, Detected: detected}
	}

	profile, ok := ProfileOf(subject)
	if !ok {
		return Decision{Relevant: true, Reason: ReasonNoAntiKeyword, Detected: detected}
	}

	lower := normalize(text)
	for _, anti := range profile.AntiKeywords {
		if strings.Contains(lower, anti) {
			g.logger.Debug("context rejected by career field",
				zap.String("subject_field", string(subject)),
				zap.String("context_field", string(detected.Field)),
				zap.Float64("confidence", detected.Confidence),
				zap.String("anti_keyword", anti),
			)
			return Decision{Reason: ReasonFieldMismatch, Detected: detected, AntiMatch: anti}
		}
	}

	return Decision{Relevant: true, Reason: ReasonNoAntiKeyword, Detected: detected}
}

func normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
}

func countIn(text string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(text, k) {
			n++
		}
	}
	return n
}
