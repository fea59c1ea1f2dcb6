package filtering

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/skill-matcher/internal/relevance"
	"github.com/spigell/skill-matcher/internal/utils"
)

const previewLength = 80

type minSimilarityFilter struct {
	toggle
	threshold float64
}

// NewMinSimilarity creates a filter that drops documents below the configured similarity.
func NewMinSimilarity() Filter {
	return &minSimilarityFilter{}
}

func (f *minSimilarityFilter) Name() string { return "min_similarity" }

func (f *minSimilarityFilter) Validate(cfg *Config) error {
	f.threshold = 0
	if cfg != nil {
		f.threshold = cfg.MinSimilarity
	}
	if math.IsNaN(f.threshold) || f.threshold < 0 || f.threshold > 1 {
		return fmt.Errorf("min similarity %v is outside [0,1]", f.threshold)
	}
	return nil
}

func (f *minSimilarityFilter) Apply(_ context.Context, deps Deps, docs []relevance.Document) ([]relevance.Document, Step, error) {
	initial := len(docs)
	kept := make([]relevance.Document, 0, initial)
	var dropped []string
	for _, doc := range docs {
		if math.IsNaN(doc.SimilarityScore) || doc.SimilarityScore < f.threshold {
			dropped = append(dropped, doc.ID)
			continue
		}
		kept = append(kept, doc)
	}

	if len(dropped) > 0 {
		deps.logger().Debug("excluding documents below similarity threshold",
			zap.Float64("threshold", f.threshold),
			zap.Strings("excluded_documents", dropped),
		)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *minSimilarityFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"threshold": strconv.FormatFloat(f.threshold, 'f', 2, 64)},
	}
}

type careerFieldFilter struct {
	toggle
}

// NewCareerField creates a filter that drops documents from a different career field than
// the subject.
func NewCareerField() Filter {
	return &careerFieldFilter{}
}

func (f *careerFieldFilter) Name() string { return "career_field" }

func (f *careerFieldFilter) Validate(*Config) error { return nil }

func (f *careerFieldFilter) Apply(_ context.Context, deps Deps, docs []relevance.Document) ([]relevance.Document, Step, error) {
	initial := len(docs)
	if deps.Guard == nil {
		deps.logger().Info("relevance guard is not configured; skipping career_field filter")
		return docs, Step{Initial: initial, Left: initial}, nil
	}

	kept := make([]relevance.Document, 0, initial)
	for _, doc := range docs {
		decision := deps.Guard.Evaluate(deps.Subject, doc.Content, doc.SimilarityScore)
		if !decision.Relevant {
			deps.logger().Debug("document rejected",
				zap.String("document_id", doc.ID),
				zap.String("reason", decision.Reason),
				zap.String("context_field", string(decision.Detected.Field)),
				zap.String("preview", utils.TruncateForLog(doc.Content, previewLength)),
			)
			continue
		}
		kept = append(kept, doc)
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *careerFieldFilter) Status() Status {
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason}
}

type topKFilter struct {
	toggle
	k int
}

// NewTopK creates a filter that keeps the k most similar documents.
func NewTopK() Filter {
	return &topKFilter{}
}

func (f *topKFilter) Name() string { return "top_k" }

func (f *topKFilter) Validate(cfg *Config) error {
	f.k = 0
	if cfg != nil {
		f.k = cfg.TopK
	}
	if f.k < 0 {
		return fmt.Errorf("top k must not be negative, got %d", f.k)
	}
	return nil
}

func (f *topKFilter) Apply(_ context.Context, _ Deps, docs []relevance.Document) ([]relevance.Document, Step, error) {
	initial := len(docs)

	sorted := append([]relevance.Document{}, docs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SimilarityScore > sorted[j].SimilarityScore
	})
	if f.k > 0 && f.k < len(sorted) {
		sorted = sorted[:f.k]
	}

	return sorted, Step{Initial: initial, Dropped: initial - len(sorted), Left: len(sorted)}, nil
}

func (f *topKFilter) Status() Status {
	details := map[string]string{"k": "unlimited"}
	if f.k > 0 {
		details["k"] = strconv.Itoa(f.k)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
