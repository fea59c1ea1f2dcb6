// Package ai holds the contracts of optional language model collaborators.
package ai

import "context"

// QueryAnalysis is what a language model extracted from a free-text search query.
// Skills are raw names and still need taxonomy normalization.
type QueryAnalysis struct {
	Skills        []string
	Keywords      []string
	MinExperience *int
	Raw           string
}

// QueryAnalyzer augments rule-based query parsing.
type QueryAnalyzer interface {
	AnalyzeQuery(ctx context.Context, query string) (*QueryAnalysis, error)
}
