package relevance

// Document is a piece of retrieved context with the similarity reported by the retriever.
type Document struct {
	ID              string         `json:"id,omitempty"`
	Content         string         `json:"content"`
	SimilarityScore float64        `json:"similarity_score"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}
