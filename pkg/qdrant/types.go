package qdrant

// SearchResult holds one hit from a similarity search.
type SearchResult struct {
	// ID is the point identifier (numeric or UUID, stringified).
	ID string

	// Distance is the cosine distance between the query vector and the hit.
	// Smaller means more similar; similarity is 1 - Distance.
	Distance float64

	// Payload is the point payload flattened to strings.
	Payload map[string]string
}
