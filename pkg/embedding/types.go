package embedding

import "context"

// Provider contract. Implementations turn texts into dense vectors.
type Provider interface {
	// CreateEmbeddings embeds one or more texts in a single request.
	// The result has one vector per input text, in input order.
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}
