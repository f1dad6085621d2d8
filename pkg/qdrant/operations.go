package qdrant

import (
	"context"
	"fmt"
	"log"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// EnsureCollection verifies that a collection exists, creating it if missing.
//
// It is safe to call multiple times; if the collection already exists the
// function exits early. Services bootstrap their collections with this on
// startup.
func (c *QdrantClient) EnsureCollection(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("collection name cannot be empty")
	}

	collections, err := c.api.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("[Qdrant] failed to list collections: %w", err)
	}

	if slices.Contains(collections, name) {
		return nil
	}

	log.Printf("[Qdrant] Collection '%s' not found, creating it...", name)

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     c.cfg.VectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	}

	if err := c.api.CreateCollection(ctx, req); err != nil {
		return fmt.Errorf("[Qdrant] failed to create collection '%s': %w", name, err)
	}

	log.Printf("[Qdrant] Created collection '%s' successfully", name)
	return nil
}

// Search performs a similarity search against the named collection.
//
// Each result carries the point id, the cosine distance to the query vector,
// and the point payload flattened to strings. The collection uses cosine
// similarity internally; scores are converted so that callers reason about
// distance uniformly.
func (c *QdrantClient) Search(ctx context.Context, collection string, vector []float32, topK int) ([]SearchResult, error) {
	if err := validateSearchInput(collection, vector, topK); err != nil {
		return nil, err
	}

	limit := uint64(topK)
	req := &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	}

	resp, err := c.api.Query(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("[Qdrant] search failed: %w", err)
	}

	results := make([]SearchResult, 0, len(resp))
	for _, r := range resp {
		var id string
		switch v := r.Id.PointIdOptions.(type) {
		case *qdrant.PointId_Num:
			id = fmt.Sprintf("%d", v.Num)
		case *qdrant.PointId_Uuid:
			id = v.Uuid
		default:
			return nil, fmt.Errorf("[Qdrant] unexpected PointId type: %T", v)
		}

		results = append(results, SearchResult{
			ID:       id,
			Distance: 1 - float64(r.Score),
			Payload:  payloadToStrings(r.Payload),
		})
	}

	return results, nil
}
