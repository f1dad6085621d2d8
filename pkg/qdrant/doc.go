// Package qdrant wraps the official Qdrant Go client with the operations the
// matching engine needs: collection bootstrap and similarity search.
//
// The wrapper validates connectivity at construction time (fail fast on
// startup), ensures reference collections exist, and flattens search hits
// into a transport-agnostic shape: an opaque id, a cosine distance, and a
// string-keyed payload map. Callers compute similarity as 1 - distance.
//
// Usage:
//
//	cfg := qdrant.NewConfigFromEnv()
//	client, err := qdrant.NewQdrantClient(qdrant.QdrantParams{Config: cfg})
//	if err != nil {
//	    return err
//	}
//
//	if err := client.EnsureCollection(ctx, "medicine_detail_info"); err != nil {
//	    return err
//	}
//
//	hits, err := client.Search(ctx, "medicine_detail_info", vector, 20)
//
// The package integrates with fx via FXModule.
package qdrant
