// Package retrieval resolves free-text drug mentions against the reference
// similarity collections using dosage-aware re-ranking.
package retrieval

import (
	"context"
	"strings"

	"github.com/silvercare-ai/medmatch/internal/dosage"
	"github.com/silvercare-ai/medmatch/pkg/qdrant"
)

const (
	// similarityFloor is a hard precision gate on raw similarity. The system
	// returns nothing rather than a low-confidence match.
	similarityFloor = 0.9

	// overfetchLimit is how many nearest neighbors each query requests so the
	// composite score has enough candidates to re-rank.
	overfetchLimit = 20

	// metadataDosageKey is the payload field holding a candidate's dosage text.
	metadataDosageKey = "dosage"

	// ingredientDelimiter separates active ingredients in combination
	// product names.
	ingredientDelimiter = "/"
)

// Logger defines the interface for logging operations in the retrieval package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Embedder turns query texts into vectors.
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}

// Searcher runs a nearest-neighbor query against a named collection.
type Searcher interface {
	Search(ctx context.Context, collection string, vector []float32, topK int) ([]qdrant.SearchResult, error)
}

// Mention is one free-text reference to a drug awaiting resolution.
type Mention struct {
	Name       string
	DosageText string
	Note       string
}

// MatchCandidate is the winning hit for one mention against one collection.
type MatchCandidate struct {
	ID            string
	RawSimilarity float64
	Metadata      map[string]string
	Dosage        dosage.Components
	Score         dosage.CompositeScore
}

// Collections names the reference collections the engine queries.
type Collections struct {
	ProductDetail  string
	RiskFlag       string
	RiskIngredient string
}

// DefaultCollections returns the collection names used in production.
func DefaultCollections() Collections {
	return Collections{
		ProductDetail:  "medicine_detail_info",
		RiskFlag:       "senior_danger_medicine",
		RiskIngredient: "senior_danger_ingredient",
	}
}

// All returns every configured collection name, for startup bootstrap.
func (c Collections) All() []string {
	return []string{c.ProductDetail, c.RiskFlag, c.RiskIngredient}
}

// Resolver scores and ranks similarity hits for drug mentions.
type Resolver struct {
	embedder Embedder
	store    Searcher
	logger   Logger
}

func NewResolver(embedder Embedder, store Searcher, logger Logger) *Resolver {
	return &Resolver{
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Resolve queries the named collection for the mention and returns the single
// best candidate, or nil when nothing clears the similarity floor.
//
// Failures of the underlying collection call are logged and treated as
// not-found; a retrieval failure for one mention must never abort the batch.
func (r *Resolver) Resolve(ctx context.Context, mention Mention, collection string) *MatchCandidate {
	hits, err := r.search(ctx, mention.Name, collection)
	if err != nil {
		r.logger.Error("collection query failed, treating as not found", err, map[string]interface{}{
			"collection": collection,
			"drug":       mention.Name,
		})
		return nil
	}

	hasDosageText := strings.TrimSpace(mention.DosageText) != ""
	queryDosage := dosage.Parse(mention.DosageText)

	var best *MatchCandidate
	for _, hit := range hits {
		similarity := 1 - hit.Distance
		if similarity < similarityFloor {
			continue
		}

		candDosage := dosage.Parse(hit.Payload[metadataDosageKey])
		dosageScore := 0.0
		if hasDosageText {
			dosageScore = dosage.Score(queryDosage, candDosage)
		}
		score := dosage.Blend(similarity, dosageScore, queryDosage, hasDosageText)

		// Strict greater-than keeps the first-seen candidate on ties.
		if best == nil || score.Value > best.Score.Value {
			best = &MatchCandidate{
				ID:            hit.ID,
				RawSimilarity: similarity,
				Metadata:      hit.Payload,
				Dosage:        candDosage,
				Score:         score,
			}
		}
	}

	return best
}

// ResolveIngredients splits the mention name on the ingredient delimiter and
// queries the collection once per ingredient, keeping at most one best hit
// per ingredient. A single product can carry several independently dangerous
// ingredients; each must be surfaced.
//
// Ranking here is similarity-only: ingredient reference entries carry no
// dosage of their own.
func (r *Resolver) ResolveIngredients(ctx context.Context, mention Mention, collection string) []MatchCandidate {
	var ingredients []string
	for _, part := range strings.Split(mention.Name, ingredientDelimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ingredients = append(ingredients, trimmed)
		}
	}
	if len(ingredients) == 0 {
		return nil
	}

	var found []MatchCandidate
	for _, ingredient := range ingredients {
		hits, err := r.search(ctx, ingredient, collection)
		if err != nil {
			r.logger.Error("ingredient query failed, treating as not found", err, map[string]interface{}{
				"collection": collection,
				"ingredient": ingredient,
			})
			continue
		}

		var best *MatchCandidate
		for _, hit := range hits {
			similarity := 1 - hit.Distance
			if similarity < similarityFloor {
				continue
			}
			if best == nil || similarity > best.RawSimilarity {
				best = &MatchCandidate{
					ID:            hit.ID,
					RawSimilarity: similarity,
					Metadata:      hit.Payload,
					Score:         dosage.CompositeScore{Value: similarity, NameSimilarity: similarity},
				}
			}
		}
		if best != nil {
			found = append(found, *best)
		}
	}

	return found
}

func (r *Resolver) search(ctx context.Context, query, collection string) ([]qdrant.SearchResult, error) {
	vectors, err := r.embedder.CreateEmbeddings(ctx, []string{query})
	if err != nil {
		return nil, err
	}

	return r.store.Search(ctx, collection, toFloat32(vectors[0]), overfetchLimit)
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
