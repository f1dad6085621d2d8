package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvercare-ai/medmatch/pkg/qdrant"
)

type fakeEmbedder struct {
	queries []string
	err     error
}

func (f *fakeEmbedder) CreateEmbeddings(_ context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries = append(f.queries, texts...)
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = []float64{0.1, 0.2, 0.3}
	}
	return out, nil
}

type fakeSearcher struct {
	// hits are keyed by collection, then by query order of calls.
	hits    map[string][][]qdrant.SearchResult
	callIdx map[string]int
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, collection string, _ []float32, _ int) ([]qdrant.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.callIdx == nil {
		f.callIdx = map[string]int{}
	}
	batches := f.hits[collection]
	idx := f.callIdx[collection]
	f.callIdx[collection]++
	if idx >= len(batches) {
		return nil, nil
	}
	return batches[idx], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func hit(id string, similarity float64, payload map[string]string) qdrant.SearchResult {
	return qdrant.SearchResult{ID: id, Distance: 1 - similarity, Payload: payload}
}

func TestResolveSimilarityFloor(t *testing.T) {
	store := &fakeSearcher{hits: map[string][][]qdrant.SearchResult{
		"medicine_detail_info": {{
			hit("below", 0.89, map[string]string{"product_name": "아스피린정"}),
		}},
	}}
	r := NewResolver(&fakeEmbedder{}, store, nopLogger{})

	got := r.Resolve(context.Background(), Mention{Name: "아스피린"}, "medicine_detail_info")
	assert.Nil(t, got, "a 0.89 hit must not clear the floor")

	store = &fakeSearcher{hits: map[string][][]qdrant.SearchResult{
		"medicine_detail_info": {{
			hit("eligible", 0.90, map[string]string{"product_name": "아스피린정"}),
		}},
	}}
	r = NewResolver(&fakeEmbedder{}, store, nopLogger{})

	got = r.Resolve(context.Background(), Mention{Name: "아스피린"}, "medicine_detail_info")
	require.NotNil(t, got)
	assert.Equal(t, "eligible", got.ID)
	assert.InDelta(t, 0.90, got.RawSimilarity, 1e-6)
}

func TestResolveDosageRerank(t *testing.T) {
	// The closer name match carries the wrong dosage; the dosage-aware
	// composite must prefer the slightly farther candidate.
	store := &fakeSearcher{hits: map[string][][]qdrant.SearchResult{
		"medicine_detail_info": {{
			hit("wrong-dose", 0.98, map[string]string{"dosage": "100mg"}),
			hit("right-dose", 0.95, map[string]string{"dosage": "500mg"}),
		}},
	}}
	r := NewResolver(&fakeEmbedder{}, store, nopLogger{})

	got := r.Resolve(context.Background(), Mention{Name: "아세트아미노펜", DosageText: "500mg"}, "medicine_detail_info")
	require.NotNil(t, got)
	// wrong-dose: 0.7*0.98 + 0.3*0.2 = 0.746; right-dose: 0.7*0.95 + 0.3*1.0 = 0.965
	assert.Equal(t, "right-dose", got.ID)
	assert.InDelta(t, 0.965, got.Score.Value, 1e-6)
	assert.Equal(t, 1.0, got.Score.DosageScore)
}

func TestResolveFirstSeenWinsOnTie(t *testing.T) {
	store := &fakeSearcher{hits: map[string][][]qdrant.SearchResult{
		"medicine_detail_info": {{
			hit("first", 0.95, nil),
			hit("second", 0.95, nil),
		}},
	}}
	r := NewResolver(&fakeEmbedder{}, store, nopLogger{})

	got := r.Resolve(context.Background(), Mention{Name: "타이레놀"}, "medicine_detail_info")
	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}

func TestResolveNoDosageTextRanksOnSimilarityAlone(t *testing.T) {
	store := &fakeSearcher{hits: map[string][][]qdrant.SearchResult{
		"medicine_detail_info": {{
			hit("a", 0.91, map[string]string{"dosage": "500mg"}),
			hit("b", 0.97, map[string]string{"dosage": "100mg"}),
		}},
	}}
	r := NewResolver(&fakeEmbedder{}, store, nopLogger{})

	got := r.Resolve(context.Background(), Mention{Name: "타이레놀"}, "medicine_detail_info")
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
	assert.Equal(t, got.RawSimilarity, got.Score.Value)
}

func TestResolveSearchErrorIsNotFound(t *testing.T) {
	r := NewResolver(&fakeEmbedder{}, &fakeSearcher{err: errors.New("connection refused")}, nopLogger{})
	assert.Nil(t, r.Resolve(context.Background(), Mention{Name: "아스피린"}, "medicine_detail_info"))
}

func TestResolveEmbeddingErrorIsNotFound(t *testing.T) {
	r := NewResolver(&fakeEmbedder{err: errors.New("quota exceeded")}, &fakeSearcher{}, nopLogger{})
	assert.Nil(t, r.Resolve(context.Background(), Mention{Name: "아스피린"}, "medicine_detail_info"))
}

func TestResolveIngredientsOnePerIngredient(t *testing.T) {
	embedder := &fakeEmbedder{}
	store := &fakeSearcher{hits: map[string][][]qdrant.SearchResult{
		"senior_danger_ingredient": {
			{
				hit("valsartan", 0.96, map[string]string{"ingredient_name": "발사르탄"}),
				hit("valsartan-weaker", 0.92, nil),
			},
			{
				hit("hctz", 0.93, map[string]string{"ingredient_name": "히드로클로로티아지드"}),
			},
		},
	}}
	r := NewResolver(embedder, store, nopLogger{})

	got := r.ResolveIngredients(context.Background(), Mention{Name: "발사르탄/히드로클로로티아지드"}, "senior_danger_ingredient")
	require.Len(t, got, 2)
	assert.Equal(t, "valsartan", got[0].ID)
	assert.Equal(t, "hctz", got[1].ID)
	assert.Equal(t, []string{"발사르탄", "히드로클로로티아지드"}, embedder.queries)
}

func TestResolveIngredientsSkipsFailedAndFloored(t *testing.T) {
	store := &fakeSearcher{hits: map[string][][]qdrant.SearchResult{
		"senior_danger_ingredient": {
			{hit("too-far", 0.85, nil)},
			{hit("kept", 0.94, nil)},
		},
	}}
	r := NewResolver(&fakeEmbedder{}, store, nopLogger{})

	got := r.ResolveIngredients(context.Background(), Mention{Name: "성분A / 성분B"}, "senior_danger_ingredient")
	require.Len(t, got, 1)
	assert.Equal(t, "kept", got[0].ID)
}

func TestResolveIngredientsEmptyName(t *testing.T) {
	r := NewResolver(&fakeEmbedder{}, &fakeSearcher{}, nopLogger{})
	assert.Nil(t, r.ResolveIngredients(context.Background(), Mention{Name: " / "}, "senior_danger_ingredient"))
}

func TestDefaultCollections(t *testing.T) {
	c := DefaultCollections()
	assert.Equal(t, []string{"medicine_detail_info", "senior_danger_medicine", "senior_danger_ingredient"}, c.All())
}
