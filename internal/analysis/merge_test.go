package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvercare-ai/medmatch/internal/enrich"
	"github.com/silvercare-ai/medmatch/internal/schedule"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func enrichment(effects string) enrich.DrugEnrichment {
	s := enrich.Sections{Effects: effects, Dosage: "d", Precautions: "p"}
	return enrich.DrugEnrichment{Keywords: s, Details: s}
}

func TestMergeExactMatch(t *testing.T) {
	existing := []schedule.DrugCandidate{
		{ProductName: "타이레놀정500밀리그람"},
		{ProductName: "아스피린프로텍트정100밀리그람"},
	}
	result := enrich.Result{"타이레놀정500밀리그람": enrichment("해열")}

	merged := mergeCandidates(existing, result, nopLogger{})
	require.Len(t, merged, 2)
	require.NotNil(t, merged[0].Description)
	assert.Equal(t, "해열", merged[0].Description.Keywords.Effects)
	assert.Nil(t, merged[1].Description, "unmatched existing entry stays untouched")
}

func TestMergeSubstringBothDirections(t *testing.T) {
	// Enrichment key contained in the candidate name.
	merged := mergeCandidates(
		[]schedule.DrugCandidate{{ProductName: "타이레놀정500밀리그람"}},
		enrich.Result{"타이레놀": enrichment("해열")},
		nopLogger{},
	)
	require.NotNil(t, merged[0].Description)

	// Candidate name contained in the enrichment key.
	merged = mergeCandidates(
		[]schedule.DrugCandidate{{ProductName: "타이레놀"}},
		enrich.Result{"타이레놀정500밀리그람": enrichment("해열")},
		nopLogger{},
	)
	require.NotNil(t, merged[0].Description)
}

func TestMergeExactBeatsSubstring(t *testing.T) {
	existing := []schedule.DrugCandidate{{ProductName: "타이레놀"}}
	result := enrich.Result{
		"타이레놀":          enrichment("정확"),
		"타이레놀정500밀리그람": enrichment("부분"),
	}
	merged := mergeCandidates(existing, result, nopLogger{})

	require.NotNil(t, merged[0].Description)
	assert.Equal(t, "정확", merged[0].Description.Keywords.Effects)
}

func TestMergeOneKeyEnrichesEveryMatchingEntry(t *testing.T) {
	existing := []schedule.DrugCandidate{
		{ProductName: "타이레놀정500밀리그람"},
		{ProductName: "타이레놀콜드정"},
	}
	merged := mergeCandidates(existing, enrich.Result{"타이레놀": enrichment("해열")}, nopLogger{})

	require.NotNil(t, merged[0].Description)
	require.NotNil(t, merged[1].Description)
}

func TestMergeSubstringTieIsDeterministic(t *testing.T) {
	// Both keys substring-match the candidate; the first key in sorted order
	// must win on every run.
	result := enrich.Result{
		"타이레놀정": enrichment("나중"),
		"타이레놀":  enrichment("먼저"),
	}
	for i := 0; i < 20; i++ {
		merged := mergeCandidates(
			[]schedule.DrugCandidate{{ProductName: "타이레놀정500밀리그람"}},
			result,
			nopLogger{},
		)
		require.NotNil(t, merged[0].Description)
		assert.Equal(t, "먼저", merged[0].Description.Keywords.Effects)
	}
}

func TestMergeNeverFabricates(t *testing.T) {
	existing := []schedule.DrugCandidate{{ProductName: "아스피린"}}
	result := enrich.Result{"전혀다른약": enrichment("x")}

	merged := mergeCandidates(existing, result, nopLogger{})
	require.Len(t, merged, 1, "unmatched enrichment keys must not add candidates")
	assert.Nil(t, merged[0].Description)
}

func TestMergeEmptyExistingList(t *testing.T) {
	merged := mergeCandidates(nil, enrich.Result{"타이레놀": enrichment("해열")}, nopLogger{})
	assert.Empty(t, merged)
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	existing := []schedule.DrugCandidate{{ProductName: "타이레놀"}}
	_ = mergeCandidates(existing, enrich.Result{"타이레놀": enrichment("해열")}, nopLogger{})
	assert.Nil(t, existing[0].Description)
}
