package dosage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mg(values ...float64) Components {
	return Components{Values: values, Unit: "mg"}
}

func TestScoreSingleValues(t *testing.T) {
	tests := []struct {
		name      string
		query     Components
		candidate Components
		want      float64
	}{
		{name: "identical", query: mg(500), candidate: mg(500), want: 1.0},
		{name: "half dose", query: mg(250), candidate: mg(500), want: 0.5},
		{name: "ratio is min over max", query: mg(80), candidate: mg(100), want: 0.8},
		{name: "differing units", query: mg(500), candidate: Components{Values: []float64{500}, Unit: "g"}, want: 0},
		{name: "query missing unit", query: Components{Values: []float64{500}}, candidate: mg(500), want: 0},
		{name: "candidate missing unit", query: mg(500), candidate: Components{Values: []float64{500}}, want: 0},
		{name: "verbatim unit never equals canonical", query: mg(2), candidate: Components{Values: []float64{2}, Unit: "tablets"}, want: 0},
		{name: "query has no values", query: Components{Unit: "mg"}, candidate: mg(500), want: 0},
		{name: "candidate has no values", query: mg(500), candidate: Components{Unit: "mg"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.query, tt.candidate), 1e-9)
		})
	}
}

func TestScoreIsSymmetric(t *testing.T) {
	pairs := []struct{ a, b Components }{
		{mg(250), mg(500)},
		{mg(80, 12.5), mg(80, 12.5)},
		{mg(100, 25), mg(90, 25)},
	}
	for _, p := range pairs {
		assert.InDelta(t, Score(p.a, p.b), Score(p.b, p.a), 1e-9)
	}
}

func TestScoreCombinations(t *testing.T) {
	tests := []struct {
		name      string
		query     Components
		candidate Components
		want      float64
	}{
		{name: "perfect combination match", query: mg(80, 12.5), candidate: mg(80, 12.5), want: 1.0},
		{name: "order does not matter", query: mg(12.5, 80), candidate: mg(80, 12.5), want: 1.0},
		{name: "mean of pair ratios above cutoff", query: mg(80, 10), candidate: mg(100, 10), want: (0.8 + 1.0) / 2},
		{name: "any pair below cutoff zeroes the score", query: mg(40, 12.5), candidate: mg(80, 12.5), want: 0},
		{name: "combination vs single is never a match", query: mg(80, 12.5), candidate: mg(40), want: 0},
		{name: "single vs combination is never a match", query: mg(40), candidate: mg(80, 12.5), want: 0},
		{name: "three way combination", query: mg(10, 20, 30), candidate: mg(10, 20, 30), want: 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.query, tt.candidate), 1e-9)
		})
	}
}

func TestBlendWeights(t *testing.T) {
	// No dosage text: composite equals name similarity exactly.
	got := Blend(0.95, 0.8, Components{}, false)
	assert.Equal(t, 0.95, got.Value)

	// Non-combination query: 0.7/0.3 weights.
	got = Blend(0.95, 0.8, mg(500), true)
	assert.InDelta(t, 0.905, got.Value, 1e-9)
	assert.Equal(t, 0.95, got.NameSimilarity)
	assert.Equal(t, 0.8, got.DosageScore)

	// Combination query: 0.5/0.5 weights.
	got = Blend(0.95, 1.0, mg(80, 12.5), true)
	assert.InDelta(t, 0.975, got.Value, 1e-9)

	// Combination query with zero dosage score.
	got = Blend(0.95, 0, mg(80, 12.5), true)
	assert.InDelta(t, 0.475, got.Value, 1e-9)
}

func TestEndToEndCombinationScenario(t *testing.T) {
	query := Parse("80/12.5mg")
	assert.Equal(t, []float64{80, 12.5}, query.Values)
	assert.Equal(t, "mg", query.Unit)

	// Perfect combination match.
	d := Score(query, mg(80, 12.5))
	assert.Equal(t, 1.0, d)
	assert.InDelta(t, 0.975, Blend(0.95, d, query, true).Value, 1e-9)

	// Single-ingredient candidate never matches a combination mention.
	d = Score(query, mg(40))
	assert.Equal(t, 0.0, d)
	assert.InDelta(t, 0.475, Blend(0.95, d, query, true).Value, 1e-9)
}
