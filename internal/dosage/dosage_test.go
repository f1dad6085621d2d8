package dosage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantValues []float64
		wantUnit   string
	}{
		{name: "simple milligram", text: "500mg", wantValues: []float64{500}, wantUnit: "mg"},
		{name: "decimal value", text: "12.5mg", wantValues: []float64{12.5}, wantUnit: "mg"},
		{name: "combination slash", text: "80/12.5mg", wantValues: []float64{80, 12.5}, wantUnit: "mg"},
		{name: "combination both units", text: "80mg/12.5mg", wantValues: []float64{80, 12.5}, wantUnit: "mg"},
		{name: "korean milligram", text: "100밀리그램", wantValues: []float64{100}, wantUnit: "mg"},
		{name: "korean milligram alt spelling", text: "100밀리그람", wantValues: []float64{100}, wantUnit: "mg"},
		{name: "korean milligram ocr spelling", text: "100미리그람", wantValues: []float64{100}, wantUnit: "mg"},
		{name: "korean gram", text: "1그램", wantValues: []float64{1}, wantUnit: "g"},
		{name: "korean gram alt spelling", text: "1그람", wantValues: []float64{1}, wantUnit: "g"},
		{name: "microgram symbol", text: "50μg", wantValues: []float64{50}, wantUnit: "mcg"},
		{name: "korean microgram", text: "50마이크로그램", wantValues: []float64{50}, wantUnit: "mcg"},
		{name: "milliliter", text: "5ml", wantValues: []float64{5}, wantUnit: "ml"},
		{name: "spaces around unit", text: "250 mg", wantValues: []float64{250}, wantUnit: "mg"},
		{name: "unknown unit kept verbatim", text: "2tablets", wantValues: []float64{2}, wantUnit: "tablets"},
		{name: "bare number has no unit", text: "100", wantValues: []float64{100}, wantUnit: ""},
		{name: "empty text", text: "", wantValues: nil, wantUnit: ""},
		{name: "no numeric token", text: "mg", wantValues: nil, wantUnit: ""},
		{name: "whitespace only", text: "   ", wantValues: nil, wantUnit: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.text)
			assert.Equal(t, tt.wantValues, got.Values)
			assert.Equal(t, tt.wantUnit, got.Unit)
		})
	}
}

func TestParseMicrogramNotMistakenForGram(t *testing.T) {
	got := Parse("50마이크로그람")
	assert.Equal(t, "mcg", got.Unit)
}

func TestIsCombination(t *testing.T) {
	assert.False(t, Components{Values: []float64{80}, Unit: "mg"}.IsCombination())
	assert.True(t, Components{Values: []float64{80, 12.5}, Unit: "mg"}.IsCombination())
	assert.False(t, Components{}.IsCombination())
}
