package dosage

import "sort"

// pairRatioCutoff disqualifies a combination match when any paired ratio
// falls below it. A single mismatched active ingredient means the products
// are not interchangeable, whatever the other ingredients say.
const pairRatioCutoff = 0.8

// Blend weights for the composite score.
const (
	nameWeightDefault     = 0.7
	dosageWeightDefault   = 0.3
	combinationPairWeight = 0.5
)

// Score computes dosage agreement between a query dosage and a candidate
// dosage, in [0,1].
//
// Rules:
//   - missing or differing units score 0
//   - either side without numeric values scores 0
//   - single vs single scores min/max
//   - combination vs combination of equal arity pairs the sorted values and
//     averages the per-pair min/max ratios; any pair under 0.8 scores 0
//   - differing arity (combination vs single) scores 0
func Score(query, candidate Components) float64 {
	if query.Unit == "" || candidate.Unit == "" || query.Unit != candidate.Unit {
		return 0
	}
	if len(query.Values) == 0 || len(candidate.Values) == 0 {
		return 0
	}
	if len(query.Values) != len(candidate.Values) {
		return 0
	}

	if len(query.Values) == 1 {
		return ratio(query.Values[0], candidate.Values[0])
	}

	a := sortedCopy(query.Values)
	b := sortedCopy(candidate.Values)

	sum := 0.0
	for i := range a {
		r := ratio(a[i], b[i])
		if r < pairRatioCutoff {
			return 0
		}
		sum += r
	}
	return sum / float64(len(a))
}

// CompositeScore is the blended ranking score for one candidate.
type CompositeScore struct {
	Value          float64
	NameSimilarity float64
	DosageScore    float64
}

// Blend combines a name similarity with a dosage score.
//
// A mention without dosage text ranks on name similarity alone. A mention
// whose dosage is a combination weights dosage at one half, since a
// combination drug must not match on name alone. Everything else weights
// name at 0.7 and dosage at 0.3.
func Blend(nameSimilarity, dosageScore float64, query Components, hasDosageText bool) CompositeScore {
	if !hasDosageText {
		return CompositeScore{
			Value:          nameSimilarity,
			NameSimilarity: nameSimilarity,
		}
	}

	nameWeight, dosageWeight := nameWeightDefault, dosageWeightDefault
	if query.IsCombination() {
		nameWeight, dosageWeight = combinationPairWeight, combinationPairWeight
	}

	return CompositeScore{
		Value:          nameWeight*nameSimilarity + dosageWeight*dosageScore,
		NameSimilarity: nameSimilarity,
		DosageScore:    dosageScore,
	}
}

func ratio(a, b float64) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return a / b
}

func sortedCopy(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	sort.Float64s(out)
	return out
}
