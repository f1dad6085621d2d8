// Package dosage parses free-text dosage expressions and scores dosage
// agreement between a drug mention and a reference candidate.
package dosage

import (
	"regexp"
	"strconv"
	"strings"
)

// Canonical units. Anything else stays verbatim and never matches these.
const (
	UnitMilligram  = "mg"
	UnitGram       = "g"
	UnitMicrogram  = "mcg"
	UnitMilliliter = "ml"
)

// Components is the parsed form of a dosage expression: the numeric values in
// their original order and a canonical unit. An empty value list is a defined
// non-error outcome for text without a recognizable dosage.
type Components struct {
	Values []float64
	Unit   string
}

// IsCombination reports whether the dosage describes a combination product
// (two or more active-ingredient values, e.g. "80/12.5mg").
func (c Components) IsCombination() bool {
	return len(c.Values) >= 2
}

var numberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

// unitSynonyms maps every accepted spelling to its canonical unit. Korean
// pharmaceutical texts spell the same unit several ways, including common
// misspellings that appear in OCR output.
var unitSynonyms = map[string]string{
	"mg":       UnitMilligram,
	"㎎":        UnitMilligram,
	"밀리그램":     UnitMilligram,
	"밀리그람":     UnitMilligram,
	"미리그램":     UnitMilligram,
	"미리그람":     UnitMilligram,
	"mcg":      UnitMicrogram,
	"μg":       UnitMicrogram,
	"㎍":        UnitMicrogram,
	"ug":       UnitMicrogram,
	"마이크로그램":   UnitMicrogram,
	"마이크로그람":   UnitMicrogram,
	"ml":       UnitMilliliter,
	"㎖":        UnitMilliliter,
	"밀리리터":     UnitMilliliter,
	"미리리터":     UnitMilliliter,
	"g":        UnitGram,
	"그램":       UnitGram,
	"그람":       UnitGram,
}

// orderedSynonyms holds the synonym spellings longest-first so that a scan
// never matches "g" inside "mg" or "그램" inside "밀리그램".
var orderedSynonyms = func() []string {
	keys := make([]string, 0, len(unitSynonyms))
	for k := range unitSynonyms {
		keys = append(keys, k)
	}
	// Insertion sort by descending rune length; the list is tiny.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && len([]rune(keys[j])) > len([]rune(keys[j-1])); j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}()

// Parse extracts the numeric components and canonical unit from a free-text
// dosage expression.
//
// Every numeric token (integer or decimal) is kept in order; combination
// products separate values with "/". Unit spellings are normalized through
// the synonym table; an unrecognized unit is returned verbatim so it can
// never compare equal to a canonical one. Text without a numeric token
// yields empty Components.
func Parse(text string) Components {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Components{}
	}

	matches := numberPattern.FindAllString(trimmed, -1)
	if len(matches) == 0 {
		return Components{}
	}

	values := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return Components{}
	}

	return Components{
		Values: values,
		Unit:   normalizeUnit(trimmed),
	}
}

// normalizeUnit finds the unit spelling in the expression and maps it to its
// canonical form. If no known spelling occurs, whatever non-numeric text
// remains is returned verbatim; an expression that is numbers only has no
// unit.
func normalizeUnit(text string) string {
	lowered := strings.ToLower(text)
	for _, syn := range orderedSynonyms {
		if strings.Contains(lowered, syn) {
			return unitSynonyms[syn]
		}
	}

	rest := numberPattern.ReplaceAllString(lowered, "")
	rest = strings.Map(func(r rune) rune {
		switch r {
		case '/', ' ', '\t', ',', '(', ')':
			return -1
		}
		return r
	}, rest)
	return rest
}
