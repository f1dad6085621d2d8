package analysis

import (
	"sort"
	"strings"

	"github.com/silvercare-ai/medmatch/internal/enrich"
	"github.com/silvercare-ai/medmatch/internal/schedule"
)

// mergeCandidates attaches enrichment results to the schedule's existing
// drug_candidates list. Each existing entry is matched to at most one
// enrichment key, exact product-name equality first, then substring
// containment in either direction; several entries may share one key.
// Existing entries that match nothing stay untouched; enrichment keys that
// match nothing are dropped with a warning. The merge never invents a
// candidate that was not already on the schedule.
func mergeCandidates(existing []schedule.DrugCandidate, result enrich.Result, logger Logger) []schedule.DrugCandidate {
	merged := make([]schedule.DrugCandidate, len(existing))
	copy(merged, existing)

	// Map iteration order is random; keys are walked sorted so the same
	// inputs always merge the same way.
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)

	used := make(map[string]bool, len(names))
	for i := range merged {
		name, ok := matchEnrichment(merged[i].ProductName, names)
		if !ok {
			continue
		}
		e := result[name]
		merged[i].Description = &e
		used[name] = true
	}

	for _, name := range names {
		if !used[name] {
			logger.Warn("enrichment drug matches no schedule candidate, dropping", nil, map[string]interface{}{
				"drug": name,
			})
		}
	}

	return merged
}

// matchEnrichment picks the enrichment key for one candidate name. An exact
// match beats any substring match; within a tier the first key in sorted
// order wins.
func matchEnrichment(productName string, names []string) (string, bool) {
	for _, name := range names {
		if productName == name {
			return name, true
		}
	}
	if productName == "" {
		return "", false
	}
	for _, name := range names {
		if strings.Contains(productName, name) || strings.Contains(name, productName) {
			return name, true
		}
	}
	return "", false
}
