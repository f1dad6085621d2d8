// Package analysis orchestrates one drug-summary job: resolve every mention
// against the reference collections, run enrichment over the collected
// context, and merge the result into the schedule's candidate list.
package analysis

import (
	"sort"
	"strings"

	"github.com/silvercare-ai/medmatch/internal/retrieval"
)

const productNameKey = "product_name"

// mentionContext is everything retrieval produced for one mention.
type mentionContext struct {
	mention     retrieval.Mention
	product     *retrieval.MatchCandidate
	riskFlag    *retrieval.MatchCandidate
	ingredients []retrieval.MatchCandidate
}

// headerName is the name the enrichment model is asked to key its reply on.
// The resolved product name is preferred so the reply keys line up with the
// reference data; an unresolved mention keeps its raw name.
func (m mentionContext) headerName() string {
	if m.product != nil {
		if name := m.product.Metadata[productNameKey]; name != "" {
			return name
		}
	}
	return m.mention.Name
}

// block renders one mention's context as a "=== <drug name> ===" section.
func (m mentionContext) block() string {
	var b strings.Builder
	b.WriteString("=== ")
	b.WriteString(m.headerName())
	b.WriteString(" ===\n")

	if m.mention.DosageText != "" {
		b.WriteString("mentioned dosage: ")
		b.WriteString(m.mention.DosageText)
		b.WriteByte('\n')
	}
	if m.mention.Note != "" {
		b.WriteString("note: ")
		b.WriteString(m.mention.Note)
		b.WriteByte('\n')
	}

	if m.product != nil {
		writeMetadata(&b, "[product reference]", m.product.Metadata)
	} else {
		b.WriteString("[product reference]\nno reference entry found\n")
	}
	if m.riskFlag != nil {
		writeMetadata(&b, "[elderly caution product]", m.riskFlag.Metadata)
	}
	for _, ingredient := range m.ingredients {
		writeMetadata(&b, "[elderly caution ingredient]", ingredient.Metadata)
	}

	return strings.TrimRight(b.String(), "\n")
}

// writeMetadata appends a labeled section with payload fields in sorted key
// order, so the prompt is stable across runs.
func writeMetadata(b *strings.Builder, label string, metadata map[string]string) {
	b.WriteString(label)
	b.WriteByte('\n')

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if metadata[k] == "" {
			continue
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(metadata[k])
		b.WriteByte('\n')
	}
}

// joinBlocks concatenates mention blocks into the batch context text.
func joinBlocks(contexts []mentionContext) string {
	blocks := make([]string, 0, len(contexts))
	for _, c := range contexts {
		blocks = append(blocks, c.block())
	}
	return strings.Join(blocks, "\n\n")
}
