// Package enrich turns retrieval context for resolved drug mentions into
// patient-facing summaries through a chat-completion model, and decodes the
// model's reply into a validated schema.
package enrich

// Sections holds the three summary fields produced for a drug, either as
// short keywords or as full sentences.
type Sections struct {
	Effects     string `json:"effects"`
	Dosage      string `json:"dosage"`
	Precautions string `json:"precautions"`
}

// DrugEnrichment is the model's output for one drug: a keyword group and a
// detailed-sentence group, each with the same three fields.
type DrugEnrichment struct {
	Keywords Sections `json:"keywords"`
	Details  Sections `json:"details"`
}

// Result maps a drug name, as it appeared in the request context, to its
// enrichment.
type Result map[string]DrugEnrichment
