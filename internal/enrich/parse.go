package enrich

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes a surrounding markdown code fence from a model reply.
// Chat models routinely wrap JSON output in ```json fences even when told
// not to; the payload inside is returned unchanged. Text without a fence
// passes through as-is.
func StripFences(reply string) string {
	trimmed := strings.TrimSpace(reply)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```")
	// Drop the language tag on the opening fence line, if any.
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(trimmed[:idx])
		if firstLine == "" || isLanguageTag(firstLine) {
			trimmed = trimmed[idx+1:]
		}
	}
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ParseReply decodes a model reply into the enrichment schema, stripping
// markdown fences first. The reply must be a non-empty JSON object and every
// drug entry must carry all six fields; a reply that fails any of these
// checks is rejected whole.
func ParseReply(reply string) (Result, error) {
	payload := StripFences(reply)
	if payload == "" {
		return nil, fmt.Errorf("empty enrichment reply")
	}

	var result Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("enrichment reply is not valid JSON: %w", err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("enrichment reply contains no drugs")
	}

	for name, entry := range result {
		if err := validateSections("keywords", entry.Keywords); err != nil {
			return nil, fmt.Errorf("drug %q: %w", name, err)
		}
		if err := validateSections("details", entry.Details); err != nil {
			return nil, fmt.Errorf("drug %q: %w", name, err)
		}
	}

	return result, nil
}

func validateSections(group string, s Sections) error {
	if strings.TrimSpace(s.Effects) == "" {
		return fmt.Errorf("%s.effects is empty", group)
	}
	if strings.TrimSpace(s.Dosage) == "" {
		return fmt.Errorf("%s.dosage is empty", group)
	}
	if strings.TrimSpace(s.Precautions) == "" {
		return fmt.Errorf("%s.precautions is empty", group)
	}
	return nil
}
