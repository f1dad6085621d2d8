package enrich

import (
	"context"
	"fmt"
)

// Completer is the chat-completion dependency.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Logger defines the interface for logging operations in the enrich package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

const systemPrompt = `You are a medication counseling assistant for elderly patients.
You receive reference information about one or more medications, one block per
medication, each block opening with "=== <drug name> ===".

Summarize every medication in plain, reassuring language a patient can follow.
Reply with a single JSON object and nothing else. Keys are the drug names
exactly as they appear in the block headers. Each value is an object:

  {"keywords": {"effects": ..., "dosage": ..., "precautions": ...},
   "details":  {"effects": ..., "dosage": ..., "precautions": ...}}

"keywords" holds short comma-separated phrases; "details" holds one or two
full sentences per field. All six fields are required for every drug.`

// Enricher calls the chat model over prepared context text and decodes the
// reply.
type Enricher struct {
	completer Completer
	logger    Logger
}

func NewEnricher(completer Completer, logger Logger) *Enricher {
	return &Enricher{completer: completer, logger: logger}
}

// Enrich sends the context text through one completion call and returns the
// validated per-drug result. The caller decides whether a failure is fatal
// for the whole job or only for one mention.
func (e *Enricher) Enrich(ctx context.Context, contextText string) (Result, error) {
	reply, err := e.completer.Complete(ctx, systemPrompt, contextText)
	if err != nil {
		return nil, fmt.Errorf("enrichment completion failed: %w", err)
	}

	result, err := ParseReply(reply)
	if err != nil {
		e.logger.Warn("enrichment reply rejected", err, map[string]interface{}{
			"reply_length": len(reply),
		})
		return nil, err
	}

	return result, nil
}
