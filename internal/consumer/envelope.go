package consumer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Message types the worker dispatches on.
const (
	TypeDrugSummary  = "drug-summary"
	TypeVideoSummary = "video-summary"
)

// Envelope is the wire form of one queued job. Retry bookkeeping never
// appears here; it lives in transport headers only.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MentionPayload is one drug mention as it arrives on the queue.
type MentionPayload struct {
	Name   string `json:"name"`
	Dosage string `json:"dosage,omitempty"`
	Note   string `json:"note,omitempty"`
}

// DrugSummaryPayload is the payload of a drug-summary message.
type DrugSummaryPayload struct {
	ScheduleID uint             `json:"schedule_id"`
	Mentions   []MentionPayload `json:"mentions"`
}

// VideoSummaryPayload is the payload of a video-summary message.
type VideoSummaryPayload struct {
	MeetingMatchID uint   `json:"meeting_match_id"`
	ObjectKey      string `json:"object_key"`
}

// parseEnvelope decodes and validates the outer envelope. A body that fails
// here counts as a processing failure and goes through the retry policy like
// any other error.
func parseEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, fmt.Errorf("malformed message body: %w", err)
	}

	switch strings.TrimSpace(env.Type) {
	case TypeDrugSummary, TypeVideoSummary:
	case "":
		return Envelope{}, fmt.Errorf("message has no type")
	default:
		return Envelope{}, fmt.Errorf("unknown message type %q", env.Type)
	}

	if len(env.Payload) == 0 {
		return Envelope{}, fmt.Errorf("message %q has no payload", env.Type)
	}
	return env, nil
}

func parseDrugSummary(payload json.RawMessage) (DrugSummaryPayload, error) {
	var p DrugSummaryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return DrugSummaryPayload{}, fmt.Errorf("malformed drug-summary payload: %w", err)
	}
	if p.ScheduleID == 0 {
		return DrugSummaryPayload{}, fmt.Errorf("drug-summary payload has no schedule id")
	}
	return p, nil
}

func parseVideoSummary(payload json.RawMessage) (VideoSummaryPayload, error) {
	var p VideoSummaryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return VideoSummaryPayload{}, fmt.Errorf("malformed video-summary payload: %w", err)
	}
	return p, nil
}
