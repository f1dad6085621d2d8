// Package schedule persists analysis results onto medication schedules and
// meeting matches.
package schedule

import (
	"encoding/json"

	"github.com/silvercare-ai/medmatch/internal/enrich"
)

// MedicationSchedule mirrors the medication_schedules table. Only the columns
// the worker touches are mapped; the row is owned by the scheduling service.
type MedicationSchedule struct {
	ID          uint            `gorm:"primaryKey"`
	Description json.RawMessage `gorm:"type:jsonb"`
}

func (MedicationSchedule) TableName() string {
	return "medication_schedules"
}

// MeetingMatch mirrors the meeting_matches table. The video path writes the
// meeting summary into Content.
type MeetingMatch struct {
	ID      uint   `gorm:"primaryKey"`
	Content string `gorm:"type:text"`
}

func (MeetingMatch) TableName() string {
	return "meeting_matches"
}

// DrugCandidate is one entry of the drug_candidates list inside a schedule's
// description document. ProductName is written by the upstream recognition
// pipeline; the worker only ever fills in Description.
type DrugCandidate struct {
	ProductName string                 `json:"productName"`
	Description *enrich.DrugEnrichment `json:"description,omitempty"`
}

// Description is the JSONB document stored in medication_schedules.description.
type Description struct {
	DrugCandidates []DrugCandidate `json:"drug_candidates"`
}
