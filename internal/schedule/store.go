package schedule

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/silvercare-ai/medmatch/pkg/postgres"
)

// Logger defines the interface for logging operations in the schedule package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Store reads and writes the worker's slice of the schedule tables.
type Store struct {
	db     postgres.Client
	logger Logger
}

func NewStore(db postgres.Client, logger Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Description loads and decodes the description document of one schedule.
// A NULL or empty column decodes to an empty document, not an error.
func (s *Store) Description(ctx context.Context, scheduleID uint) (Description, error) {
	var row MedicationSchedule
	if err := s.db.First(ctx, &row, scheduleID); err != nil {
		return Description{}, fmt.Errorf("load schedule %d: %w", scheduleID, err)
	}

	if len(row.Description) == 0 {
		return Description{}, nil
	}

	var doc Description
	if err := json.Unmarshal(row.Description, &doc); err != nil {
		return Description{}, fmt.Errorf("decode description of schedule %d: %w", scheduleID, err)
	}
	return doc, nil
}

// UpdateDescription replaces the description document of one schedule.
func (s *Store) UpdateDescription(ctx context.Context, scheduleID uint, doc Description) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode description of schedule %d: %w", scheduleID, err)
	}

	affected, err := s.db.Exec(ctx,
		"UPDATE medication_schedules SET description = CAST(? AS jsonb) WHERE id = ?",
		string(payload), scheduleID)
	if err != nil {
		return fmt.Errorf("update schedule %d: %w", scheduleID, err)
	}
	if affected == 0 {
		return fmt.Errorf("schedule %d not found", scheduleID)
	}
	return nil
}

// UpdateMeetingContent writes the meeting summary for one meeting match.
func (s *Store) UpdateMeetingContent(ctx context.Context, meetingMatchID uint, content string) error {
	affected, err := s.db.UpdateColumn(ctx, &MeetingMatch{ID: meetingMatchID}, "content", content)
	if err != nil {
		return fmt.Errorf("update meeting match %d: %w", meetingMatchID, err)
	}
	if affected == 0 {
		return fmt.Errorf("meeting match %d not found", meetingMatchID)
	}
	return nil
}
