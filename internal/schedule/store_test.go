package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeDB struct {
	description  json.RawMessage
	firstErr     error
	execSQL      string
	execValues   []interface{}
	execAffected int64
	execErr      error
	colAffected  int64
	colErr       error
	colName      string
	colValue     interface{}
}

func (f *fakeDB) First(_ context.Context, dest interface{}, _ ...interface{}) error {
	if f.firstErr != nil {
		return f.firstErr
	}
	row := dest.(*MedicationSchedule)
	row.Description = f.description
	return nil
}

func (f *fakeDB) UpdateColumn(_ context.Context, _ interface{}, columnName string, value interface{}) (int64, error) {
	f.colName = columnName
	f.colValue = value
	return f.colAffected, f.colErr
}

func (f *fakeDB) Exec(_ context.Context, sql string, values ...interface{}) (int64, error) {
	f.execSQL = sql
	f.execValues = values
	return f.execAffected, f.execErr
}

func (f *fakeDB) DB() *gorm.DB            { return nil }
func (f *fakeDB) GracefulShutdown() error { return nil }

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

func TestDescriptionDecodes(t *testing.T) {
	db := &fakeDB{description: json.RawMessage(`{"drug_candidates":[{"productName":"타이레놀정500밀리그람"}]}`)}
	store := NewStore(db, nopLogger{})

	doc, err := store.Description(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, doc.DrugCandidates, 1)
	assert.Equal(t, "타이레놀정500밀리그람", doc.DrugCandidates[0].ProductName)
	assert.Nil(t, doc.DrugCandidates[0].Description)
}

func TestDescriptionEmptyColumn(t *testing.T) {
	store := NewStore(&fakeDB{}, nopLogger{})

	doc, err := store.Description(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, doc.DrugCandidates)
}

func TestDescriptionRowMissing(t *testing.T) {
	store := NewStore(&fakeDB{firstErr: gorm.ErrRecordNotFound}, nopLogger{})

	_, err := store.Description(context.Background(), 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateDescriptionCastsToJSONB(t *testing.T) {
	db := &fakeDB{execAffected: 1}
	store := NewStore(db, nopLogger{})

	err := store.UpdateDescription(context.Background(), 7, Description{
		DrugCandidates: []DrugCandidate{{ProductName: "아스피린"}},
	})
	require.NoError(t, err)
	assert.Contains(t, db.execSQL, "CAST(? AS jsonb)")
	require.Len(t, db.execValues, 2)
	assert.JSONEq(t, `{"drug_candidates":[{"productName":"아스피린"}]}`, db.execValues[0].(string))
	assert.Equal(t, uint(7), db.execValues[1])
}

func TestUpdateDescriptionNoRows(t *testing.T) {
	store := NewStore(&fakeDB{execAffected: 0}, nopLogger{})

	err := store.UpdateDescription(context.Background(), 7, Description{})
	assert.Error(t, err)
}

func TestUpdateMeetingContent(t *testing.T) {
	db := &fakeDB{colAffected: 1}
	store := NewStore(db, nopLogger{})

	require.NoError(t, store.UpdateMeetingContent(context.Background(), 3, "요약본"))
	assert.Equal(t, "content", db.colName)
	assert.Equal(t, "요약본", db.colValue)

	db.colErr = errors.New("connection reset")
	assert.Error(t, store.UpdateMeetingContent(context.Background(), 3, "요약본"))
}
