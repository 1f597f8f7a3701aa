package mapping

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	"github.com/SscSPs/queue_mood_board/internal/models"
)

// TimestampLayout is the cell format used for the timestamp column.
const TimestampLayout = "2006-01-02 15:04:05"

// SheetHeaders is the required header row of a mood spreadsheet.
var SheetHeaders = []string{"timestamp", "mood", "note"}

// ErrMalformedRow marks a stored row that cannot be turned into a MoodEntry.
var ErrMalformedRow = errors.New("malformed mood row")

// ToModelMoodEntryRow converts a domain MoodEntry to its spreadsheet cells.
func ToModelMoodEntryRow(e domain.MoodEntry) models.MoodEntryRow {
	return models.MoodEntryRow{
		Timestamp: e.Timestamp.Format(TimestampLayout),
		Mood:      e.Mood,
		Note:      e.Note,
	}
}

// RowCells returns the cells of r in column order.
func RowCells(r models.MoodEntryRow) []string {
	return []string{r.Timestamp, r.Mood, r.Note}
}

// CellsToRow reads up to three cells; missing trailing cells are empty.
func CellsToRow(cells []string) models.MoodEntryRow {
	var r models.MoodEntryRow
	if len(cells) > 0 {
		r.Timestamp = cells[0]
	}
	if len(cells) > 1 {
		r.Mood = cells[1]
	}
	if len(cells) > 2 {
		r.Note = cells[2]
	}
	return r
}

// IsHeaderRow reports whether cells is exactly the required header row.
func IsHeaderRow(cells []string) bool {
	if len(cells) != len(SheetHeaders) {
		return false
	}
	for i, h := range SheetHeaders {
		if strings.TrimSpace(cells[i]) != h {
			return false
		}
	}
	return true
}

// ToDomainMoodEntry parses a stored row. Timestamps without a zone are read in loc.
// Rows with an empty or unknown mood or an unparsable timestamp return ErrMalformedRow.
func ToDomainMoodEntry(r models.MoodEntryRow, moods domain.MoodSet, loc *time.Location) (domain.MoodEntry, error) {
	ts, err := ParseTimestamp(r.Timestamp, loc)
	if err != nil {
		return domain.MoodEntry{}, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	mood, ok := moods.Resolve(r.Mood)
	if !ok {
		return domain.MoodEntry{}, fmt.Errorf("%w: %v %q", ErrMalformedRow, domain.ErrUnknownMood, r.Mood)
	}
	return domain.MoodEntry{Timestamp: ts, Mood: mood, Note: r.Note}, nil
}

// ParseTimestamp accepts TimestampLayout (in loc) or RFC 3339 (converted to loc).
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if t, err := time.ParseInLocation(TimestampLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
	}
	return t.In(loc), nil
}

// ToModelMoodEntryRecord converts a domain MoodEntry to a table record.
func ToModelMoodEntryRecord(e domain.MoodEntry) models.MoodEntryRecord {
	return models.MoodEntryRecord{
		RecordedAt: e.Timestamp,
		Mood:       e.Mood,
		Note:       e.Note,
	}
}

// RecordToDomainMoodEntry converts a table record, placing its time in loc.
func RecordToDomainMoodEntry(m models.MoodEntryRecord, moods domain.MoodSet, loc *time.Location) (domain.MoodEntry, error) {
	if m.RecordedAt.IsZero() {
		return domain.MoodEntry{}, fmt.Errorf("%w: zero timestamp", ErrMalformedRow)
	}
	mood, ok := moods.Resolve(m.Mood)
	if !ok {
		return domain.MoodEntry{}, fmt.Errorf("%w: %v %q", ErrMalformedRow, domain.ErrUnknownMood, m.Mood)
	}
	return domain.MoodEntry{Timestamp: m.RecordedAt.In(loc), Mood: mood, Note: m.Note}, nil
}
