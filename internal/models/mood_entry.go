package models

import "time"

// MoodEntryRow is a mood reading as stored in a spreadsheet: three text cells.
type MoodEntryRow struct {
	Timestamp string // "2006-01-02 15:04:05" in the board's location, or RFC 3339
	Mood      string
	Note      string
}

// MoodEntryRecord is a mood reading as stored in the mood_entries table.
type MoodEntryRecord struct {
	ID         int64     `json:"id"`
	RecordedAt time.Time `json:"recordedAt"`
	Mood       string    `json:"mood"`
	Note       string    `json:"note"`
}
