package repositories

import (
	"context"

	"github.com/SscSPs/queue_mood_board/internal/core/domain"
)

// MoodEntryReader defines read operations for mood readings
type MoodEntryReader interface {
	// ReadAll returns every stored reading, oldest first.
	// Rows that cannot be parsed are skipped rather than failing the read.
	ReadAll(ctx context.Context) ([]domain.MoodEntry, error)
}

// MoodEntryWriter defines write operations for mood readings
type MoodEntryWriter interface {
	// Append adds one reading after all existing ones. Existing rows are never touched.
	Append(ctx context.Context, entry domain.MoodEntry) error
}

// MoodEntryRepositoryFacade combines all mood reading repository interfaces.
// Failures are reported as *apperrors.PersistError.
type MoodEntryRepositoryFacade interface {
	MoodEntryReader
	MoodEntryWriter
}
