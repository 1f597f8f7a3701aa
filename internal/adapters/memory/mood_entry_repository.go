package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portsrepo "github.com/SscSPs/queue_mood_board/internal/core/ports/repositories"
)

// MoodEntryRepository keeps readings in process memory, in append order.
type MoodEntryRepository struct {
	mu      sync.RWMutex
	entries []domain.MoodEntry
}

// NewMoodEntryRepository creates an empty in-memory store.
func NewMoodEntryRepository() *MoodEntryRepository {
	return &MoodEntryRepository{}
}

// Ensure implementation matches interface
var _ portsrepo.MoodEntryRepositoryFacade = (*MoodEntryRepository)(nil)

// Append adds one reading at the end.
func (r *MoodEntryRepository) Append(ctx context.Context, entry domain.MoodEntry) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewPersistError("append", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// ReadAll returns a copy of every reading, oldest first.
func (r *MoodEntryRepository) ReadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistError("read all", err)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MoodEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}
