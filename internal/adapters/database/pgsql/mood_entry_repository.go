package pgsql

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portsrepo "github.com/SscSPs/queue_mood_board/internal/core/ports/repositories"
	"github.com/SscSPs/queue_mood_board/internal/models"
	"github.com/SscSPs/queue_mood_board/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMoodEntryRepository struct {
	BaseRepository
	moods  domain.MoodSet
	loc    *time.Location
	logger *slog.Logger
}

// NewMoodEntryRepository creates a repository backed by the mood_entries table.
func NewMoodEntryRepository(pool *pgxpool.Pool, moods domain.MoodSet, loc *time.Location, logger *slog.Logger) *PgxMoodEntryRepository {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PgxMoodEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		moods:          moods,
		loc:            loc,
		logger:         logger.With(slog.String("store", "postgres")),
	}
}

// Ensure implementation matches interface
var _ portsrepo.MoodEntryRepositoryFacade = (*PgxMoodEntryRepository)(nil)

func (r *PgxMoodEntryRepository) Append(ctx context.Context, entry domain.MoodEntry) error {
	rec := mapping.ToModelMoodEntryRecord(entry)
	query := `
		INSERT INTO mood_entries (recorded_at, mood, note)
		VALUES ($1, $2, $3);
	`
	if _, err := r.Pool.Exec(ctx, query, rec.RecordedAt, rec.Mood, rec.Note); err != nil {
		return apperrors.NewPersistError("append", err)
	}
	return nil
}

// ReadAll returns every stored reading in insertion order. Rows whose mood is
// no longer configured are skipped.
func (r *PgxMoodEntryRepository) ReadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	query := `
		SELECT id, recorded_at, mood, note
		FROM mood_entries
		ORDER BY id;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewPersistError("read all", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.MoodEntryRecord, error) {
		var rec models.MoodEntryRecord
		err := row.Scan(&rec.ID, &rec.RecordedAt, &rec.Mood, &rec.Note)
		return rec, err
	})
	if err != nil {
		return nil, apperrors.NewPersistError("read all", err)
	}

	entries := make([]domain.MoodEntry, 0, len(records))
	for _, rec := range records {
		entry, err := mapping.RecordToDomainMoodEntry(rec, r.moods, r.loc)
		if err != nil {
			r.logger.Warn("Skipping malformed row", slog.Int64("id", rec.ID), slog.String("error", err.Error()))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
