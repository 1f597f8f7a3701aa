package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/queue_mood_board/internal/adapters/database/pgsql"
	"github.com/SscSPs/queue_mood_board/internal/adapters/memory"
	moodsheets "github.com/SscSPs/queue_mood_board/internal/adapters/sheets"
	"github.com/SscSPs/queue_mood_board/internal/adapters/xlsx"
	portsrepo "github.com/SscSPs/queue_mood_board/internal/core/ports/repositories"
	"github.com/SscSPs/queue_mood_board/internal/platform/config"
	"github.com/SscSPs/queue_mood_board/pkg/database"
)

// store is the persistence backend chosen by STORE_BACKEND.
type store struct {
	repos       portsrepo.RepositoryProvider
	healthCheck func(ctx context.Context) error
	close       func()
}

// openStore connects to the configured backend once; the result is reused for
// the lifetime of the process.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*store, error) {
	logger = logger.With(slog.String("backend", cfg.StoreBackend))

	switch cfg.StoreBackend {
	case config.BackendSheets:
		svc, err := moodsheets.NewService(ctx, cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, err
		}
		repo := moodsheets.NewMoodEntryRepository(svc, moodsheets.Options{
			SpreadsheetID: cfg.SpreadsheetID,
			SheetName:     cfg.SheetName,
			Moods:         cfg.Moods,
			Location:      cfg.Location,
			Logger:        logger,
		})
		if err := repo.EnsureHeaders(ctx); err != nil {
			return nil, err
		}
		logger.Info("Google Sheets store ready", slog.String("sheet", cfg.SheetName))
		return &store{repos: portsrepo.RepositoryProvider{MoodEntryRepo: repo}, close: func() {}}, nil

	case config.BackendXLSX:
		repo, err := xlsx.NewMoodEntryRepository(xlsx.Options{
			Path:      cfg.XLSXPath,
			SheetName: cfg.SheetName,
			Moods:     cfg.Moods,
			Location:  cfg.Location,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Workbook store ready", slog.String("path", cfg.XLSXPath))
		return &store{repos: portsrepo.RepositoryProvider{MoodEntryRepo: repo}, close: func() {}}, nil

	case config.BackendPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("Running database migrations...")
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			database.ClosePgxPool(pool, logger)
			return nil, err
		}
		repo := pgsql.NewMoodEntryRepository(pool, cfg.Moods, cfg.Location, logger)
		return &store{
			repos:       portsrepo.RepositoryProvider{MoodEntryRepo: repo},
			healthCheck: repo.Ping,
			close:       func() { database.ClosePgxPool(pool, logger) },
		}, nil

	case config.BackendMemory:
		logger.Warn("Using in-memory store; readings are lost on restart")
		return &store{repos: portsrepo.RepositoryProvider{MoodEntryRepo: memory.NewMoodEntryRepository()}, close: func() {}}, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
