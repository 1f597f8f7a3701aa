package xlsx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portsrepo "github.com/SscSPs/queue_mood_board/internal/core/ports/repositories"
	"github.com/SscSPs/queue_mood_board/internal/utils/mapping"
	"github.com/xuri/excelize/v2"
)

// Options selects the workbook file and how its rows are interpreted.
type Options struct {
	Path      string
	SheetName string
	Moods     domain.MoodSet
	Location  *time.Location
	Logger    *slog.Logger
}

// MoodEntryRepository keeps readings in a local .xlsx workbook with the same
// layout as the Google Sheets store. The process owns the file; every
// operation reopens it under a mutex so edits made between calls are seen.
type MoodEntryRepository struct {
	mu     sync.Mutex
	path   string
	sheet  string
	moods  domain.MoodSet
	loc    *time.Location
	logger *slog.Logger
}

// Ensure implementation matches interface
var _ portsrepo.MoodEntryRepositoryFacade = (*MoodEntryRepository)(nil)

// NewMoodEntryRepository opens the workbook at opts.Path, creating it with a
// header row when it does not exist yet.
func NewMoodEntryRepository(opts Options) (*MoodEntryRepository, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sheet := opts.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}
	r := &MoodEntryRepository{
		path:   opts.Path,
		sheet:  sheet,
		moods:  opts.Moods,
		loc:    loc,
		logger: logger.With(slog.String("store", "xlsx"), slog.String("path", opts.Path)),
	}
	if err := r.ensureWorkbook(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *MoodEntryRepository) ensureWorkbook() error {
	if _, err := os.Stat(r.path); errors.Is(err, os.ErrNotExist) {
		f := excelize.NewFile()
		defer f.Close()
		if err := f.SetSheetName(f.GetSheetName(0), r.sheet); err != nil {
			return apperrors.NewPersistError("create workbook", err)
		}
		if err := r.writeHeader(f); err != nil {
			return err
		}
		if err := f.SaveAs(r.path); err != nil {
			return apperrors.NewPersistError("create workbook", err)
		}
		r.logger.Info("Created workbook")
		return nil
	} else if err != nil {
		return apperrors.NewPersistError("open workbook", err)
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return apperrors.NewPersistError("open workbook", err)
	}
	defer f.Close()

	idx, err := f.GetSheetIndex(r.sheet)
	if err != nil {
		return apperrors.NewPersistError("open workbook", err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(r.sheet); err != nil {
			return apperrors.NewPersistError("open workbook", err)
		}
	}
	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return apperrors.NewPersistError("open workbook", err)
	}
	switch {
	case len(rows) == 0:
		if err := r.writeHeader(f); err != nil {
			return err
		}
		if err := f.Save(); err != nil {
			return apperrors.NewPersistError("open workbook", err)
		}
	case !mapping.IsHeaderRow(rows[0]):
		return apperrors.NewPersistError("open workbook",
			fmt.Errorf("sheet %q starts with %v, expected %v", r.sheet, rows[0], mapping.SheetHeaders))
	}
	return nil
}

func (r *MoodEntryRepository) writeHeader(f *excelize.File) error {
	header := make([]interface{}, len(mapping.SheetHeaders))
	for i, h := range mapping.SheetHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(r.sheet, "A1", &header); err != nil {
		return apperrors.NewPersistError("write header", err)
	}
	return nil
}

// Append writes one row below the last non-empty row.
func (r *MoodEntryRepository) Append(ctx context.Context, entry domain.MoodEntry) error {
	if err := ctx.Err(); err != nil {
		return apperrors.NewPersistError("append", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return apperrors.NewPersistError("append", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return apperrors.NewPersistError("append", err)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return apperrors.NewPersistError("append", err)
	}

	cells := mapping.RowCells(mapping.ToModelMoodEntryRow(entry))
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	if err := f.SetSheetRow(r.sheet, cell, &row); err != nil {
		return apperrors.NewPersistError("append", err)
	}
	if err := f.Save(); err != nil {
		return apperrors.NewPersistError("append", err)
	}
	return nil
}

// ReadAll returns every parsable row, oldest first.
func (r *MoodEntryRepository) ReadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewPersistError("read all", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, apperrors.NewPersistError("read all", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.sheet)
	if err != nil {
		return nil, apperrors.NewPersistError("read all", err)
	}

	entries := make([]domain.MoodEntry, 0, len(rows))
	for i, cells := range rows {
		if i == 0 && mapping.IsHeaderRow(cells) {
			continue
		}
		entry, err := mapping.ToDomainMoodEntry(mapping.CellsToRow(cells), r.moods, r.loc)
		if err != nil {
			r.logger.Warn("Skipping malformed row", slog.Int("row", i+1), slog.String("error", err.Error()))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
