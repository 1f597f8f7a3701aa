package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portsrepo "github.com/SscSPs/queue_mood_board/internal/core/ports/repositories"
	"github.com/SscSPs/queue_mood_board/internal/utils/mapping"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Options selects the worksheet and how its rows are interpreted.
type Options struct {
	SpreadsheetID string
	SheetName     string
	Moods         domain.MoodSet
	Location      *time.Location
	Logger        *slog.Logger
}

// MoodEntryRepository stores readings as rows of a Google Sheets worksheet:
// a header row followed by [timestamp, mood, note] rows in append order.
type MoodEntryRepository struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
	moods         domain.MoodSet
	loc           *time.Location
	logger        *slog.Logger
}

// Ensure implementation matches interface
var _ portsrepo.MoodEntryRepositoryFacade = (*MoodEntryRepository)(nil)

// NewService authenticates with a service-account key file and returns a Sheets client.
// The client is built once per process and reused for every call.
func NewService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*sheets.Service, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", credentialsFile, err)
	}
	creds, err := google.CredentialsFromJSON(ctx, data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account credentials: %w", err)
	}
	opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return svc, nil
}

// NewMoodEntryRepository wraps an authenticated Sheets client.
func NewMoodEntryRepository(svc *sheets.Service, opts Options) *MoodEntryRepository {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return &MoodEntryRepository{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		sheetName:     sheetName,
		moods:         opts.Moods,
		loc:           loc,
		logger:        logger.With(slog.String("store", "sheets")),
	}
}

// a1 qualifies a cell range with the worksheet name.
func (r *MoodEntryRepository) a1(cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(r.sheetName, "'", "''"), cells)
}

// EnsureHeaders writes the header row into an empty worksheet. A worksheet whose
// first row is something else is reported, never cleared.
func (r *MoodEntryRepository) EnsureHeaders(ctx context.Context) error {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.a1("A1:C1")).Context(ctx).Do()
	if err != nil {
		return apperrors.NewPersistError("ensure headers", err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		first := toStrings(resp.Values[0])
		if mapping.IsHeaderRow(first) {
			return nil
		}
		return apperrors.NewPersistError("ensure headers",
			fmt.Errorf("worksheet %q starts with %v, expected %v", r.sheetName, first, mapping.SheetHeaders))
	}

	header := make([]interface{}, len(mapping.SheetHeaders))
	for i, h := range mapping.SheetHeaders {
		header[i] = h
	}
	_, err = r.svc.Spreadsheets.Values.Update(r.spreadsheetID, r.a1("A1:C1"), &sheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return apperrors.NewPersistError("ensure headers", err)
	}
	r.logger.Info("Created header row", slog.String("sheet", r.sheetName))
	return nil
}

// Append adds one row after the last row of the table. Values are stored RAW so
// the timestamp stays a plain string.
func (r *MoodEntryRepository) Append(ctx context.Context, entry domain.MoodEntry) error {
	cells := mapping.RowCells(mapping.ToModelMoodEntryRow(entry))
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	_, err := r.svc.Spreadsheets.Values.Append(r.spreadsheetID, r.a1("A:C"), &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return apperrors.NewPersistError("append", err)
	}
	return nil
}

// ReadAll returns every parsable row, oldest first.
func (r *MoodEntryRepository) ReadAll(ctx context.Context) ([]domain.MoodEntry, error) {
	resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, r.a1("A:C")).Context(ctx).Do()
	if err != nil {
		return nil, apperrors.NewPersistError("read all", err)
	}

	entries := make([]domain.MoodEntry, 0, len(resp.Values))
	for i, raw := range resp.Values {
		cells := toStrings(raw)
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

func toStrings(values []interface{}) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if s, ok := v.(string); ok {
			out[i] = s
		} else if v != nil {
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
