package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	portsrepo "github.com/SscSPs/queue_mood_board/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/queue_mood_board/internal/core/ports/services"
	"github.com/SscSPs/queue_mood_board/internal/dto"
)

// moodService implements the MoodSvcFacade interface
type moodService struct {
	BaseService
	repo     portsrepo.MoodEntryRepositoryFacade
	moods    domain.MoodSet
	location *time.Location
	now      func() time.Time
	onSubmit func()
}

// MoodServiceOption is a functional option for configuring the mood service
type MoodServiceOption func(*moodService)

// WithLocation sets the location used both to stamp readings and to decide what "today" is.
func WithLocation(loc *time.Location) MoodServiceOption {
	return func(s *moodService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) MoodServiceOption {
	return func(s *moodService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSubmitHook registers a callback run after every successful submission.
func WithSubmitHook(hook func()) MoodServiceOption {
	return func(s *moodService) {
		s.onSubmit = hook
	}
}

// NewMoodService creates a new mood service with the provided options
func NewMoodService(repo portsrepo.MoodEntryRepositoryFacade, moods domain.MoodSet, options ...MoodServiceOption) portssvc.MoodSvcFacade {
	svc := &moodService{
		repo:     repo,
		moods:    moods,
		location: time.Local,
		now:      time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// SubmitMood validates the mood, stamps the reading with the current time and appends it.
// A missing or unknown mood fails with apperrors.ErrValidation before the store is called.
func (s *moodService) SubmitMood(ctx context.Context, req dto.SubmitMoodRequest) (*domain.MoodEntry, error) {
	mood, ok := s.moods.Resolve(req.Mood)
	if !ok {
		if req.Mood == "" {
			return nil, fmt.Errorf("%w: a mood must be selected", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("%w: %v %q", apperrors.ErrValidation, domain.ErrUnknownMood, req.Mood)
	}

	entry := domain.MoodEntry{
		// Stored timestamps have second resolution.
		Timestamp: s.now().In(s.location).Truncate(time.Second),
		Mood:      mood,
		Note:      req.Note,
	}

	if err := s.repo.Append(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to append mood reading", slog.String("mood", mood))
		return nil, fmt.Errorf("failed to log mood in service: %w", err)
	}

	s.LogInfo(ctx, "Mood reading appended", slog.String("mood", mood), slog.Time("timestamp", entry.Timestamp))
	if s.onSubmit != nil {
		s.onSubmit()
	}
	return &entry, nil
}

// TodayDistribution counts today's readings by mood.
func (s *moodService) TodayDistribution(ctx context.Context) (*domain.Distribution, error) {
	today := s.Today()
	return s.RangeDistribution(ctx, today, today)
}

// RangeDistribution counts the readings dated between start and end inclusive.
func (s *moodService) RangeDistribution(ctx context.Context, start, end domain.Date) (*domain.Distribution, error) {
	rows, err := s.readRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	dist := domain.ComputeRangeDistribution(rows, start, end)
	return &dist, nil
}

// ListEntries returns the readings dated between start and end inclusive, oldest first.
func (s *moodService) ListEntries(ctx context.Context, start, end domain.Date) ([]domain.MoodEntry, error) {
	rows, err := s.readRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return domain.FilterEntries(rows, start, end), nil
}

func (s *moodService) readRange(ctx context.Context, start, end domain.Date) ([]domain.MoodEntry, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date %s is before start date %s", apperrors.ErrValidation, end, start)
	}
	rows, err := s.repo.ReadAll(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read mood readings")
		return nil, fmt.Errorf("failed to read moods in service: %w", err)
	}
	s.LogDebug(ctx, "Read mood readings", slog.Int("rows", len(rows)), slog.String("start", start.String()), slog.String("end", end.String()))
	return rows, nil
}

// Options returns the configured mood options in display order.
func (s *moodService) Options() []domain.MoodOption {
	return s.moods.Options()
}

// Resolve maps an emoji or label to the emoji stored for it.
func (s *moodService) Resolve(value string) (string, bool) {
	return s.moods.Resolve(value)
}

// Today returns the current date in the board's location.
func (s *moodService) Today() domain.Date {
	return domain.DateOf(s.now().In(s.location))
}
