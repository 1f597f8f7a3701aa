package services

import (
	"context"
	"time"

	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	"github.com/SscSPs/queue_mood_board/internal/dto"
)

// MoodReaderSvc defines read operations for mood readings
type MoodReaderSvc interface {
	// TodayDistribution counts today's readings by mood.
	TodayDistribution(ctx context.Context) (*domain.Distribution, error)

	// RangeDistribution counts readings between start and end inclusive.
	RangeDistribution(ctx context.Context, start, end domain.Date) (*domain.Distribution, error)

	// ListEntries returns the readings between start and end inclusive, oldest first.
	ListEntries(ctx context.Context, start, end domain.Date) ([]domain.MoodEntry, error)

	// Options returns the configured mood options in display order.
	Options() []domain.MoodOption

	// Resolve maps an emoji or a case-insensitive label to the stored emoji.
	Resolve(value string) (string, bool)

	// Today returns the current date in the board's location.
	Today() domain.Date
}

// MoodWriterSvc defines write operations for mood readings
type MoodWriterSvc interface {
	// SubmitMood stamps and appends a new reading.
	SubmitMood(ctx context.Context, req dto.SubmitMoodRequest) (*domain.MoodEntry, error)
}

// MoodSvcFacade combines all mood-related service interfaces
type MoodSvcFacade interface {
	MoodReaderSvc
	MoodWriterSvc
}

// RefreshSvc re-runs the today-distribution pipeline on a timer and on demand,
// pushing every result to the current subscribers.
type RefreshSvc interface {
	// Run drives the timer until ctx is done, then closes all subscriptions.
	Run(ctx context.Context) error

	// Trigger requests an immediate pass. It never blocks.
	Trigger()

	// Subscribe returns a channel of updates and a function that ends the subscription.
	Subscribe() (<-chan domain.DistributionUpdate, func())

	// Interval is the fixed auto-refresh period.
	Interval() time.Duration
}
