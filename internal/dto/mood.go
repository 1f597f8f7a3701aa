package dto

import (
	"time"

	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SubmitMoodRequest is the Input Panel payload. The mood may be given as the
// emoji or the label of a configured option.
type SubmitMoodRequest struct {
	Mood string `json:"mood" form:"mood" binding:"required,mood"`
	Note string `json:"note" form:"note"`
}

// DateRangeQuery selects an inclusive range of calendar dates (YYYY-MM-DD).
// Omitted bounds default to today.
type DateRangeQuery struct {
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}

// ListMoodEntriesQuery selects a date range and one page of readings in it.
type ListMoodEntriesQuery struct {
	DateRangeQuery
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	NextToken string `form:"nextToken"`
}

// MoodEntryResponse defines the data returned for a mood reading.
type MoodEntryResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Mood      string    `json:"mood"`
	Label     string    `json:"label"`
	Note      string    `json:"note"`
}

// ToMoodEntryResponse converts a domain.MoodEntry to MoodEntryResponse DTO
func ToMoodEntryResponse(e *domain.MoodEntry, options []domain.MoodOption) MoodEntryResponse {
	return MoodEntryResponse{
		Timestamp: e.Timestamp,
		Mood:      e.Mood,
		Label:     labelFor(e.Mood, options),
		Note:      e.Note,
	}
}

// ToListMoodEntryResponse converts a slice of domain.MoodEntry to MoodEntryResponse DTOs
func ToListMoodEntryResponse(entries []domain.MoodEntry, options []domain.MoodOption) []MoodEntryResponse {
	res := make([]MoodEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToMoodEntryResponse(&entries[i], options)
	}
	return res
}

// ListMoodEntriesResponse is one page of readings, oldest first.
type ListMoodEntriesResponse struct {
	Entries   []MoodEntryResponse `json:"entries"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// MoodOptionsResponse describes the Input Panel configuration.
type MoodOptionsResponse struct {
	Options                []domain.MoodOption `json:"options"`
	RefreshIntervalSeconds int                 `json:"refreshIntervalSeconds"`
	Today                  string              `json:"today"`
}

// MoodCountResponse is one bar of the distribution chart.
type MoodCountResponse struct {
	Emoji string          `json:"emoji"`
	Label string          `json:"label"`
	Count int             `json:"count"`
	Share decimal.Decimal `json:"share"` // percent of Total, one decimal place
}

// DistributionResponse defines the data returned for a mood distribution.
// Counts omits moods without readings; Bars lists every option in display order.
type DistributionResponse struct {
	Available   bool                `json:"available"`
	Start       string              `json:"start"`
	End         string              `json:"end"`
	Total       int                 `json:"total"`
	Counts      map[string]int      `json:"counts"`
	Bars        []MoodCountResponse `json:"bars"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Error       string              `json:"error,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// ToDistributionResponse converts a domain.Distribution to DistributionResponse DTO
func ToDistributionResponse(d *domain.Distribution, options []domain.MoodOption, generatedAt time.Time) DistributionResponse {
	bars := make([]MoodCountResponse, len(options))
	for i, o := range options {
		count := d.Count(o.Emoji)
		share := decimal.Zero
		if d.Total > 0 {
			share = decimal.NewFromInt(int64(count)).Mul(hundred).Div(decimal.NewFromInt(int64(d.Total))).Round(1)
		}
		bars[i] = MoodCountResponse{Emoji: o.Emoji, Label: o.Label, Count: count, Share: share}
	}
	counts := make(map[string]int, len(d.Counts))
	for mood, c := range d.Counts {
		counts[mood] = c
	}
	return DistributionResponse{
		Available:   true,
		Start:       d.Start.String(),
		End:         d.End.String(),
		Total:       d.Total,
		Counts:      counts,
		Bars:        bars,
		GeneratedAt: generatedAt,
	}
}

// UnavailableDistributionResponse is what the chart shows when the store cannot be read.
func UnavailableDistributionResponse(start, end domain.Date, message string, generatedAt time.Time) DistributionResponse {
	return DistributionResponse{
		Available:   false,
		Start:       start.String(),
		End:         end.String(),
		Counts:      map[string]int{},
		Bars:        []MoodCountResponse{},
		GeneratedAt: generatedAt,
		Error:       message,
	}
}

func labelFor(emoji string, options []domain.MoodOption) string {
	for _, o := range options {
		if o.Emoji == emoji {
			return o.Label
		}
	}
	return emoji
}
