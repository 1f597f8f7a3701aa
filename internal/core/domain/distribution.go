package domain

import "time"

// Distribution counts mood readings over an inclusive date range.
// Moods with no readings in the range are absent from Counts.
type Distribution struct {
	Start  Date           `json:"start"`
	End    Date           `json:"end"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

// Count returns the number of readings for mood.
func (d Distribution) Count(mood string) int {
	return d.Counts[mood]
}

// ComputeDistribution counts the rows whose calendar date is today.
func ComputeDistribution(rows []MoodEntry, today Date) Distribution {
	return ComputeRangeDistribution(rows, today, today)
}

// ComputeRangeDistribution counts the rows dated between start and end inclusive.
func ComputeRangeDistribution(rows []MoodEntry, start, end Date) Distribution {
	dist := Distribution{Start: start, End: end, Counts: map[string]int{}}
	for _, row := range rows {
		day := row.Date()
		if day.Before(start) || day.After(end) {
			continue
		}
		dist.Counts[row.Mood]++
		dist.Total++
	}
	return dist
}

// FilterEntries returns the rows dated between start and end inclusive, keeping their order.
func FilterEntries(rows []MoodEntry, start, end Date) []MoodEntry {
	out := make([]MoodEntry, 0, len(rows))
	for _, row := range rows {
		day := row.Date()
		if day.Before(start) || day.After(end) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// DistributionUpdate is one pass of the refresh pipeline. Exactly one of
// Distribution and Err is set.
type DistributionUpdate struct {
	Distribution *Distribution
	Err          error
	GeneratedAt  time.Time
}
