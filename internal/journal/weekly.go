package journal

import (
	"fmt"
	"math"
	"time"

	journalmodels "io.winapps.moodjournal/internal/models/journal"
	"io.winapps.moodjournal/internal/sentiment"
)

// WeekWindow is how far back the weekly trend looks
const WeekWindow = 7 * 24 * time.Hour

// leanMargin is how many more entries one side needs before the week leans its way
const leanMargin = 2

type Trend string

const (
	TrendEmpty    Trend = "empty"
	TrendPositive Trend = "positive"
	TrendNegative Trend = "negative"
	TrendBalanced Trend = "balanced"
)

const notEnoughEntriesMessage = "Not enough entries were found for this week."

type WeeklyStats struct {
	Total    int
	Positive int
	Negative int
	// Other counts neutral and unclassified entries
	Other           int
	PositivePercent int
	Trend           Trend
	WindowStart     time.Time
}

// Weekly tallies the entries dated strictly after now minus seven days.
// Entries with an unparseable date are left out.
func Weekly(entries []journalmodels.Entry, now time.Time) WeeklyStats {
	stats := WeeklyStats{WindowStart: now.Add(-WeekWindow)}

	for _, e := range entries {
		created, err := e.CreatedAt()
		if err != nil || !created.After(stats.WindowStart) {
			continue
		}
		stats.Total++
		switch e.Sentiment {
		case sentiment.Positive:
			stats.Positive++
		case sentiment.Negative:
			stats.Negative++
		default:
			stats.Other++
		}
	}

	switch {
	case stats.Total == 0:
		stats.Trend = TrendEmpty
		return stats
	case stats.Positive > stats.Negative+leanMargin:
		stats.Trend = TrendPositive
	case stats.Negative > stats.Positive+leanMargin:
		stats.Trend = TrendNegative
	default:
		stats.Trend = TrendBalanced
	}
	stats.PositivePercent = int(math.Round(float64(stats.Positive) / float64(stats.Total) * 100))

	return stats
}

// Sentence renders the stats as the weekly summary shown above the history
func (s WeeklyStats) Sentence() string {
	switch s.Trend {
	case TrendPositive:
		return fmt.Sprintf("Over the past week you showed a positive trend of %d%% across %d entries. Great!", s.PositivePercent, s.Total)
	case TrendNegative:
		return fmt.Sprintf("Negative feelings ran high over the past week (%d entries, %d%% positive). Try to make a little more time for yourself.", s.Total, s.PositivePercent)
	case TrendBalanced:
		return fmt.Sprintf("Your overall mood over the past week was balanced (%d entries, %d%% positive).", s.Total, s.PositivePercent)
	default:
		return notEnoughEntriesMessage
	}
}

// WeeklyAggregate summarises the trailing week of entries in one sentence
func WeeklyAggregate(entries []journalmodels.Entry, now time.Time) string {
	return Weekly(entries, now).Sentence()
}
