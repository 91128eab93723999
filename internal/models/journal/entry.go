package models

import (
	"time"

	"io.winapps.moodjournal/internal/sentiment"
)

// DateLayout matches JavaScript's Date.toISOString so lists written by the
// mobile app and by this service are interchangeable.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

type Entry struct {
	ID        int64           `json:"id"`
	Date      string          `json:"date"`
	Text      string          `json:"text"`
	Sentiment sentiment.Label `json:"sentiment"`
	Summary   string          `json:"summary"`
	Advice    string          `json:"advice"`
}

// CreatedAt parses Date
func (e Entry) CreatedAt() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, e.Date)
}

// FormatDate renders t the way Entry.Date is stored
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
