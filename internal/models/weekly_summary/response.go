package models

import "time"

type WeeklySummaryResponse struct {
	Summary string       `json:"summary"`
	Stats   WeeklyCounts `json:"stats"`
}

type WeeklyCounts struct {
	Total           int       `json:"total"`
	Positive        int       `json:"positive"`
	Negative        int       `json:"negative"`
	Other           int       `json:"other"`
	PositivePercent int       `json:"positivePercent"`
	Trend           string    `json:"trend"`
	WindowStart     time.Time `json:"windowStart"`
}
