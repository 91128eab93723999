package models

import (
	"io.winapps.moodjournal/internal/advice"
	journalmodels "io.winapps.moodjournal/internal/models/journal"
)

type ListEntriesResponse struct {
	Entries       []EntryResult `json:"entries"`
	Pagination    Pagination    `json:"pagination"`
	WeeklySummary string        `json:"weeklySummary"`
}

type EntryResult struct {
	journalmodels.Entry
	Emoji   string         `json:"emoji"`
	Palette advice.Palette `json:"palette"`
}

type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}
