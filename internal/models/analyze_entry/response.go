package models

import (
	"io.winapps.moodjournal/internal/advice"
	journalmodels "io.winapps.moodjournal/internal/models/journal"
)

type AnalyzeEntryResponse struct {
	Entry   journalmodels.Entry `json:"entry"`
	Notice  string              `json:"notice,omitempty"`
	Emoji   string              `json:"emoji"`
	Palette advice.Palette      `json:"palette"`
}
