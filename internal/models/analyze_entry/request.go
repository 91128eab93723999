package models

type AnalyzeEntryRequest struct {
	Text string `json:"text"`
}
