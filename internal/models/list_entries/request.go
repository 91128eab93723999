package models

type ListEntriesRequest struct {
	Sentiment string `form:"sentiment"`
	Page      int    `form:"page"`  // Default: 1
	Limit     int    `form:"limit"` // Default: 20, max 100
}
