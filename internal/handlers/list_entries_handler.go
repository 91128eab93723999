package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.moodjournal/internal/advice"
	"io.winapps.moodjournal/internal/journal"
	listmodels "io.winapps.moodjournal/internal/models/list_entries"
	weeklymodels "io.winapps.moodjournal/internal/models/weekly_summary"
	"io.winapps.moodjournal/internal/sentiment"
)

// ListEntries returns the saved history, newest first, with the weekly summary
func (h *EntryHandler) ListEntries(c *gin.Context) {
	var req listmodels.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	query := journal.HistoryQuery{Page: req.Page, Limit: req.Limit}
	if req.Sentiment != "" {
		label, ok := sentiment.ParseLabel(req.Sentiment)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown sentiment filter"})
			return
		}
		query.Sentiment = label
	}

	page := h.service.History(c.Request.Context(), query)

	results := make([]listmodels.EntryResult, 0, len(page.Entries))
	for _, e := range page.Entries {
		results = append(results, listmodels.EntryResult{
			Entry:   e,
			Emoji:   advice.EmojiFor(e.Sentiment),
			Palette: advice.PaletteFor(e.Sentiment),
		})
	}

	response := listmodels.ListEntriesResponse{
		Entries: results,
		Pagination: listmodels.Pagination{
			Page:        page.Page,
			Limit:       page.Limit,
			Total:       page.Total,
			TotalPages:  page.TotalPages,
			HasNext:     page.Page < page.TotalPages,
			HasPrevious: page.Page > 1,
		},
		WeeklySummary: page.Weekly.Sentence(),
	}

	c.JSON(http.StatusOK, response)
}

// WeeklySummary returns the trailing seven-day trend
func (h *EntryHandler) WeeklySummary(c *gin.Context) {
	stats := h.service.WeeklySummary(c.Request.Context())

	c.JSON(http.StatusOK, weeklymodels.WeeklySummaryResponse{
		Summary: stats.Sentence(),
		Stats: weeklymodels.WeeklyCounts{
			Total:           stats.Total,
			Positive:        stats.Positive,
			Negative:        stats.Negative,
			Other:           stats.Other,
			PositivePercent: stats.PositivePercent,
			Trend:           string(stats.Trend),
			WindowStart:     stats.WindowStart,
		},
	})
}
