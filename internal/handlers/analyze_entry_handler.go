package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.moodjournal/internal/advice"
	"io.winapps.moodjournal/internal/journal"
	analyzemodels "io.winapps.moodjournal/internal/models/analyze_entry"
)

type EntryHandler struct {
	service *journal.Service
	logger  *zap.SugaredLogger
}

// NewEntryHandler creates a new entry handler
func NewEntryHandler(service *journal.Service, logger *zap.SugaredLogger) *EntryHandler {
	return &EntryHandler{
		service: service,
		logger:  logger,
	}
}

// AnalyzeEntry classifies the submitted text and saves it as a new journal entry
func (h *EntryHandler) AnalyzeEntry(c *gin.Context) {
	var req analyzemodels.AnalyzeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.service.AnalyzeAndSave(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, journal.ErrEmptyText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please write down your feelings or thoughts for today."})
			return
		}
		h.logError(c, err, "failed to save entry")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred while saving your entry. Please try again."})
		return
	}

	response := analyzemodels.AnalyzeEntryResponse{
		Entry:   result.Entry,
		Notice:  result.Notice,
		Emoji:   advice.EmojiFor(result.Entry.Sentiment),
		Palette: advice.PaletteFor(result.Entry.Sentiment),
	}

	c.JSON(http.StatusCreated, response)
}
