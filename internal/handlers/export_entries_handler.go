package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"io.winapps.moodjournal/internal/journal"
	exportmodels "io.winapps.moodjournal/internal/models/export_entries"
)

var exportContentTypes = map[string]string{
	journal.ExportJSON: "application/json; charset=utf-8",
	journal.ExportCSV:  "text/csv; charset=utf-8",
}

// ExportEntries downloads the whole journal as JSON or CSV
func (h *EntryHandler) ExportEntries(c *gin.Context) {
	var req exportmodels.ExportEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}
	if req.Format == "" {
		req.Format = journal.ExportJSON
	}

	contentType, ok := exportContentTypes[req.Format]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
		return
	}

	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &buf, req.Format); err != nil {
		h.logError(c, err, "failed to export entries", "format", req.Format)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export entries"})
		return
	}

	filename := fmt.Sprintf("mood-journal-%s.%s", time.Now().UTC().Format("2006-01-02"), req.Format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}
