package models

type ExportEntriesRequest struct {
	Format string `form:"format"` // "json" (default) or "csv"
}
