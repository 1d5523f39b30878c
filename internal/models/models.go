package models

import (
	"time"
)

// Session groups every file and result produced by one ingestion batch.
// It maps 1:1 to a directory under the configured upload root and lives
// until a caller explicitly purges it.
type Session struct {
	ID        string    `db:"id" json:"id"`
	Dir       string    `db:"dir" json:"dir"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SanitizedFile records one accepted upload after sanitization.
// StoredPath is always inside the owning session's directory.
type SanitizedFile struct {
	SessionID    string `db:"session_id" json:"session_id"`
	OriginalName string `db:"original_name" json:"original_name"`
	StoredPath   string `db:"stored_path" json:"stored_path"`
}

// DocumentRecord is the unit of output of the ingestion core: one
// source document's recovered identity and text. Immutable after
// creation; the downstream indexing/ranking layer consumes it as-is.
type DocumentRecord struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidate_name"`
	SourceFile    string    `json:"source_file"`
	RawText       string    `json:"raw_text"`
	PageCount     int       `json:"page_count"`
	ProcessedAt   time.Time `json:"processed_at"`
}
