package db

import (
	"database/sql"
	"time"
)

// Session represents a row in the sessions table: one finished run of the
// marking UI on a media file.
type Session struct {
	ID         int64
	MediaPath  string
	Mode       string
	DurationMs int64
	CreatedAt  time.Time
}

// SessionExport represents a row in the session_exports table.
// EndMs is NULL for a segment that runs to the end of the file.
type SessionExport struct {
	ID         int64
	SessionID  int64
	OutputPath string
	StartMs    int64
	EndMs      sql.NullInt64
	Filesize   int64
	Error      string
}
