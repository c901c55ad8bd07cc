package db

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertSession records a finished session with its marks (in insertion
// order) and export results in one transaction. CreatedAt defaults to now.
func InsertSession(database *sql.DB, s Session, marks []int64, exports []SessionExport) (int64, error) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	tx, err := database.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(InsertSessionSQL, s.MediaPath, s.Mode, s.DurationMs, s.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	sessionID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get session id: %w", err)
	}

	for i, m := range marks {
		if _, err := tx.Exec(InsertSessionMarkSQL, sessionID, i, m); err != nil {
			return 0, fmt.Errorf("insert session mark: %w", err)
		}
	}
	for _, e := range exports {
		if _, err := tx.Exec(InsertSessionExportSQL, sessionID, e.OutputPath, e.StartMs, e.EndMs, e.Filesize, e.Error); err != nil {
			return 0, fmt.Errorf("insert session export: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return sessionID, nil
}

// SelectSessions returns up to limit sessions, newest first. An empty
// mediaPath selects sessions for every file.
func SelectSessions(database *sql.DB, mediaPath string, limit int) ([]Session, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if mediaPath == "" {
		rows, err = database.Query(SelectSessionsSQL, limit)
	} else {
		rows, err = database.Query(SelectSessionsByPathSQL, mediaPath, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("select sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.MediaPath, &s.Mode, &s.DurationMs, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// SelectSessionMarks returns a session's marks in the order they were made.
func SelectSessionMarks(database *sql.DB, sessionID int64) ([]int64, error) {
	rows, err := database.Query(SelectSessionMarksSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("select session marks: %w", err)
	}
	defer rows.Close()

	var marks []int64
	for rows.Next() {
		var m int64
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}

// SelectSessionExports returns the segments written for a session.
func SelectSessionExports(database *sql.DB, sessionID int64) ([]SessionExport, error) {
	rows, err := database.Query(SelectSessionExportsSQL, sessionID)
	if err != nil {
		return nil, fmt.Errorf("select session exports: %w", err)
	}
	defer rows.Close()

	var exports []SessionExport
	for rows.Next() {
		var e SessionExport
		if err := rows.Scan(&e.ID, &e.SessionID, &e.OutputPath, &e.StartMs, &e.EndMs, &e.Filesize, &e.Error); err != nil {
			return nil, err
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

// DeleteAllSessions removes every recorded session and its child rows,
// returning how many sessions were deleted.
func DeleteAllSessions(database *sql.DB) (int64, error) {
	tx, err := database.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(DeleteSessionExportsSQL); err != nil {
		return 0, fmt.Errorf("delete session exports: %w", err)
	}
	if _, err := tx.Exec(DeleteSessionMarksSQL); err != nil {
		return 0, fmt.Errorf("delete session marks: %w", err)
	}
	result, err := tx.Exec(DeleteSessionsSQL)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return n, nil
}
