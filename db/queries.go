package db

import (
	_ "embed"
)

// Schema and migrations

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Session queries

//go:embed sql/insert_session.sql
var InsertSessionSQL string

//go:embed sql/select_sessions.sql
var SelectSessionsSQL string

//go:embed sql/select_sessions_by_path.sql
var SelectSessionsByPathSQL string

//go:embed sql/delete_sessions.sql
var DeleteSessionsSQL string

// Session child table queries

//go:embed sql/insert_session_mark.sql
var InsertSessionMarkSQL string

//go:embed sql/select_session_marks.sql
var SelectSessionMarksSQL string

//go:embed sql/delete_session_marks.sql
var DeleteSessionMarksSQL string

//go:embed sql/insert_session_export.sql
var InsertSessionExportSQL string

//go:embed sql/select_session_exports.sql
var SelectSessionExportsSQL string

//go:embed sql/delete_session_exports.sql
var DeleteSessionExportsSQL string
