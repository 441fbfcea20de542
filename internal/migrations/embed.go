// Package migrations embeds the SQL schema applied at daemon startup.
package migrations

import _ "embed"

// InitialSQL is the full destination schema. It only uses CREATE TABLE IF
// NOT EXISTS statements so applying it to an existing database is a no-op.
//
//go:embed sql/001_initial.sql
var InitialSQL string
