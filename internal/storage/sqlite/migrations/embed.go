package migrations

import "embed"

// FS contains embedded SQLite migrations for the deck snapshot store.
//
//go:embed *.sql
var FS embed.FS
