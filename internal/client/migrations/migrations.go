// Package migrations embeds the local SQLite schema applied by goose when
// the client starts.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
