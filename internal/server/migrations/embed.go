// Package migrations embeds the SQL files applied by goose when schema
// bootstrap is enabled.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
