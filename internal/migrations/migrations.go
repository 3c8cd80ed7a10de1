// Package migrations embeds the SQL files goose applies to bootstrap the
// clients schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
