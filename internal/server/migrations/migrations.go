// Package migrations embeds the goose SQL migrations that create the
// service schema. They are applied idempotently at startup.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
