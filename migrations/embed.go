// Package migrations embeds the versioned Postgres schema so binaries and
// tests can migrate without a checkout of this directory.
package migrations

import "embed"

// FS holds the NNNNNN_name.{up,down}.sql files
//
//go:embed *.sql
var FS embed.FS
