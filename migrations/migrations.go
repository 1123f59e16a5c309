// Package migrations embebe los scripts SQL versionados (formato golang-migrate: NNNNNN_nombre.up.sql / .down.sql).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
