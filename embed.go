// Package artisan exposes assets that are shared by the binaries under cmd/.
package artisan

import "embed"

// Migrations holds the goose SQL migrations applied by the migrate command.
//
//go:embed migrations/*.sql
var Migrations embed.FS //nolint: gochecknoglobals
