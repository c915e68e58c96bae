// Package migrations embeds the goose SQL migrations that create the
// dev-store schema. Production deployments point the adapter at an existing
// external store and never run these.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
