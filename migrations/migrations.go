// Package migrations embeds the goose SQL migrations so they can be
// applied at startup and from the repository test helper.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
