// Package migrations contains embedded SQL migrations for the tab journal.
package migrations

import "embed"

//go:embed events/*.sql
var EventsFS embed.FS
