// Package migrations embeds the SQL schema migrations for every supported backend.
package migrations

import "embed"

// FS holds the migration files under sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
