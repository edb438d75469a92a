// Package db embeds the SQL migrations shipped with the server. Builds
// tagged embed_migrations read them from here instead of the filesystem.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
