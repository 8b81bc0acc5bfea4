// Package db embeds the SQL migrations so the server binary carries its
// own schema.
package db

import "embed"

// Migrations holds the golang-migrate files under migrations/.
//
//go:embed migrations/*.sql
var Migrations embed.FS
