package database

import "embed"

//go:embed testdata
var testMigrations embed.FS
