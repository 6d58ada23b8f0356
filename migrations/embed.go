// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and at startup.
// Each dialect keeps its own directory because the column types differ.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// Postgres returns the Postgres migrations rooted at the directory that
// holds the *.sql files, ready for goose.NewProvider.
func Postgres() fs.FS {
	return mustSub(postgresFS, "postgres")
}

// SQLite returns the SQLite migrations, rooted like Postgres.
func SQLite() fs.FS {
	return mustSub(sqliteFS, "sqlite")
}

func mustSub(fsys embed.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}
