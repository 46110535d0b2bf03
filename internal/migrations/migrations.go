// Package migrations embeds the goose schema migrations for every
// supported store backend.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// SQLite returns the migrations for the SQLite backend, rooted at ".".
func SQLite() fs.FS {
	return sub("sqlite")
}

// Postgres returns the migrations for the Postgres backend, rooted at ".".
func Postgres() fs.FS {
	return sub("postgres")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		// the directories are embedded at build time
		panic(err)
	}
	return f
}
