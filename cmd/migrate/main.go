// Command migrate applies, rolls back or reports the database schema version.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"fairway/internal/adapters/storage"
	"fairway/internal/config"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations")
	versionOnly := flag.Bool("version", false, "print the applied schema version and exit")
	dbPath := flag.String("db", "", "database path (default FAIRWAY_DB_PATH)")
	flag.Parse()

	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}
	path := cfg.DBPath
	if *dbPath != "" {
		path = *dbPath
	}

	db, err := storage.Open(path)
	if err != nil {
		slog.Error("open_failed", "path", path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *versionOnly:
	case *down > 0:
		err = storage.MigrateDown(db, *down)
	default:
		err = storage.MigrateDB(db)
	}
	if err != nil && !errors.Is(err, storage.ErrNoChange) {
		slog.Error("migrate_failed", "path", path, "error", err)
		os.Exit(1)
	}

	v, err := storage.SchemaVersion(db)
	if err != nil {
		slog.Error("version_failed", "path", path, "error", err)
		os.Exit(1)
	}
	fmt.Printf("%s: schema version %d (latest %d)\n", path, v, storage.LatestSchemaVersion())
}
