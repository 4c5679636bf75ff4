// Package main provides a CLI tool to manage the MEP design database schema.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"mepdesign/internal/config"
	"mepdesign/internal/migrations"
)

func main() {
	defaultPath := "mepdesign.db"
	if cfg, err := config.Load(); err == nil {
		defaultPath = cfg.DatabasePath
	}

	var dbPath string
	var down bool
	flag.StringVar(&dbPath, "db", defaultPath, "Path to the database")
	flag.BoolVar(&down, "down", false, "Roll back the most recent migration instead of migrating up")
	flag.Parse()

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck // Cleanup, error not critical

	if down {
		fmt.Printf("Rolling back the most recent migration on %s\n", dbPath)
		err = migrations.Rollback(db)
	} else {
		fmt.Printf("Applying pending migrations to %s\n", dbPath)
		err = migrations.Run(db)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done")
}
