package main

import (
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Small migration runner for environments where the server binary is not
// allowed to migrate on boot.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <up|down|version> [migrations-path] [database-url]")
	}

	command := os.Args[1]
	migrationsPath := "./migrations"
	if len(os.Args) > 2 {
		migrationsPath = os.Args[2]
	}
	databaseURL := "sqlite3://./data/commtrans.db"
	if len(os.Args) > 3 {
		databaseURL = os.Args[3]
	}

	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		log.Fatalf("Failed to create migrate instance: %v", err)
	}

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("An error occurred while migrating up: %v", err)
		}
		log.Println("Migrations applied successfully.")
	case "down":
		if err := m.Down(); err != nil && err != migrate.ErrNoChange {
			log.Fatalf("An error occurred while migrating down: %v", err)
		}
		log.Println("Migrations rolled back successfully.")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Failed to read migration version: %v", err)
		}
		log.Printf("Version %d (dirty: %v)", version, dirty)
	default:
		log.Fatalf("Unknown command: %s. Use `up`, `down` or `version`.", command)
	}
}
