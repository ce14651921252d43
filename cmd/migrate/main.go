package main

import (
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	dbURL := os.Getenv("DATABASE_DSN")
	if dbURL == "" {
		log.Fatal("DATABASE_DSN is not set")
	}

	if len(os.Args) < 2 {
		log.Fatal("Usage: ./migrate [up|down]")
	}
	command := os.Args[1]

	sourceURL := os.Getenv("MIGRATIONS_PATH")
	if sourceURL == "" {
		sourceURL = "file://migrations"
	}

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		log.Fatalf("Cannot create migrate instance: %v", err)
	}

	var errMigration error
	switch command {
	case "up":
		errMigration = m.Up()
	case "down":
		errMigration = m.Down()
	default:
		log.Fatalf("Unknown command: %s", command)
	}

	if errMigration != nil && errMigration != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", errMigration)
	}

	log.Println("Migration finished successfully!")
}
