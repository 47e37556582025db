package main

import (
	"context"
	"log"
	"strings"

	"github.com/justinbrick/capstone-project-shipping-api/internal/adapters/repositories"
	"github.com/justinbrick/capstone-project-shipping-api/internal/config"
	"github.com/justinbrick/capstone-project-shipping-api/internal/platform/db"
)

// dbtool initializes the Postgres schema and seeds warehouse stock from the
// JSON file at SEED_PATH.
func main() {
	cfg := config.Load()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer database.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(database); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Println("Seeding database...")
	if err := repositories.SeedFromJSON(database, cfg.SeedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
