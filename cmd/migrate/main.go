package main

import (
	"log"

	"jarvina-be/internal/config"
	"jarvina-be/internal/model"
	"jarvina-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Connect to Database
	db, err := database.NewGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. AutoMigrate the conversation and note logs
	log.Printf("Running AutoMigrate on %s...", cfg.Database.Driver)
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatalf("Error: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
