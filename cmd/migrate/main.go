package main

import (
	"log"

	"insighthub-be/internal/config"
	"insighthub-be/internal/model"
	"insighthub-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.IsProduction())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatalf("Error: %v", err)
	}
	log.Println("Migration finished.")
}
