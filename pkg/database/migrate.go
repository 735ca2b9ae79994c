package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// SetupSQL runs before AutoMigrate.
var SetupSQL = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	`CREATE EXTENSION IF NOT EXISTS vector;`,
}

// IndexSQL runs after AutoMigrate. The ivfflat index serves cosine-distance ordering.
var IndexSQL = []string{
	`CREATE INDEX IF NOT EXISTS idx_chunks_embedding ON chunks USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`,
	`CREATE INDEX IF NOT EXISTS idx_documents_metadata ON documents USING gin (metadata);`,
}

// Migrate prepares extensions, migrates models and creates secondary indexes.
// Setup and index statements only warn on failure.
func Migrate(db *gorm.DB, models ...interface{}) error {
	for _, sql := range SetupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, sql := range IndexSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to create index: %v. Continuing...", err)
		}
	}
	return nil
}
