package main

import (
	"log"
	"os"

	"chat-memory-be/internal/model"
	"chat-memory-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting GORM migration...")

	// 3. Pre-migration: extensions GORM AutoMigrate doesn't handle
	log.Println("Step 1: Setting up extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.ChatMessage{},
		&model.Document{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}

	// 5. Full-text search column and index. A generated tsvector column
	// keeps the search vector in lockstep with content without triggers.
	log.Println("Step 3: Setting up full-text search...")

	searchSQL := []string{
		`ALTER TABLE documents ADD COLUMN IF NOT EXISTS search_vector tsvector
			GENERATED ALWAYS AS (to_tsvector('english', content)) STORED;`,
		`CREATE INDEX IF NOT EXISTS idx_documents_search_vector ON documents USING GIN (search_vector);`,
		`CREATE INDEX IF NOT EXISTS idx_chat_messages_session_seq ON chat_messages (session_id, seq);`,
	}
	for _, sql := range searchSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Fatal("Error: Failed to execute search setup SQL:", err)
		}
	}

	log.Println("Migration completed successfully")
}
