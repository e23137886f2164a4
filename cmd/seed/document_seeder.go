package main

import (
	"log"
	"time"

	"chat-memory-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedDemoDocuments populates the retrieval corpus with a small set of
// passages useful for smoke-testing search and context assembly.
func SeedDemoDocuments(db *gorm.DB) {
	docs := []model.Document{
		{
			Id:      uuid.New(),
			Content: "Paris is the capital of France. It is known for the Eiffel Tower and the Louvre museum.",
			Metadata: datatypes.JSONMap{
				"topic":  "geography",
				"source": "seed",
			},
			CreatedAt: time.Now(),
		},
		{
			Id:      uuid.New(),
			Content: "The Go programming language was designed at Google and released in 2009. It emphasizes simplicity and concurrency.",
			Metadata: datatypes.JSONMap{
				"topic":  "programming",
				"source": "seed",
			},
			CreatedAt: time.Now(),
		},
		{
			Id:      uuid.New(),
			Content: "PostgreSQL full-text search represents documents as tsvector values and queries as tsquery values.",
			Metadata: datatypes.JSONMap{
				"topic":  "databases",
				"source": "seed",
			},
			CreatedAt: time.Now(),
		},
		{
			Id:      uuid.New(),
			Content: "Server-sent events deliver a one-way stream of UTF-8 text frames over a single HTTP connection.",
			Metadata: datatypes.JSONMap{
				"topic":  "web",
				"source": "seed",
			},
			CreatedAt: time.Now(),
		},
	}

	for _, doc := range docs {
		if err := db.Create(&doc).Error; err != nil {
			log.Printf("Warn: Failed to seed document: %v", err)
		}
	}
	log.Printf("Seeded %d documents", len(docs))
}
