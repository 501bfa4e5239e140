package main

import (
	"context"
	"flag"
	"log"

	"github.com/pageza/pantrypal/backend/config"
	"github.com/pageza/pantrypal/backend/internal/database"
	"github.com/pageza/pantrypal/backend/internal/dataset"
)

const batchSize = 500 // Number of recipes to insert in each batch

func main() {
	configPath := flag.String("config", "", "path to config file")
	filePath := flag.String("file", "", "recipe JSON file (defaults to dataset.path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	path := *filePath
	if path == "" {
		path = cfg.Dataset.Path
	}
	if path == "" {
		log.Fatal("No recipe file: pass -file or set dataset.path")
	}

	recipes, err := dataset.NewFileSource(path).Fetch(context.Background())
	if err != nil {
		log.Fatalf("Failed to read recipes from %s: %v", path, err)
	}
	log.Printf("Read %d recipes from %s", len(recipes), path)

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Re-seeding replaces the table wholesale.
	if err := db.Exec("DELETE FROM recipes").Error; err != nil {
		log.Fatalf("Failed to clear recipes table: %v", err)
	}

	// Insert in batches so one oversized statement doesn't blow up on large
	// datasets.
	for i := 0; i < len(recipes); i += batchSize {
		end := i + batchSize
		if end > len(recipes) {
			end = len(recipes)
		}

		batch := recipes[i:end]
		if err := db.Create(&batch).Error; err != nil {
			log.Fatalf("Failed to insert recipes %d-%d: %v", i+1, end, err)
		}
		log.Printf("Inserted recipes %d-%d", i+1, end)
	}

	log.Printf("Successfully seeded %d recipes", len(recipes))
}
