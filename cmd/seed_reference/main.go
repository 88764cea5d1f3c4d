package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"ml-discovery-be/internal/entity"
	"ml-discovery-be/internal/model"
	"ml-discovery-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// seedRecord mirrors one entry in the reference knowledge JSON file.
type seedRecord struct {
	Category string   `json:"category"`
	Title    string   `json:"title"`
	BodyText string   `json:"body_text"`
	Tags     []string `json:"tags"`
}

func main() {
	filePath := flag.String("file", "seed/reference_knowledge.json", "path to the reference knowledge JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", *filePath, err)
	}

	var records []seedRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Fatalf("Error: Failed to parse %s: %v", *filePath, err)
	}

	color.Cyan("Seeding %d reference records from %s...", len(records), *filePath)

	created, skipped := 0, 0
	for _, r := range records {
		if !entity.IsValidReferenceCategory(r.Category) {
			color.Red("✗ %q: invalid category %q (skipping)", r.Title, r.Category)
			skipped++
			continue
		}

		// Re-running the seeder should not duplicate records.
		var existing model.ReferenceRecord
		if err := db.Where("category = ? AND title = ?", r.Category, r.Title).First(&existing).Error; err == nil {
			color.Yellow("- %q already exists, skipping", r.Title)
			skipped++
			continue
		}

		rec := model.ReferenceRecord{
			Category: r.Category,
			Title:    r.Title,
			BodyText: r.BodyText,
			Tags:     datatypes.NewJSONSlice(r.Tags),
		}
		if err := db.Create(&rec).Error; err != nil {
			color.Red("✗ Failed to create %q: %v", r.Title, err)
			continue
		}
		color.Green("✓ Created [%s] %s", rec.Category, rec.Title)
		created++
	}

	color.Cyan("Done: %d created, %d skipped.", created, skipped)
	if created > 0 {
		color.White("Note: summaries are only back-filled for records loaded through the bulk API; seeded records fall back to full body text in prompts until then.")
	}
}
