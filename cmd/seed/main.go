// Command main runs the database seeder for Karmalama.
package main

import (
	"flag"
	"log"

	"github.com/helferherz/karmalama/internal/config"
	"github.com/helferherz/karmalama/internal/database"
	"github.com/helferherz/karmalama/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 30, "Number of users to create")
	numListings := flag.Int("listings", 80, "Number of listings to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	levelsFile := flag.String("levels", "", "Path to levels.yml (defaults to LEVELS_FILE from config)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d listings, clean=%v\n", *numUsers, *numListings, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	path := *levelsFile
	if path == "" {
		path = cfg.LevelsFile
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumListings: *numListings,
		LevelsFile:  path,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
