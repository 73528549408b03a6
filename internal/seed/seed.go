// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/helferherz/karmalama/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumListings int
	LevelsFile  string
	ShouldClean bool
}

// levelsFile mirrors the structure of levels.yml.
type levelsFile struct {
	Levels []struct {
		Points int `yaml:"points"`
		Number int `yaml:"number"`
	} `yaml:"levels"`
}

// LoadLevels reads level thresholds from a YAML file. A missing or empty
// file falls back to the built-in defaults.
func LoadLevels(path string) ([]models.Level, error) {
	if path == "" {
		return models.DefaultLevels(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("levels file %s not found, using built-in defaults", path)
			return models.DefaultLevels(), nil
		}
		return nil, fmt.Errorf("read levels file: %w", err)
	}

	var parsed levelsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse levels file: %w", err)
	}
	if len(parsed.Levels) == 0 {
		return models.DefaultLevels(), nil
	}

	levels := make([]models.Level, 0, len(parsed.Levels))
	for _, l := range parsed.Levels {
		if l.Points < 0 || l.Number < 1 {
			return nil, fmt.Errorf("invalid level entry: points=%d number=%d", l.Points, l.Number)
		}
		levels = append(levels, models.Level{Points: l.Points, Number: l.Number})
	}
	sort.Slice(levels, func(i, j int) bool { return levels[i].Points < levels[j].Points })
	return levels, nil
}

// SeedLevels replaces the stored level table with the given thresholds.
func SeedLevels(db *gorm.DB, levels []models.Level) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Level{}).Error; err != nil {
			return err
		}
		return tx.Create(&levels).Error
	})
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d listings...", opts.NumUsers, opts.NumListings)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	levels, err := LoadLevels(opts.LevelsFile)
	if err != nil {
		return fmt.Errorf("failed to load levels: %w", err)
	}
	if err := SeedLevels(db, levels); err != nil {
		return fmt.Errorf("failed to seed levels: %w", err)
	}
	log.Printf("Seeded %d level thresholds", len(levels))

	factory := NewFactory(db)

	// Admin account for the local dashboard.
	if _, err := factory.CreateUser(func(u *models.User) {
		u.Email = "admin@karmalama.local"
		u.Name = "Admin"
		u.IsAdmin = true
	}); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d test users", len(users))

	if len(users) == 0 {
		return nil
	}

	listings := make([]*models.Listing, 0, opts.NumListings)
	for i := 0; i < opts.NumListings; i++ {
		owner := users[i%len(users)]
		listing, err := factory.CreateListing(owner)
		if err != nil {
			return fmt.Errorf("failed to create listings: %w", err)
		}
		listings = append(listings, listing)
	}
	log.Printf("Created %d listings", len(listings))

	// A requested booking on every third listing, from a user who is not
	// the owner, so the decision flows have material to work with.
	bookings := 0
	for i, listing := range listings {
		if i%3 != 0 {
			continue
		}
		requester := users[(i+1)%len(users)]
		if requester.ID == listing.UserID {
			continue
		}
		if _, err := factory.CreateBooking(listing, requester); err != nil {
			return fmt.Errorf("failed to create bookings: %w", err)
		}
		bookings++
	}
	log.Printf("Created %d requested bookings", bookings)

	log.Println("Seeding complete")
	return nil
}

// clearData deletes all seedable rows. Order matters because of foreign keys.
func clearData(db *gorm.DB) error {
	for _, model := range []interface{}{
		&models.Booking{},
		&models.Listing{},
		&models.User{},
		&models.Level{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
