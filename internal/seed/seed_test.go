package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/helferherz/karmalama/internal/database"
	"github.com/helferherz/karmalama/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestLoadLevels(t *testing.T) {
	t.Parallel()

	t.Run("Empty Path Uses Defaults", func(t *testing.T) {
		levels, err := LoadLevels("")
		if err != nil {
			t.Fatalf("load levels: %v", err)
		}
		if len(levels) != len(models.DefaultLevels()) {
			t.Fatalf("expected built-in defaults, got %d entries", len(levels))
		}
	})

	t.Run("Missing File Uses Defaults", func(t *testing.T) {
		levels, err := LoadLevels(filepath.Join(t.TempDir(), "nope.yml"))
		if err != nil {
			t.Fatalf("load levels: %v", err)
		}
		if len(levels) != len(models.DefaultLevels()) {
			t.Fatalf("expected built-in defaults, got %d entries", len(levels))
		}
	})

	t.Run("Parses And Sorts", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "levels.yml")
		content := `levels:
  - points: 100
    number: 2
  - points: 0
    number: 1
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write levels file: %v", err)
		}

		levels, err := LoadLevels(path)
		if err != nil {
			t.Fatalf("load levels: %v", err)
		}
		if len(levels) != 2 {
			t.Fatalf("expected 2 levels, got %d", len(levels))
		}
		if levels[0].Points != 0 || levels[1].Points != 100 {
			t.Fatalf("expected thresholds sorted ascending, got %+v", levels)
		}
	})

	t.Run("Rejects Invalid Entries", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "levels.yml")
		content := `levels:
  - points: -5
    number: 1
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write levels file: %v", err)
		}
		if _, err := LoadLevels(path); err == nil {
			t.Fatal("expected an error for a negative threshold")
		}
	})

	t.Run("Rejects Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "levels.yml")
		if err := os.WriteFile(path, []byte("levels: [not closed"), 0o600); err != nil {
			t.Fatalf("write levels file: %v", err)
		}
		if _, err := LoadLevels(path); err == nil {
			t.Fatal("expected a parse error")
		}
	})
}

func TestSeed(t *testing.T) {
	t.Parallel()

	db := setupSeedTestDB(t)

	err := Seed(db, Options{NumUsers: 6, NumListings: 9, ShouldClean: true})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	// Requested users plus the admin account.
	if userCount != 7 {
		t.Fatalf("expected 7 users, got %d", userCount)
	}

	var admin models.User
	if err := db.Where("email = ?", "admin@karmalama.local").First(&admin).Error; err != nil {
		t.Fatalf("find admin: %v", err)
	}
	if !admin.IsAdmin {
		t.Fatal("expected the admin account to be an admin")
	}

	var listingCount int64
	if err := db.Model(&models.Listing{}).Count(&listingCount).Error; err != nil {
		t.Fatalf("count listings: %v", err)
	}
	if listingCount != 9 {
		t.Fatalf("expected 9 listings, got %d", listingCount)
	}

	var levelCount int64
	if err := db.Model(&models.Level{}).Count(&levelCount).Error; err != nil {
		t.Fatalf("count levels: %v", err)
	}
	if levelCount == 0 {
		t.Fatal("expected the level table to be seeded")
	}

	// Every seeded booking is requested and never self-booked.
	var bookings []models.Booking
	if err := db.Preload("Listing").Find(&bookings).Error; err != nil {
		t.Fatalf("load bookings: %v", err)
	}
	if len(bookings) == 0 {
		t.Fatal("expected at least one seeded booking")
	}
	for _, b := range bookings {
		if b.Status != models.BookingStatusRequested {
			t.Fatalf("seeded booking %d should be requested, got %s", b.ID, b.Status)
		}
		if b.UserID == b.Listing.UserID {
			t.Fatalf("booking %d is self-booked", b.ID)
		}
	}

	// Re-seeding with clean starts from scratch rather than piling up rows.
	if err := Seed(db, Options{NumUsers: 2, NumListings: 2, ShouldClean: true}); err != nil {
		t.Fatalf("re-seed: %v", err)
	}
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if userCount != 3 {
		t.Fatalf("expected 3 users after clean re-seed, got %d", userCount)
	}
}

func TestFactoryOverrides(t *testing.T) {
	t.Parallel()

	db := setupSeedTestDB(t)
	factory := NewFactory(db)

	user, err := factory.CreateUser(func(u *models.User) {
		u.Email = "fixed@example.com"
		u.Points = 120
		u.Level = 4
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Email != "fixed@example.com" || user.Points != 120 {
		t.Fatalf("overrides not applied: %+v", user)
	}

	listing, err := factory.CreateListing(user, func(l *models.Listing) {
		l.PointValue = 50
	})
	if err != nil {
		t.Fatalf("create listing: %v", err)
	}
	if listing.UserID != user.ID || listing.PointValue != 50 {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if !listing.Category.Valid() {
		t.Fatalf("factory produced an invalid category: %s", listing.Category)
	}
}
