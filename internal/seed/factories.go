// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/helferherz/karmalama/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets so developers
// can log in as any of them.
const DefaultPassword = "Karmalama!2024x"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	// seed gofakeit for richer content
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var (
	educationLevels = []models.EducationLevel{
		models.EducationNone, models.EducationHighSchool,
		models.EducationCollege, models.EducationUniversity, models.EducationPostGraduate,
	}
	workLevels = []models.WorkLevel{
		models.WorkUnemployed, models.WorkPartTime,
		models.WorkFullTime, models.WorkSelfEmployed, models.WorkEntrepreneur,
	}
	categories = []models.ListingCategory{
		models.ListingCategoryErrands, models.ListingCategoryGardening,
		models.ListingCategoryMoving, models.ListingCategoryTutoring,
		models.ListingCategoryRepairs, models.ListingCategoryCare,
		models.ListingCategoryOther,
	}

	listingTemplates = map[models.ListingCategory][]string{
		models.ListingCategoryErrands:   {"Grocery run", "Pharmacy pickup", "Package drop-off"},
		models.ListingCategoryGardening: {"Lawn mowing", "Hedge trimming", "Planting help"},
		models.ListingCategoryMoving:    {"Moving boxes", "Furniture assembly", "Van loading"},
		models.ListingCategoryTutoring:  {"Math tutoring", "Language practice", "Homework help"},
		models.ListingCategoryRepairs:   {"Leaky faucet fix", "Shelf mounting", "Bike repair"},
		models.ListingCategoryCare:      {"Dog walking", "Plant sitting", "Elderly visit"},
		models.ListingCategoryOther:     {"Event setup", "Tech support", "Photo scanning"},
	}
)

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	birthday := gofakeit.DateRange(
		time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	user := &models.User{
		Email:          gofakeit.Email(),
		Password:       string(hashed),
		Name:           gofakeit.FirstName(),
		Surname:        gofakeit.LastName(),
		Phone:          gofakeit.Phone(),
		Birthday:       birthday.Format("2006-01-02"),
		Postal:         gofakeit.Zip(),
		Area:           gofakeit.City(),
		AboutMe:        gofakeit.Sentence(12),
		Interests:      models.StringList{gofakeit.Hobby(), gofakeit.Hobby()},
		Skillset:       models.StringList{gofakeit.JobTitle()},
		LanguageSkills: models.StringList{gofakeit.Language()},
		EducationLevel: educationLevels[f.r.Intn(len(educationLevels))],
		WorkLevel:      workLevels[f.r.Intn(len(workLevels))],
		Points:         0,
		Level:          1,
		HoursWorked:    0,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create seed user: %w", err)
	}
	return user, nil
}

// CreateListing constructs and persists a sample listing owned by user.
func (f *Factory) CreateListing(user *models.User, overrides ...func(*models.Listing)) (*models.Listing, error) {
	category := categories[f.r.Intn(len(categories))]
	names := listingTemplates[category]

	listing := &models.Listing{
		UserID:      user.ID,
		Name:        names[f.r.Intn(len(names))],
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		Price:       float64(gofakeit.Number(5, 80)),
		Category:    category,
		PointValue:  gofakeit.Number(5, 40),
	}

	for _, override := range overrides {
		override(listing)
	}

	if err := f.db.Create(listing).Error; err != nil {
		return nil, fmt.Errorf("create seed listing: %w", err)
	}
	return listing, nil
}

// CreateBooking constructs and persists a booking by user on listing.
func (f *Factory) CreateBooking(listing *models.Listing, user *models.User, overrides ...func(*models.Booking)) (*models.Booking, error) {
	booking := &models.Booking{
		ListingID: listing.ID,
		UserID:    user.ID,
		Status:    models.BookingStatusRequested,
	}

	for _, override := range overrides {
		override(booking)
	}

	if err := f.db.Create(booking).Error; err != nil {
		return nil, fmt.Errorf("create seed booking: %w", err)
	}
	return booking, nil
}
