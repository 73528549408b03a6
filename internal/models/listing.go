package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultListingPointValue is awarded per confirmed booking when the lister
// did not set an explicit point value.
const DefaultListingPointValue = 10

// ListingCategory classifies a bookable offering.
type ListingCategory string

const (
	ListingCategoryErrands   ListingCategory = "errands"
	ListingCategoryGardening ListingCategory = "gardening"
	ListingCategoryMoving    ListingCategory = "moving"
	ListingCategoryTutoring  ListingCategory = "tutoring"
	ListingCategoryRepairs   ListingCategory = "repairs"
	ListingCategoryCare      ListingCategory = "care"
	ListingCategoryOther     ListingCategory = "other"
)

var listingCategories = map[ListingCategory]struct{}{
	ListingCategoryErrands:   {},
	ListingCategoryGardening: {},
	ListingCategoryMoving:    {},
	ListingCategoryTutoring:  {},
	ListingCategoryRepairs:   {},
	ListingCategoryCare:      {},
	ListingCategoryOther:     {},
}

// Valid reports whether the category is one of the defined variants.
func (c ListingCategory) Valid() bool {
	_, ok := listingCategories[c]
	return ok
}

// Listing is a bookable offering created by a user (the lister).
type Listing struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `gorm:"not null" json:"description"`
	Price       float64         `gorm:"not null" json:"price"`
	Category    ListingCategory `gorm:"type:varchar(20);not null;index" json:"category"`

	// Karma points awarded to the helper when a booking on this listing is
	// confirmed.
	PointValue int `gorm:"not null;default:10" json:"point_value"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ListingID" json:"bookings,omitempty"`
}
