package models

import "time"

// BookingStatus represents the status of a booking request.
type BookingStatus string

const (
	// BookingStatusRequested indicates a booking awaiting the owner's decision.
	BookingStatusRequested BookingStatus = "requested"
	// BookingStatusConfirmed indicates a booking accepted by the listing owner. Terminal.
	BookingStatusConfirmed BookingStatus = "confirmed"
	// BookingStatusRejected indicates a booking declined by the listing owner. Terminal.
	BookingStatusRejected BookingStatus = "rejected"
)

// Valid reports whether the status is one of the defined variants.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusRequested, BookingStatusConfirmed, BookingStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusRejected
}

// CanTransition reports whether a booking in status s may move to target.
// Only requested -> confirmed and requested -> rejected are legal.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	return s == BookingStatusRequested && target.Terminal()
}

// Booking is a request by a user to reserve a Listing, subject to owner
// approval.
type Booking struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ListingID uint          `gorm:"not null;index" json:"listing_id"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	Status    BookingStatus `gorm:"type:varchar(20);default:'requested';index" json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	Listing Listing `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Booking) TableName() string {
	return "bookings"
}
