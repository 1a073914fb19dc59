package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCompleted BookingStatus = "completed"
)

type BookingType string

const (
	BookingTypeHall    BookingType = "hall"
	BookingTypeService BookingType = "service"
)

type Booking struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	PublicID   string        `json:"public_id" gorm:"type:uuid;uniqueIndex;not null"`
	TrackingID string        `json:"tracking_id" gorm:"size:64;uniqueIndex;not null"`
	Type       BookingType   `json:"type" gorm:"type:varchar(10);not null;default:'hall';check:type IN ('hall','service')"`
	Status     BookingStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','approved','rejected','completed')"`

	// Exactly one of these target references is set, never both families.
	HallID            *uint `json:"hall_id" gorm:"index"`
	HallManagerID     *uint `json:"hall_manager_id" gorm:"index"`
	ServiceProviderID *uint `json:"service_provider_id" gorm:"index"`

	// Denormalized listing names shown on dashboards.
	HallName            string `json:"hall_name,omitempty" gorm:"size:255"`
	ServiceProviderName string `json:"service_provider_name,omitempty" gorm:"size:255"`

	// Calendar date, no time-of-day. Compared by exact day.
	Date string `json:"date" gorm:"size:10;not null;index"`

	// Hall bookings only.
	EventType  string `json:"event_type,omitempty" gorm:"size:50"`
	GuestCount *int   `json:"guest_count,omitempty"`

	// Service bookings only.
	ServiceType string `json:"service_type,omitempty" gorm:"size:50"`

	// Unset until the customer copies it from the listing (hall bookings)
	// or the manager assigns it at approval.
	Price *float64 `json:"price" gorm:"type:decimal(10,2)"`

	CustomerID             *uint  `json:"customer_id" gorm:"index"`
	CustomerName           string `json:"customer_name" gorm:"size:255;not null"`
	Email                  string `json:"email" gorm:"size:255;not null"`
	Phone                  string `json:"phone" gorm:"size:20;not null"`
	CustomerAddress        string `json:"customer_address,omitempty" gorm:"size:500"`
	AdditionalRequirements string `json:"additional_requirements,omitempty" gorm:"size:1000"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// BeforeCreate is a GORM hook that runs before creating a booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.PublicID == "" {
		b.PublicID = uuid.NewString()
	}
	if b.Type == "" {
		b.Type = BookingTypeHall
	}
	if b.Status == "" {
		b.Status = BookingStatusPending
	}
	return nil
}

// IsValidStatus checks if the booking status is one of the four lifecycle states
func (s BookingStatus) IsValidStatus() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected, BookingStatusCompleted:
		return true
	default:
		return false
	}
}

// Blocking reports whether this booking occupies its date. Only rejection
// frees the date; pending, approved and completed all block it.
func (b *Booking) Blocking() bool {
	return b.Status != BookingStatusRejected
}

// SameResource reports whether the other booking targets the same hall,
// hall manager or service provider as this one.
func (b *Booking) SameResource(other *Booking) bool {
	switch {
	case b.HallID != nil && other.HallID != nil:
		return *b.HallID == *other.HallID
	case b.HallManagerID != nil && other.HallManagerID != nil:
		return *b.HallManagerID == *other.HallManagerID
	case b.ServiceProviderID != nil && other.ServiceProviderID != nil:
		return *b.ServiceProviderID == *other.ServiceProviderID
	default:
		return false
	}
}
