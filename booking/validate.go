package booking

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"wedding-hall-server/models"
)

// Error codes surfaced to submitting users. Each maps to one independent check
// so a form can attach every failure to its own field.
const (
	CodeMissingField       = "missing_field"
	CodeInvalidPhone       = "invalid_phone"
	CodeInvalidEmail       = "invalid_email"
	CodeInvalidTrackingID  = "invalid_tracking_id"
	CodeDuplicateTrackingID = "duplicate_tracking_id"
	CodeDateUnavailable    = "date_unavailable"
)

// FieldError describes one failed validation check on a submission field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

var fieldValidator = validator.New()

// Submission is a customer's proposed booking before admission. Exactly one of
// HallID / HallManagerID / ServiceProviderID must be set.
type Submission struct {
	Type              models.BookingType
	HallID            *uint
	HallManagerID     *uint
	ServiceProviderID *uint

	HallName            string
	ServiceProviderName string

	TrackingID string
	Date       string

	CustomerName           string
	Email                  string
	Phone                  string
	CustomerAddress        string
	AdditionalRequirements string

	EventType   string
	GuestCount  *int
	ServiceType string

	// Hall bookings carry the listing price at submission; service bookings
	// leave it for the owner to set.
	Price *float64

	CustomerID *uint
}

// NormalizePhone strips every non-digit character from the input.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidPhone reports whether the phone normalizes to exactly 11 digits.
func ValidPhone(phone string) bool {
	return len(NormalizePhone(phone)) == 11
}

// Validate runs every admission check against the submission. Checks are
// independent and errors accumulate, mirroring per-field form feedback.
//
// resourceBookings must be the bookings of the targeted hall or provider (for
// the date conflict); allBookings is the full collection (for tracking-ID
// uniqueness, which spans every resource). Both are expected to be freshly
// queried at submission time.
func Validate(sub Submission, resourceBookings, allBookings []models.Booking) []FieldError {
	var errs []FieldError

	required := []struct {
		field, value string
	}{
		{"customerName", sub.CustomerName},
		{"email", sub.Email},
		{"phone", sub.Phone},
		{"date", sub.Date},
		{"trackingId", sub.TrackingID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, FieldError{
				Field:   r.field,
				Code:    CodeMissingField,
				Message: r.field + " is required",
			})
		}
	}

	if sub.Email != "" {
		if err := fieldValidator.Var(sub.Email, "email"); err != nil {
			errs = append(errs, FieldError{
				Field:   "email",
				Code:    CodeInvalidEmail,
				Message: "email address is not valid",
			})
		}
	}

	if sub.Phone != "" && !ValidPhone(sub.Phone) {
		errs = append(errs, FieldError{
			Field:   "phone",
			Code:    CodeInvalidPhone,
			Message: "Phone number must be exactly 11 digits",
		})
	}

	if sub.TrackingID != "" {
		if !ValidTrackingIDFormat(sub.TrackingID) {
			errs = append(errs, FieldError{
				Field:   "trackingId",
				Code:    CodeInvalidTrackingID,
				Message: "Tracking ID must be at least 6 characters and contain only letters, numbers, and hyphens",
			})
		}
		for i := range allBookings {
			if allBookings[i].TrackingID == sub.TrackingID {
				errs = append(errs, FieldError{
					Field:   "trackingId",
					Code:    CodeDuplicateTrackingID,
					Message: "This tracking ID is already in use. Please choose a different one.",
				})
				break
			}
		}
	}

	if IsDateBooked(resourceBookings, sub.Date) {
		errs = append(errs, FieldError{
			Field:   "date",
			Code:    CodeDateUnavailable,
			Message: "This date is already booked",
		})
	}

	return errs
}

// Record builds the admitted booking from a validated submission. Status is
// forced to pending and timestamps are set server-side regardless of any
// caller-supplied value.
func Record(sub Submission, now time.Time) models.Booking {
	b := models.Booking{
		Type:                sub.Type,
		Status:              models.BookingStatusPending,
		HallID:              sub.HallID,
		HallManagerID:       sub.HallManagerID,
		ServiceProviderID:   sub.ServiceProviderID,
		HallName:            sub.HallName,
		ServiceProviderName: sub.ServiceProviderName,
		TrackingID:          sub.TrackingID,
		Date:                sub.Date,
		EventType:           sub.EventType,
		GuestCount:          sub.GuestCount,
		ServiceType:         sub.ServiceType,
		Price:               sub.Price,
		CustomerID:          sub.CustomerID,
		CustomerName:        sub.CustomerName,
		Email:               sub.Email,
		Phone:               NormalizePhone(sub.Phone),
		CustomerAddress:     sub.CustomerAddress,
		AdditionalRequirements: sub.AdditionalRequirements,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if b.Type == "" {
		b.Type = models.BookingTypeHall
	}
	return b
}
