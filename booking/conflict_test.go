package booking

import (
	"testing"

	"wedding-hall-server/models"
)

func TestIsDateBooked(t *testing.T) {
	tests := []struct {
		name     string
		bookings []models.Booking
		date     string
		want     bool
	}{
		{
			name:     "pending booking blocks the date",
			bookings: []models.Booking{{Date: "2024-06-01", Status: models.BookingStatusPending}},
			date:     "2024-06-01",
			want:     true,
		},
		{
			name:     "approved booking blocks the date",
			bookings: []models.Booking{{Date: "2024-06-01", Status: models.BookingStatusApproved}},
			date:     "2024-06-01",
			want:     true,
		},
		{
			name:     "completed booking blocks the date",
			bookings: []models.Booking{{Date: "2024-06-01", Status: models.BookingStatusCompleted}},
			date:     "2024-06-01",
			want:     true,
		},
		{
			name:     "rejected booking frees the date",
			bookings: []models.Booking{{Date: "2024-06-01", Status: models.BookingStatusRejected}},
			date:     "2024-06-01",
			want:     false,
		},
		{
			name:     "different date does not conflict",
			bookings: []models.Booking{{Date: "2024-06-01", Status: models.BookingStatusPending}},
			date:     "2024-06-02",
			want:     false,
		},
		{
			name:     "empty target date never conflicts",
			bookings: []models.Booking{{Date: "2024-06-01", Status: models.BookingStatusPending}},
			date:     "",
			want:     false,
		},
		{
			name:     "no bookings",
			bookings: nil,
			date:     "2024-06-01",
			want:     false,
		},
		{
			name: "one rejected and one pending on the same date",
			bookings: []models.Booking{
				{Date: "2024-06-01", Status: models.BookingStatusRejected},
				{Date: "2024-06-01", Status: models.BookingStatusPending},
			},
			date: "2024-06-01",
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDateBooked(tt.bookings, tt.date); got != tt.want {
				t.Errorf("IsDateBooked() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRejectionFreesDate(t *testing.T) {
	bookings := []models.Booking{{Date: "2024-07-01", Status: models.BookingStatusPending}}
	if !IsDateBooked(bookings, "2024-07-01") {
		t.Fatal("expected pending booking to block the date")
	}

	bookings[0].Status = models.BookingStatusRejected
	if IsDateBooked(bookings, "2024-07-01") {
		t.Error("expected rejected booking to free the date")
	}
}
