package booking

import (
	"testing"
	"time"

	"wedding-hall-server/models"
)

func uintPtr(v uint) *uint { return &v }

func validSubmission() Submission {
	return Submission{
		Type:          models.BookingTypeHall,
		HallManagerID: uintPtr(1),
		TrackingID:    "TRK-000001-0001",
		Date:          "2024-07-01",
		CustomerName:  "Ayesha Khan",
		Email:         "ayesha@example.com",
		Phone:         "01712345678",
	}
}

func hasCode(errs []FieldError, code string) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"(555) 01234", "55501234"},
		{"0171-234-5678", "01712345678"},
		{"+8801712345678", "8801712345678"},
		{"abc", ""},
	}
	for _, tt := range tests {
		if got := NormalizePhone(tt.in); got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidPhone(t *testing.T) {
	if ValidPhone("(555) 01234") {
		t.Error("8 digits after stripping must be invalid")
	}
	if !ValidPhone("0171-234-5678") {
		t.Error("11 digits after stripping must be valid")
	}
	if ValidPhone("017123456789") {
		t.Error("12 digits must be invalid")
	}
}

func TestValidateAcceptsCleanSubmission(t *testing.T) {
	errs := Validate(validSubmission(), nil, nil)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateMissingFields(t *testing.T) {
	errs := Validate(Submission{}, nil, nil)
	if !hasCode(errs, CodeMissingField) {
		t.Fatalf("expected missing_field errors, got %v", errs)
	}
	fields := map[string]bool{}
	for _, e := range errs {
		if e.Code == CodeMissingField {
			fields[e.Field] = true
		}
	}
	for _, f := range []string{"customerName", "email", "phone", "date", "trackingId"} {
		if !fields[f] {
			t.Errorf("expected missing_field for %s", f)
		}
	}
}

func TestValidatePhoneFormat(t *testing.T) {
	sub := validSubmission()
	sub.Phone = "(555) 01234"
	errs := Validate(sub, nil, nil)
	if !hasCode(errs, CodeInvalidPhone) {
		t.Errorf("expected invalid_phone, got %v", errs)
	}
}

func TestValidateTrackingIDFormat(t *testing.T) {
	sub := validSubmission()
	sub.TrackingID = "AB_123"
	errs := Validate(sub, nil, nil)
	if !hasCode(errs, CodeInvalidTrackingID) {
		t.Errorf("expected invalid_tracking_id, got %v", errs)
	}
}

func TestValidateDuplicateTrackingID(t *testing.T) {
	sub := validSubmission()

	// Duplicate lives on a different resource and date; uniqueness still
	// spans the whole collection.
	other := models.Booking{
		TrackingID:        sub.TrackingID,
		Date:              "2030-01-01",
		ServiceProviderID: uintPtr(99),
		Status:            models.BookingStatusPending,
	}

	errs := Validate(sub, nil, []models.Booking{other})
	if !hasCode(errs, CodeDuplicateTrackingID) {
		t.Errorf("expected duplicate_tracking_id, got %v", errs)
	}
}

func TestValidateDateConflict(t *testing.T) {
	sub := validSubmission()
	taken := models.Booking{
		HallManagerID: sub.HallManagerID,
		Date:          sub.Date,
		Status:        models.BookingStatusPending,
		TrackingID:    "OTHER-0001",
	}

	errs := Validate(sub, []models.Booking{taken}, []models.Booking{taken})
	if !hasCode(errs, CodeDateUnavailable) {
		t.Errorf("expected date_unavailable, got %v", errs)
	}
}

func TestValidateAccumulatesIndependentErrors(t *testing.T) {
	sub := validSubmission()
	sub.Phone = "123"
	sub.TrackingID = "A_1"
	sub.Email = "not-an-email"

	errs := Validate(sub, nil, nil)
	for _, code := range []string{CodeInvalidPhone, CodeInvalidTrackingID, CodeInvalidEmail} {
		if !hasCode(errs, code) {
			t.Errorf("expected %s among %v", code, errs)
		}
	}
}

func TestRecordForcesPendingAndTimestamps(t *testing.T) {
	sub := validSubmission()
	sub.Phone = "0171 234 5678"
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	b := Record(sub, now)

	if b.Status != models.BookingStatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if !b.CreatedAt.Equal(now) || !b.UpdatedAt.Equal(now) {
		t.Error("timestamps must be set server-side")
	}
	if b.Phone != "01712345678" {
		t.Errorf("phone must be stored digits-only, got %q", b.Phone)
	}
	if b.Type != models.BookingTypeHall {
		t.Errorf("type = %s, want hall", b.Type)
	}
}

// End-to-end admission flow: submit for a hall and date, conflict on the same
// date, reject the first, resubmit successfully.
func TestAdmissionEndToEnd(t *testing.T) {
	var collection []models.Booking
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	subA := validSubmission()
	subA.TrackingID = "TRK-000001-0001"

	if errs := Validate(subA, collection, collection); len(errs) != 0 {
		t.Fatalf("booking A should be admitted, got %v", errs)
	}
	a := Record(subA, now)
	collection = append(collection, a)

	subB := validSubmission()
	subB.TrackingID = "TRK-000002-0002"

	errs := Validate(subB, collection, collection)
	if !hasCode(errs, CodeDateUnavailable) {
		t.Fatalf("booking B on the same date must be rejected with date_unavailable, got %v", errs)
	}

	// Owner rejects booking A, freeing the date.
	actor := Actor{Role: models.RoleHallManager, HallManagerID: subA.HallManagerID}
	if err := Transition(&collection[0], models.BookingStatusRejected, actor, nil, now); err != nil {
		t.Fatalf("rejecting booking A: %v", err)
	}

	if errs := Validate(subB, collection, collection); len(errs) != 0 {
		t.Fatalf("booking B should be admitted after rejection, got %v", errs)
	}
}
