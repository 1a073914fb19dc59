package booking

import (
	"errors"
	"testing"
	"time"

	"wedding-hall-server/models"
)

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func hallBooking() models.Booking {
	return models.Booking{
		Type:          models.BookingTypeHall,
		Status:        models.BookingStatusPending,
		HallManagerID: uintPtr(7),
		Date:          "2024-08-01",
		TrackingID:    "TRK-111111-0001",
	}
}

func serviceBooking() models.Booking {
	return models.Booking{
		Type:              models.BookingTypeService,
		Status:            models.BookingStatusPending,
		ServiceProviderID: uintPtr(3),
		Date:              "2024-08-02",
		TrackingID:        "TRK-222222-0002",
	}
}

func managerActor() Actor {
	return Actor{Role: models.RoleHallManager, HallManagerID: uintPtr(7)}
}

func providerActor() Actor {
	return Actor{Role: models.RoleServiceProvider, ServiceProviderID: uintPtr(3)}
}

func floatPtr(v float64) *float64 { return &v }

func TestManagerApprovalRequiresPrice(t *testing.T) {
	b := hallBooking()

	err := Transition(&b, models.BookingStatusApproved, managerActor(), nil, testNow)
	if !errors.Is(err, ErrPriceRequired) {
		t.Fatalf("expected ErrPriceRequired, got %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Error("failed approval must not mutate status")
	}

	err = Transition(&b, models.BookingStatusApproved, managerActor(), floatPtr(0), testNow)
	if !errors.Is(err, ErrPriceRequired) {
		t.Fatalf("zero price must be refused, got %v", err)
	}

	err = Transition(&b, models.BookingStatusApproved, managerActor(), floatPtr(-10), testNow)
	if !errors.Is(err, ErrPriceRequired) {
		t.Fatalf("negative price must be refused, got %v", err)
	}
}

func TestManagerApprovalSetsPriceAtomically(t *testing.T) {
	b := hallBooking()

	if err := Transition(&b, models.BookingStatusApproved, managerActor(), floatPtr(2500), testNow); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if b.Status != models.BookingStatusApproved {
		t.Errorf("status = %s, want approved", b.Status)
	}
	if b.Price == nil || *b.Price != 2500 {
		t.Error("price must be set together with the status change")
	}
	if !b.UpdatedAt.Equal(testNow) {
		t.Error("updatedAt must be set on transition")
	}
}

func TestProviderApprovalNeedsNoPrice(t *testing.T) {
	b := serviceBooking()
	if err := Transition(&b, models.BookingStatusApproved, providerActor(), nil, testNow); err != nil {
		t.Fatalf("provider approval must not require a price: %v", err)
	}
	if b.Status != models.BookingStatusApproved {
		t.Errorf("status = %s, want approved", b.Status)
	}
}

func TestOwnerRejection(t *testing.T) {
	b := hallBooking()
	if err := Transition(&b, models.BookingStatusRejected, managerActor(), nil, testNow); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if b.Status != models.BookingStatusRejected {
		t.Errorf("status = %s, want rejected", b.Status)
	}
}

func TestGuardedGraphBlocksTerminalStates(t *testing.T) {
	b := hallBooking()
	b.Status = models.BookingStatusRejected

	err := Transition(&b, models.BookingStatusApproved, managerActor(), floatPtr(100), testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("rejected is terminal for owners, got %v", err)
	}

	b.Status = models.BookingStatusCompleted
	err = Transition(&b, models.BookingStatusPending, managerActor(), nil, testNow)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("completed -> pending is only reachable via the toggle, got %v", err)
	}
}

func TestTransitionRefusesNonOwner(t *testing.T) {
	b := hallBooking()

	otherManager := Actor{Role: models.RoleHallManager, HallManagerID: uintPtr(99)}
	if err := Transition(&b, models.BookingStatusRejected, otherManager, nil, testNow); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for foreign manager, got %v", err)
	}

	customer := Actor{Role: models.RoleCustomer}
	if err := Transition(&b, models.BookingStatusRejected, customer, nil, testNow); !errors.Is(err, ErrNotOwner) {
		t.Errorf("expected ErrNotOwner for customer, got %v", err)
	}
}

func TestCompletionRestrictedToServiceBookings(t *testing.T) {
	b := hallBooking()
	b.Status = models.BookingStatusApproved

	admin := Actor{Role: models.RoleAdmin}
	err := Transition(&b, models.BookingStatusCompleted, admin, nil, testNow)
	if !errors.Is(err, ErrNotServiceBooking) {
		t.Errorf("hall bookings cannot complete, got %v", err)
	}

	err = ToggleCompletion(&b, admin, testNow)
	if !errors.Is(err, ErrNotServiceBooking) {
		t.Errorf("toggle on hall booking must fail, got %v", err)
	}
}

func TestApprovedToCompletedByProvider(t *testing.T) {
	b := serviceBooking()
	b.Status = models.BookingStatusApproved

	if err := Transition(&b, models.BookingStatusCompleted, providerActor(), nil, testNow); err != nil {
		t.Fatalf("provider completes approved service booking: %v", err)
	}
	if b.Status != models.BookingStatusCompleted {
		t.Errorf("status = %s, want completed", b.Status)
	}
}

func TestCompletionToggle(t *testing.T) {
	b := serviceBooking()

	// pending -> completed
	if err := ToggleCompletion(&b, providerActor(), testNow); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if b.Status != models.BookingStatusCompleted {
		t.Fatalf("status = %s, want completed", b.Status)
	}

	// completed -> pending
	if err := ToggleCompletion(&b, providerActor(), testNow); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if b.Status != models.BookingStatusPending {
		t.Fatalf("status = %s, want pending", b.Status)
	}

	// Toggling repeatedly keeps working; this is a manual affordance, not a
	// one-way completion event.
	for i := 0; i < 4; i++ {
		if err := ToggleCompletion(&b, providerActor(), testNow); err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
	}
	if b.Status != models.BookingStatusPending {
		t.Errorf("after even number of toggles status = %s, want pending", b.Status)
	}
}

func TestToggleRefusedOnRejected(t *testing.T) {
	b := serviceBooking()
	b.Status = models.BookingStatusRejected
	if err := ToggleCompletion(&b, providerActor(), testNow); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("rejected bookings stay rejected, got %v", err)
	}
}

func TestAdminOverrideBypassesGraph(t *testing.T) {
	b := hallBooking()
	b.Status = models.BookingStatusRejected

	// rejected -> approved is impossible for owners but fine for the admin
	// edit form.
	if err := AdminOverride(&b, models.BookingStatusApproved, floatPtr(1800), testNow); err != nil {
		t.Fatalf("override: %v", err)
	}
	if b.Status != models.BookingStatusApproved {
		t.Errorf("status = %s, want approved", b.Status)
	}
	if b.Price == nil || *b.Price != 1800 {
		t.Error("override must apply the supplied price")
	}

	if err := AdminOverride(&b, "archived", nil, testNow); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("unknown status must be refused, got %v", err)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.BookingStatus
		want     bool
	}{
		{models.BookingStatusPending, models.BookingStatusApproved, true},
		{models.BookingStatusPending, models.BookingStatusRejected, true},
		{models.BookingStatusApproved, models.BookingStatusCompleted, true},
		{models.BookingStatusPending, models.BookingStatusCompleted, false},
		{models.BookingStatusApproved, models.BookingStatusRejected, false},
		{models.BookingStatusRejected, models.BookingStatusApproved, false},
		{models.BookingStatusCompleted, models.BookingStatusPending, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
