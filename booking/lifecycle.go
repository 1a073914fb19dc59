package booking

import (
	"errors"
	"time"

	"wedding-hall-server/models"
)

var (
	// ErrInvalidTransition is returned when the requested status change is not
	// part of the guarded transition graph.
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	// ErrPriceRequired is returned when a hall manager approves without
	// supplying a positive price. The price must be persisted together with
	// the status change, so the check runs before any storage write.
	ErrPriceRequired = errors.New("a positive price is required to approve this booking")

	// ErrNotServiceBooking is returned when the completion toggle is applied
	// to a hall booking.
	ErrNotServiceBooking = errors.New("completion toggle applies to service bookings only")

	// ErrNotOwner is returned when the actor does not own the booked resource.
	ErrNotOwner = errors.New("actor does not own the booked resource")

	// ErrInvalidStatus is returned by the admin override for an unrecognized status.
	ErrInvalidStatus = errors.New("invalid booking status")
)

// guardedTransitions is the state machine owners move bookings through.
// rejected and completed are terminal here; the provider completion toggle and
// the admin override are separate entry points.
var guardedTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusApproved, models.BookingStatusRejected},
	models.BookingStatusApproved:  {models.BookingStatusCompleted},
	models.BookingStatusRejected:  {},
	models.BookingStatusCompleted: {},
}

// CanTransition reports whether the guarded graph allows from -> to.
func CanTransition(from, to models.BookingStatus) bool {
	for _, t := range guardedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Actor identifies who is driving a lifecycle transition: the role plus the
// hall-manager or provider record the caller authenticated as. Injected by the
// HTTP layer from verified claims, never read from ambient state.
type Actor struct {
	Role              models.UserRole
	HallManagerID     *uint
	ServiceProviderID *uint
}

// Owns reports whether the actor owns the booking's target resource. Admins
// own everything.
func (a Actor) Owns(b *models.Booking) bool {
	switch a.Role {
	case models.RoleAdmin:
		return true
	case models.RoleHallManager:
		return a.HallManagerID != nil && b.HallManagerID != nil && *a.HallManagerID == *b.HallManagerID
	case models.RoleServiceProvider:
		return a.ServiceProviderID != nil && b.ServiceProviderID != nil && *a.ServiceProviderID == *b.ServiceProviderID
	default:
		return false
	}
}

// Transition applies a guarded owner transition to the in-memory booking.
// The caller persists the mutated record afterwards; if that write fails it
// must discard the mutation and re-read the committed state.
//
// Hall managers approve with a price, persisted atomically with the status.
// Providers and admins approve without one, though an admin may still pass a
// price to set it in the same write.
func Transition(b *models.Booking, target models.BookingStatus, actor Actor, price *float64, now time.Time) error {
	if !actor.Owns(b) {
		return ErrNotOwner
	}
	if !CanTransition(b.Status, target) {
		return ErrInvalidTransition
	}
	if target == models.BookingStatusApproved && actor.Role == models.RoleHallManager {
		if price == nil || *price <= 0 {
			return ErrPriceRequired
		}
	}
	if target == models.BookingStatusCompleted {
		// approved -> completed is the provider's manual toggle.
		if actor.Role != models.RoleServiceProvider && actor.Role != models.RoleAdmin {
			return ErrInvalidTransition
		}
		if b.Type != models.BookingTypeService {
			return ErrNotServiceBooking
		}
	}
	if price != nil && target == models.BookingStatusApproved {
		b.Price = price
	}
	b.Status = target
	b.UpdatedAt = now
	return nil
}

// ToggleCompletion flips a service booking between completed and not
// completed. This is a manual housekeeping affordance for providers, not a
// one-way completion event: completed bookings return to pending, anything
// else (except rejected) becomes completed.
func ToggleCompletion(b *models.Booking, actor Actor, now time.Time) error {
	if !actor.Owns(b) {
		return ErrNotOwner
	}
	if actor.Role != models.RoleServiceProvider && actor.Role != models.RoleAdmin {
		return ErrInvalidTransition
	}
	if b.Type != models.BookingTypeService {
		return ErrNotServiceBooking
	}
	switch b.Status {
	case models.BookingStatusCompleted:
		b.Status = models.BookingStatusPending
	case models.BookingStatusPending, models.BookingStatusApproved:
		b.Status = models.BookingStatusCompleted
	default:
		return ErrInvalidTransition
	}
	b.UpdatedAt = now
	return nil
}

// AdminOverride sets any of the four statuses directly, bypassing the guarded
// graph. This is the admin edit form's escape hatch and is kept separate from
// Transition so callers (and tests) can tell a normal transition from an
// administrative override.
func AdminOverride(b *models.Booking, target models.BookingStatus, price *float64, now time.Time) error {
	if !target.IsValidStatus() {
		return ErrInvalidStatus
	}
	b.Status = target
	if price != nil {
		b.Price = price
	}
	b.UpdatedAt = now
	return nil
}
