package booking

import "wedding-hall-server/models"

// IsDateBooked reports whether the target calendar date is already occupied by
// a non-rejected booking. Pending and approved bookings both block the date;
// only rejection frees it. The caller must pass bookings already filtered to a
// single hall or provider; the check itself is resource-agnostic.
//
// An empty date never conflicts. Requiring a date at submission is the
// validator's job.
func IsDateBooked(existing []models.Booking, date string) bool {
	if date == "" {
		return false
	}
	for i := range existing {
		if existing[i].Date == date && existing[i].Blocking() {
			return true
		}
	}
	return false
}
