package booking

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// trackingIDPattern accepts letters, digits and hyphens, minimum 6 characters.
var trackingIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{6,}$`)

// GenerateTrackingID suggests a human-presentable tracking ID of the form
// TRK-<last 6 digits of epoch millis>-<4 digit random>. The customer may keep
// it, edit it, or ask for a new one; uniqueness is enforced at submission by
// the validator, not here.
func GenerateTrackingID() string {
	millis := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(millis) > 6 {
		millis = millis[len(millis)-6:]
	}
	return fmt.Sprintf("TRK-%s-%04d", millis, rand.Intn(10000))
}

// ValidTrackingIDFormat checks the user-chosen tracking ID against the
// accepted pattern.
func ValidTrackingIDFormat(id string) bool {
	return trackingIDPattern.MatchString(id)
}
