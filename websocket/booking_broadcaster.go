package websocket

import (
	"log"
	"time"

	"wedding-hall-server/models"
)

// BookingBroadcaster pushes booking lifecycle events to interested clients
type BookingBroadcaster struct {
	hub *Hub
}

// NewBookingBroadcaster creates a new booking broadcaster
func NewBookingBroadcaster(hub *Hub) *BookingBroadcaster {
	return &BookingBroadcaster{
		hub: hub,
	}
}

// BroadcastBookingSubmitted notifies the owning manager or provider plus admins
// about a freshly admitted booking
func (bb *BookingBroadcaster) BroadcastBookingSubmitted(b models.Booking, ownerUserID uint) {
	if bb.hub == nil {
		log.Printf("⚠️ WebSocket hub not available for booking broadcast")
		return
	}

	message := &Message{
		Type:       "booking_submitted",
		BookingID:  b.ID,
		TrackingID: b.TrackingID,
		Status:     string(b.Status),
		Timestamp:  time.Now(),
		Data: map[string]interface{}{
			"booking_type":  b.Type,
			"date":          b.Date,
			"customer_name": b.CustomerName,
			"event_type":    b.EventType,
			"service_type":  b.ServiceType,
		},
	}

	if ownerUserID != 0 {
		bb.hub.SendToUser(ownerUserID, message)
	}
	bb.hub.SendToRole("admin", message)
}

// BroadcastStatusChanged notifies the customer and admins about a status change
func (bb *BookingBroadcaster) BroadcastStatusChanged(b models.Booking) {
	if bb.hub == nil {
		return
	}

	message := &Message{
		Type:       "booking_status_changed",
		BookingID:  b.ID,
		TrackingID: b.TrackingID,
		Status:     string(b.Status),
		Timestamp:  time.Now(),
		Data: map[string]interface{}{
			"booking_type": b.Type,
			"date":         b.Date,
			"price":        b.Price,
		},
	}

	if b.CustomerID != nil {
		bb.hub.SendToUser(*b.CustomerID, message)
	}
	bb.hub.SendToRole("admin", message)
}

// BroadcastProfileReviewed tells a manager or provider the admin reviewed
// their profile
func (bb *BookingBroadcaster) BroadcastProfileReviewed(userID uint, profileType string, status models.ApprovalStatus) {
	if bb.hub == nil {
		return
	}

	bb.hub.SendToUser(userID, &Message{
		Type:      "profile_reviewed",
		Status:    string(status),
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"profile_type": profileType,
		},
	})
}
