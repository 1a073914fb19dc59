package routes

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"wedding-hall-server/booking"
	"wedding-hall-server/database"
	"wedding-hall-server/middleware"
	"wedding-hall-server/models"
	"wedding-hall-server/websocket"
)

// HallBookingRequest represents a customer's hall booking submission
type HallBookingRequest struct {
	HallID        *uint  `json:"hall_id"`
	HallManagerID *uint  `json:"hall_manager_id"`
	TrackingID    string `json:"tracking_id"`
	Date          string `json:"date"`
	EventType     string `json:"event_type"`
	GuestCount    *int   `json:"guest_count"`

	CustomerName           string `json:"customer_name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	CustomerAddress        string `json:"customer_address"`
	AdditionalRequirements string `json:"additional_requirements"`
}

// ServiceBookingRequest represents a customer's service booking submission
type ServiceBookingRequest struct {
	ServiceProviderID uint   `json:"service_provider_id" binding:"required"`
	ServiceType       string `json:"service_type" binding:"required"`
	TrackingID        string `json:"tracking_id"`
	Date              string `json:"date"`

	CustomerName           string `json:"customer_name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	CustomerAddress        string `json:"customer_address"`
	AdditionalRequirements string `json:"additional_requirements"`
}

// RegisterBookingRoutes registers customer booking submission and tracking
func RegisterBookingRoutes(router *gin.RouterGroup, broadcaster *websocket.BookingBroadcaster) {
	bookings := router.Group("/bookings")
	{
		bookings.GET("/tracking-id", newTrackingID)
		bookings.GET("/track/:trackingId", trackBooking)

		protected := bookings.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/hall", func(c *gin.Context) { submitHallBooking(c, broadcaster) })
			protected.POST("/service", func(c *gin.Context) { submitServiceBooking(c, broadcaster) })
			protected.GET("/mine", myBookings)
		}
	}
}

// newTrackingID hands out a fresh tracking ID not yet present in the
// collection. The unique index still backstops the race with a concurrent
// submission of the same ID.
func newTrackingID(c *gin.Context) {
	for attempt := 0; attempt < 5; attempt++ {
		id := booking.GenerateTrackingID()
		var count int64
		if err := database.DB.Model(&models.Booking{}).
			Where("tracking_id = ?", id).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Query failed",
				"message": "Failed to generate tracking ID",
			})
			return
		}
		if count == 0 {
			c.JSON(http.StatusOK, gin.H{"tracking_id": id})
			return
		}
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Generation failed",
		"message": "Could not generate a unique tracking ID, please retry",
	})
}

// submitHallBooking admits a hall booking. The listing price is copied from
// the hall at submission time; everything else runs through admission
// validation and the date-conflict check.
func submitHallBooking(c *gin.Context, broadcaster *websocket.BookingBroadcaster) {
	var req HallBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if (req.HallID == nil) == (req.HallManagerID == nil) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid target",
			"message": "Exactly one of hall_id or hall_manager_id must be set",
		})
		return
	}

	user, _ := middleware.CurrentUser(c)

	sub := booking.Submission{
		Type:                   models.BookingTypeHall,
		HallID:                 req.HallID,
		HallManagerID:          req.HallManagerID,
		TrackingID:             strings.TrimSpace(req.TrackingID),
		Date:                   strings.TrimSpace(req.Date),
		EventType:              req.EventType,
		GuestCount:             req.GuestCount,
		CustomerName:           strings.TrimSpace(req.CustomerName),
		Email:                  strings.TrimSpace(req.Email),
		Phone:                  req.Phone,
		CustomerAddress:        req.CustomerAddress,
		AdditionalRequirements: req.AdditionalRequirements,
		CustomerID:             &user.ID,
	}

	var ownerUserID uint
	if req.HallID != nil {
		var hall models.WeddingHall
		if err := database.DB.First(&hall, *req.HallID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Hall not found",
				"message": "The requested hall does not exist",
			})
			return
		}
		sub.HallName = hall.Name
		sub.Price = &hall.Price
	} else {
		var manager models.HallManager
		if err := database.DB.Where("id = ? AND status = ?", *req.HallManagerID, models.ApprovalStatusApproved).
			First(&manager).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "Hall not found",
				"message": "The requested hall does not exist or is not approved",
			})
			return
		}
		sub.HallName = manager.HallName
		sub.Price = &manager.HallPrice
		ownerUserID = manager.UserID
	}

	admit(c, sub, ownerUserID, broadcaster)
}

// submitServiceBooking admits a service booking. No price is recorded; the
// provider assigns one at approval.
func submitServiceBooking(c *gin.Context, broadcaster *websocket.BookingBroadcaster) {
	var req ServiceBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var provider models.ServiceProvider
	if err := database.DB.Where("id = ? AND status = ?", req.ServiceProviderID, models.ApprovalStatusApproved).
		First(&provider).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The requested provider does not exist or is not approved",
		})
		return
	}

	user, _ := middleware.CurrentUser(c)

	sub := booking.Submission{
		Type:                   models.BookingTypeService,
		ServiceProviderID:      &req.ServiceProviderID,
		ServiceProviderName:    provider.Name,
		ServiceType:            req.ServiceType,
		TrackingID:             strings.TrimSpace(req.TrackingID),
		Date:                   strings.TrimSpace(req.Date),
		CustomerName:           strings.TrimSpace(req.CustomerName),
		Email:                  strings.TrimSpace(req.Email),
		Phone:                  req.Phone,
		CustomerAddress:        req.CustomerAddress,
		AdditionalRequirements: req.AdditionalRequirements,
		CustomerID:             &user.ID,
	}

	admit(c, sub, provider.UserID, broadcaster)
}

// admit runs admission validation, persists the booking and notifies the
// owning dashboard. The partial unique indexes on (resource, date) and the
// tracking-id index decide races that slip past validation.
func admit(c *gin.Context, sub booking.Submission, ownerUserID uint, broadcaster *websocket.BookingBroadcaster) {
	resourceBookings, err := bookingsForResource(sub)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to check availability",
		})
		return
	}

	var duplicates []models.Booking
	if sub.TrackingID != "" {
		if err := database.DB.Where("tracking_id = ?", sub.TrackingID).
			Limit(1).Find(&duplicates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Query failed",
				"message": "Failed to check tracking ID",
			})
			return
		}
	}

	if errs := booking.Validate(sub, resourceBookings, duplicates); len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Validation failed",
			"message": "The booking was not admitted",
			"errors":  errs,
		})
		return
	}

	b := booking.Record(sub, time.Now())
	if err := database.DB.Create(&b).Error; err != nil {
		// Concurrent submissions are decided by the unique indexes
		msg := err.Error()
		switch {
		case strings.Contains(msg, "idx_bookings_tracking") || strings.Contains(msg, "tracking_id"):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Duplicate tracking ID",
				"message": "This tracking ID is already in use. Please choose a different one.",
			})
		case strings.Contains(msg, "idx_bookings_hall_date") ||
			strings.Contains(msg, "idx_bookings_manager_date") ||
			strings.Contains(msg, "idx_bookings_provider_date"):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Date unavailable",
				"message": "This date is already booked",
			})
		default:
			log.Printf("❌ Booking admission failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Booking failed",
				"message": "Failed to record the booking",
			})
		}
		return
	}

	log.Printf("✅ Booking admitted: %s (%s on %s)", b.TrackingID, b.Type, b.Date)
	broadcaster.BroadcastBookingSubmitted(b, ownerUserID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking submitted successfully",
		"booking": b,
	})
}

func bookingsForResource(sub booking.Submission) ([]models.Booking, error) {
	query := database.DB.Model(&models.Booking{})
	switch {
	case sub.HallID != nil:
		query = query.Where("hall_id = ?", *sub.HallID)
	case sub.HallManagerID != nil:
		query = query.Where("hall_manager_id = ?", *sub.HallManagerID)
	case sub.ServiceProviderID != nil:
		query = query.Where("service_provider_id = ?", *sub.ServiceProviderID)
	default:
		return nil, nil
	}

	var existing []models.Booking
	err := query.Find(&existing).Error
	return existing, err
}

// trackBooking looks a booking up by its customer-visible tracking ID
func trackBooking(c *gin.Context) {
	trackingID := c.Param("trackingId")
	if !booking.ValidTrackingIDFormat(trackingID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid tracking ID",
			"message": "Tracking ID must be at least 6 characters and contain only letters, numbers, and hyphens",
		})
		return
	}

	var b models.Booking
	if err := database.DB.Where("tracking_id = ?", trackingID).First(&b).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "No booking exists with this tracking ID",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": b})
}

// myBookings lists the authenticated customer's own bookings
func myBookings(c *gin.Context) {
	userID := c.GetUint("user_id")

	var bookings []models.Booking
	if err := database.DB.Where("customer_id = ?", userID).
		Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
