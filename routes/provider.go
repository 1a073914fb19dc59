package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"wedding-hall-server/booking"
	"wedding-hall-server/database"
	"wedding-hall-server/middleware"
	"wedding-hall-server/models"
	"wedding-hall-server/websocket"
)

// ProviderProfileRequest represents a service provider profile update
type ProviderProfileRequest struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Services []string `json:"services"`
}

// RegisterProviderRoutes registers the service provider dashboard
func RegisterProviderRoutes(router *gin.RouterGroup, broadcaster *websocket.BookingBroadcaster) {
	provider := router.Group("/provider")
	provider.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleServiceProvider))
	{
		provider.GET("/profile", getProviderProfile)
		provider.PUT("/profile", updateProviderProfile)
		provider.GET("/bookings", providerBookings)
		provider.PUT("/bookings/:id/approve", func(c *gin.Context) { providerTransition(c, models.BookingStatusApproved, broadcaster) })
		provider.PUT("/bookings/:id/reject", func(c *gin.Context) { providerTransition(c, models.BookingStatusRejected, broadcaster) })
		provider.PUT("/bookings/:id/toggle-completion", func(c *gin.Context) { providerToggleCompletion(c, broadcaster) })
	}
}

func currentProviderProfile(c *gin.Context) (models.ServiceProvider, bool) {
	var profile models.ServiceProvider
	if err := database.DB.Where("user_id = ?", c.GetUint("user_id")).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Profile not found",
			"message": "No service provider profile exists for this account",
		})
		return profile, false
	}
	return profile, true
}

func getProviderProfile(c *gin.Context) {
	profile, ok := currentProviderProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// updateProviderProfile updates the provider profile. The phone number must
// normalize to exactly 11 digits, matching the booking contact rule.
func updateProviderProfile(c *gin.Context) {
	profile, ok := currentProviderProfile(c)
	if !ok {
		return
	}

	var req ProviderProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if req.Phone != "" && !booking.ValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid phone",
			"message": "Phone number must be exactly 11 digits",
		})
		return
	}

	profile.Name = req.Name
	profile.Address = req.Address
	if req.Phone != "" {
		profile.Phone = booking.NormalizePhone(req.Phone)
	}
	if req.Services != nil {
		profile.Services = req.Services
	}

	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// providerBookings lists service bookings targeting this provider
func providerBookings(c *gin.Context) {
	profile, ok := currentProviderProfile(c)
	if !ok {
		return
	}

	query := database.DB.Where("service_provider_id = ?", profile.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Order("created_at DESC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load bookings",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// providerTransition applies an owner-guarded status change. Providers
// approve without a price.
func providerTransition(c *gin.Context, target models.BookingStatus, broadcaster *websocket.BookingBroadcaster) {
	profile, ok := currentProviderProfile(c)
	if !ok {
		return
	}

	b, ok := providerBookingByParam(c)
	if !ok {
		return
	}

	actor := booking.Actor{Role: models.RoleServiceProvider, ServiceProviderID: &profile.ID}
	if err := booking.Transition(&b, target, actor, nil, time.Now()); err != nil {
		writeTransitionError(c, err)
		return
	}

	saveAndBroadcast(c, b, broadcaster)
}

// providerToggleCompletion flips a service booking between completed and
// pending. Rejected bookings stay rejected.
func providerToggleCompletion(c *gin.Context, broadcaster *websocket.BookingBroadcaster) {
	profile, ok := currentProviderProfile(c)
	if !ok {
		return
	}

	b, ok := providerBookingByParam(c)
	if !ok {
		return
	}

	actor := booking.Actor{Role: models.RoleServiceProvider, ServiceProviderID: &profile.ID}
	if err := booking.ToggleCompletion(&b, actor, time.Now()); err != nil {
		writeTransitionError(c, err)
		return
	}

	saveAndBroadcast(c, b, broadcaster)
}

func providerBookingByParam(c *gin.Context) (models.Booking, bool) {
	var b models.Booking

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ID",
			"message": "Booking ID must be numeric",
		})
		return b, false
	}

	if err := database.DB.First(&b, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return b, false
	}
	return b, true
}

func saveAndBroadcast(c *gin.Context, b models.Booking, broadcaster *websocket.BookingBroadcaster) {
	if err := database.DB.Save(&b).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update booking",
		})
		return
	}

	log.Printf("✅ Booking %s -> %s", b.TrackingID, b.Status)
	broadcaster.BroadcastStatusChanged(b)

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated successfully",
		"booking": b,
	})
}
