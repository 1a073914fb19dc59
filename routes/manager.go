package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/now"

	"wedding-hall-server/booking"
	"wedding-hall-server/database"
	"wedding-hall-server/middleware"
	"wedding-hall-server/models"
	"wedding-hall-server/websocket"
)

// ManagerProfileRequest represents a hall listing update
type ManagerProfileRequest struct {
	Name            string   `json:"name"`
	HallName        string   `json:"hall_name"`
	HallAddress     string   `json:"hall_address"`
	HallDescription string   `json:"hall_description"`
	HallCapacity    int      `json:"hall_capacity"`
	HallPrice       float64  `json:"hall_price"`
	HallPhone       string   `json:"hall_phone"`
	Images          []string `json:"images"`
}

// ApproveBookingRequest carries the price a manager assigns at approval
type ApproveBookingRequest struct {
	Price float64 `json:"price" binding:"required"`
}

// RegisterManagerRoutes registers the hall manager dashboard
func RegisterManagerRoutes(router *gin.RouterGroup, broadcaster *websocket.BookingBroadcaster) {
	manager := router.Group("/manager")
	manager.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleHallManager))
	{
		manager.GET("/profile", getManagerProfile)
		manager.PUT("/profile", updateManagerProfile)
		manager.GET("/bookings", managerBookings)
		manager.PUT("/bookings/:id/approve", func(c *gin.Context) { managerApprove(c, broadcaster) })
		manager.PUT("/bookings/:id/reject", func(c *gin.Context) { managerReject(c, broadcaster) })
		manager.GET("/reports", managerReports)
	}
}

func currentManagerProfile(c *gin.Context) (models.HallManager, bool) {
	var profile models.HallManager
	if err := database.DB.Where("user_id = ?", c.GetUint("user_id")).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Profile not found",
			"message": "No hall manager profile exists for this account",
		})
		return profile, false
	}
	return profile, true
}

func getManagerProfile(c *gin.Context) {
	profile, ok := currentManagerProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// updateManagerProfile updates the hall listing. Approval status is
// untouchable from here; only the admin review changes it.
func updateManagerProfile(c *gin.Context) {
	profile, ok := currentManagerProfile(c)
	if !ok {
		return
	}

	var req ManagerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	profile.Name = req.Name
	profile.HallName = req.HallName
	profile.HallAddress = req.HallAddress
	profile.HallDescription = req.HallDescription
	profile.HallCapacity = req.HallCapacity
	profile.HallPrice = req.HallPrice
	profile.HallPhone = req.HallPhone
	if req.Images != nil {
		profile.Images = req.Images
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

// managerBookings lists bookings targeting this manager's hall
func managerBookings(c *gin.Context) {
	profile, ok := currentManagerProfile(c)
	if !ok {
		return
	}

	query := database.DB.Where("hall_manager_id = ?", profile.ID)
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

// managerApprove approves a pending booking, recording the agreed price
// together with the status change
func managerApprove(c *gin.Context, broadcaster *websocket.BookingBroadcaster) {
	profile, ok := currentManagerProfile(c)
	if !ok {
		return
	}

	var req ApproveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": "A price is required to approve a booking",
		})
		return
	}

	actor := booking.Actor{Role: models.RoleHallManager, HallManagerID: &profile.ID}
	managerTransition(c, actor, models.BookingStatusApproved, &req.Price, broadcaster)
}

// managerReject rejects a pending booking, freeing its date
func managerReject(c *gin.Context, broadcaster *websocket.BookingBroadcaster) {
	profile, ok := currentManagerProfile(c)
	if !ok {
		return
	}

	actor := booking.Actor{Role: models.RoleHallManager, HallManagerID: &profile.ID}
	managerTransition(c, actor, models.BookingStatusRejected, nil, broadcaster)
}

func managerTransition(c *gin.Context, actor booking.Actor, target models.BookingStatus, price *float64, broadcaster *websocket.BookingBroadcaster) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ID",
			"message": "Booking ID must be numeric",
		})
		return
	}

	var b models.Booking
	if err := database.DB.First(&b, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	if err := booking.Transition(&b, target, actor, price, time.Now()); err != nil {
		writeTransitionError(c, err)
		return
	}

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

// writeTransitionError maps lifecycle errors to HTTP responses
func writeTransitionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "You do not own this booking",
		})
	case errors.Is(err, booking.ErrPriceRequired):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Price required",
			"message": "A positive price must accompany the approval",
		})
	case errors.Is(err, booking.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Invalid transition",
			"message": "The booking cannot move to the requested status",
		})
	case errors.Is(err, booking.ErrNotServiceBooking):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid booking type",
			"message": "Completion applies to service bookings only",
		})
	case errors.Is(err, booking.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid status",
			"message": "The requested status is not recognized",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update booking",
		})
	}
}

// managerReports summarizes this hall's bookings over a calendar period
func managerReports(c *gin.Context) {
	profile, ok := currentManagerProfile(c)
	if !ok {
		return
	}

	var since time.Time
	switch c.DefaultQuery("period", "month") {
	case "week":
		since = now.BeginningOfWeek()
	case "year":
		since = now.BeginningOfYear()
	default:
		since = now.BeginningOfMonth()
	}

	type statusCount struct {
		Status models.BookingStatus `json:"status"`
		Count  int64                `json:"count"`
	}

	var counts []statusCount
	err := database.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Where("hall_manager_id = ? AND created_at >= ?", profile.ID, since).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to build report",
		})
		return
	}

	var revenue float64
	err = database.DB.Model(&models.Booking{}).
		Where("hall_manager_id = ? AND created_at >= ? AND status = ? AND price IS NOT NULL",
			profile.ID, since, models.BookingStatusApproved).
		Select("COALESCE(SUM(price), 0)").
		Scan(&revenue).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to build report",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"since":            since,
		"status_counts":    counts,
		"approved_revenue": revenue,
	})
}
