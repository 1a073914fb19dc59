package routes

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wedding-hall-server/booking"
	"wedding-hall-server/database"
	"wedding-hall-server/middleware"
	"wedding-hall-server/models"
	"wedding-hall-server/websocket"
)

// AdminBookingEditRequest is the admin's unguarded booking edit. It can place
// a booking in any recognized status regardless of the lifecycle graph.
type AdminBookingEditRequest struct {
	Status string   `json:"status" binding:"required"`
	Price  *float64 `json:"price"`
}

// LegacyHallRequest represents an admin-listed hall create or update
type LegacyHallRequest struct {
	Name        string   `json:"name" binding:"required"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	Price       float64  `json:"price"`
	Phone       string   `json:"phone"`
	Images      []string `json:"images"`
}

// RegisterAdminRoutes registers the admin dashboard
func RegisterAdminRoutes(router *gin.RouterGroup, broadcaster *websocket.BookingBroadcaster) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/dashboard", adminDashboard)

		admin.GET("/managers", adminListManagers)
		admin.PUT("/managers/:id/approve", func(c *gin.Context) { reviewManager(c, models.ApprovalStatusApproved, broadcaster) })
		admin.PUT("/managers/:id/reject", func(c *gin.Context) { reviewManager(c, models.ApprovalStatusRejected, broadcaster) })
		admin.DELETE("/managers/:id", adminDeleteManager)

		admin.GET("/providers", adminListProviders)
		admin.PUT("/providers/:id/approve", func(c *gin.Context) { reviewProvider(c, models.ApprovalStatusApproved, broadcaster) })
		admin.PUT("/providers/:id/reject", func(c *gin.Context) { reviewProvider(c, models.ApprovalStatusRejected, broadcaster) })
		admin.DELETE("/providers/:id", adminDeleteProvider)

		admin.GET("/bookings", adminListBookings)
		admin.PUT("/bookings/:id/approve", func(c *gin.Context) { adminGuardedTransition(c, models.BookingStatusApproved, broadcaster) })
		admin.PUT("/bookings/:id/reject", func(c *gin.Context) { adminGuardedTransition(c, models.BookingStatusRejected, broadcaster) })
		admin.PUT("/bookings/:id", func(c *gin.Context) { adminEditBooking(c, broadcaster) })
		admin.DELETE("/bookings/:id", adminDeleteBooking)

		admin.POST("/halls", adminCreateHall)
		admin.PUT("/halls/:id", adminUpdateHall)
		admin.DELETE("/halls/:id", adminDeleteHall)
	}
}

// adminDashboard returns headline counts for the admin landing page
func adminDashboard(c *gin.Context) {
	stats := gin.H{}

	counts := []struct {
		key   string
		model interface{}
		where []interface{}
	}{
		{"total_bookings", &models.Booking{}, nil},
		{"pending_bookings", &models.Booking{}, []interface{}{"status = ?", models.BookingStatusPending}},
		{"pending_managers", &models.HallManager{}, []interface{}{"status = ?", models.ApprovalStatusPending}},
		{"pending_providers", &models.ServiceProvider{}, []interface{}{"status = ?", models.ApprovalStatusPending}},
		{"total_users", &models.User{}, nil},
		{"legacy_halls", &models.WeddingHall{}, nil},
	}

	for _, item := range counts {
		var n int64
		query := database.DB.Model(item.model)
		if item.where != nil {
			query = query.Where(item.where[0], item.where[1:]...)
		}
		if err := query.Count(&n).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Query failed",
				"message": "Failed to load dashboard statistics",
			})
			return
		}
		stats[item.key] = n
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

func adminListManagers(c *gin.Context) {
	query := database.DB.Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var managers []models.HallManager
	if err := query.Order("created_at DESC").Find(&managers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load hall managers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"managers": managers})
}

func adminListProviders(c *gin.Context) {
	query := database.DB.Preload("User")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var providers []models.ServiceProvider
	if err := query.Order("created_at DESC").Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load service providers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

// reviewManager records the admin's decision on a pending hall manager
func reviewManager(c *gin.Context, decision models.ApprovalStatus, broadcaster *websocket.BookingBroadcaster) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var manager models.HallManager
	if err := database.DB.First(&manager, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Manager not found",
			"message": "The requested hall manager does not exist",
		})
		return
	}

	manager.Status = decision
	if err := database.DB.Save(&manager).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to record the review",
		})
		return
	}

	log.Printf("✅ Hall manager %d reviewed: %s", manager.ID, decision)
	broadcaster.BroadcastProfileReviewed(manager.UserID, "hall_manager", decision)

	c.JSON(http.StatusOK, gin.H{
		"message": "Review recorded",
		"manager": manager,
	})
}

// reviewProvider records the admin's decision on a pending service provider
func reviewProvider(c *gin.Context, decision models.ApprovalStatus, broadcaster *websocket.BookingBroadcaster) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var provider models.ServiceProvider
	if err := database.DB.First(&provider, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The requested service provider does not exist",
		})
		return
	}

	provider.Status = decision
	if err := database.DB.Save(&provider).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to record the review",
		})
		return
	}

	log.Printf("✅ Service provider %d reviewed: %s", provider.ID, decision)
	broadcaster.BroadcastProfileReviewed(provider.UserID, "service_provider", decision)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Review recorded",
		"provider": provider,
	})
}

// adminDeleteManager removes a hall manager profile and its user account
func adminDeleteManager(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var manager models.HallManager
	if err := database.DB.First(&manager, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Manager not found",
			"message": "The requested hall manager does not exist",
		})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&manager).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, manager.UserID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Delete failed",
			"message": "Failed to delete hall manager",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hall manager deleted"})
}

// adminDeleteProvider removes a service provider profile and its user account
func adminDeleteProvider(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var provider models.ServiceProvider
	if err := database.DB.First(&provider, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The requested service provider does not exist",
		})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&provider).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, provider.UserID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Delete failed",
			"message": "Failed to delete service provider",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service provider deleted"})
}

func adminListBookings(c *gin.Context) {
	query := database.DB.Model(&models.Booking{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if bookingType := c.Query("type"); bookingType != "" {
		query = query.Where("type = ?", bookingType)
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

// adminGuardedTransition runs the same lifecycle graph as owners. The admin
// acts as a universal owner here; the edit endpoint below is the escape hatch.
func adminGuardedTransition(c *gin.Context, target models.BookingStatus, broadcaster *websocket.BookingBroadcaster) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var b models.Booking
	if err := database.DB.First(&b, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	var price *float64
	if target == models.BookingStatusApproved {
		var req struct {
			Price *float64 `json:"price"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			price = req.Price
		}
	}

	actor := booking.Actor{Role: models.RoleAdmin}
	if err := booking.Transition(&b, target, actor, price, time.Now()); err != nil {
		writeTransitionError(c, err)
		return
	}

	saveAndBroadcast(c, b, broadcaster)
}

// adminEditBooking places a booking in any recognized status, bypassing the
// lifecycle graph
func adminEditBooking(c *gin.Context, broadcaster *websocket.BookingBroadcaster) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req AdminBookingEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	var b models.Booking
	if err := database.DB.First(&b, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	if err := booking.AdminOverride(&b, models.BookingStatus(req.Status), req.Price, time.Now()); err != nil {
		writeTransitionError(c, err)
		return
	}

	log.Printf("⚠️ Admin override: booking %s set to %s", b.TrackingID, b.Status)
	saveAndBroadcast(c, b, broadcaster)
}

func adminDeleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	result := database.DB.Delete(&models.Booking{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Delete failed",
			"message": "Failed to delete booking",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// adminCreateHall adds an admin-listed hall
func adminCreateHall(c *gin.Context) {
	var req LegacyHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	hall := models.WeddingHall{
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
		Capacity:    req.Capacity,
		Price:       req.Price,
		Phone:       req.Phone,
		Images:      req.Images,
	}

	if err := database.DB.Create(&hall).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Create failed",
			"message": "Failed to create hall",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Hall created",
		"hall":    hall,
	})
}

func adminUpdateHall(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var hall models.WeddingHall
	if err := database.DB.First(&hall, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Hall not found",
			"message": "The requested hall does not exist",
		})
		return
	}

	var req LegacyHallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	hall.Name = req.Name
	hall.Address = req.Address
	hall.Description = req.Description
	hall.Capacity = req.Capacity
	hall.Price = req.Price
	hall.Phone = req.Phone
	if req.Images != nil {
		hall.Images = req.Images
	}

	if err := database.DB.Save(&hall).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Update failed",
			"message": "Failed to update hall",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Hall updated",
		"hall":    hall,
	})
}

func adminDeleteHall(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	result := database.DB.Delete(&models.WeddingHall{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Delete failed",
			"message": "Failed to delete hall",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Hall not found",
			"message": "The requested hall does not exist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hall deleted"})
}

// paramID parses the :id route parameter
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ID",
			"message": "ID must be numeric",
		})
		return 0, false
	}
	return uint(id), true
}
