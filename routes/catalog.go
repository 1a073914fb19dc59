package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wedding-hall-server/database"
	"wedding-hall-server/models"
)

// RegisterCatalogRoutes registers the public hall and provider catalog
func RegisterCatalogRoutes(router *gin.RouterGroup) {
	halls := router.Group("/halls")
	{
		halls.GET("", listHalls)
		halls.GET("/legacy/:id", getLegacyHall)
		halls.GET("/managed/:id", getManagedHall)
		halls.GET("/legacy/:id/booked-dates", legacyHallBookedDates)
		halls.GET("/managed/:id/booked-dates", managedHallBookedDates)
	}

	providers := router.Group("/providers")
	{
		providers.GET("", listProviders)
		providers.GET("/services", listServiceCategories)
		providers.GET("/:id", getProvider)
		providers.GET("/:id/booked-dates", providerBookedDates)
	}
}

// listHalls returns admin-listed halls alongside approved manager-run halls
func listHalls(c *gin.Context) {
	var legacy []models.WeddingHall
	if err := database.DB.Order("name ASC").Find(&legacy).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load halls",
		})
		return
	}

	var managed []models.HallManager
	if err := database.DB.Where("status = ?", models.ApprovalStatusApproved).
		Order("hall_name ASC").Find(&managed).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load halls",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"legacy_halls":  legacy,
		"managed_halls": managed,
	})
}

func getLegacyHall(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ID",
			"message": "Hall ID must be numeric",
		})
		return
	}

	var hall models.WeddingHall
	if err := database.DB.First(&hall, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Hall not found",
			"message": "The requested hall does not exist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hall": hall})
}

func getManagedHall(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ID",
			"message": "Hall ID must be numeric",
		})
		return
	}

	var manager models.HallManager
	if err := database.DB.Where("id = ? AND status = ?", uint(id), models.ApprovalStatusApproved).
		First(&manager).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Hall not found",
			"message": "The requested hall does not exist or is not approved",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hall": manager})
}

// listProviders returns approved service providers, optionally filtered by a
// service category
func listProviders(c *gin.Context) {
	query := database.DB.Where("status = ?", models.ApprovalStatusApproved)

	if service := c.Query("service"); service != "" {
		query = query.Where("? = ANY(services)", service)
	}

	var providers []models.ServiceProvider
	if err := query.Order("name ASC").Find(&providers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load service providers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"providers": providers})
}

func getProvider(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ID",
			"message": "Provider ID must be numeric",
		})
		return
	}

	var provider models.ServiceProvider
	if err := database.DB.Where("id = ? AND status = ?", uint(id), models.ApprovalStatusApproved).
		First(&provider).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Provider not found",
			"message": "The requested provider does not exist or is not approved",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"provider": provider})
}

// listServiceCategories returns the fixed set of offered service categories
func listServiceCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"services": models.GetServiceCategories()})
}

// legacyHallBookedDates lists occupied dates for an admin-listed hall.
// Rejected bookings free their date and are excluded.
func legacyHallBookedDates(c *gin.Context) {
	bookedDates(c, "hall_id")
}

// managedHallBookedDates lists occupied dates for a manager-run hall
func managedHallBookedDates(c *gin.Context) {
	bookedDates(c, "hall_manager_id")
}

// providerBookedDates lists occupied dates for a service provider
func providerBookedDates(c *gin.Context) {
	bookedDates(c, "service_provider_id")
}

func bookedDates(c *gin.Context, column string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid ID",
			"message": "ID must be numeric",
		})
		return
	}

	var dates []string
	err = database.DB.Model(&models.Booking{}).
		Where(column+" = ? AND status <> ?", uint(id), models.BookingStatusRejected).
		Order("date ASC").
		Pluck("date", &dates).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Query failed",
			"message": "Failed to load booked dates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booked_dates": dates})
}
