package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"wedding-hall-server/database"
	"wedding-hall-server/middleware"
	"wedding-hall-server/models"
	"wedding-hall-server/services"
	"wedding-hall-server/utils"
)

// RegisterRequest represents the registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	Role     string `json:"role" binding:"omitempty,oneof=customer hallManager serviceProvider"`

	// Hall manager listing fields, only read when role is hallManager
	HallName        string   `json:"hall_name"`
	HallAddress     string   `json:"hall_address"`
	HallDescription string   `json:"hall_description"`
	HallCapacity    int      `json:"hall_capacity"`
	HallPrice       float64  `json:"hall_price"`
	HallPhone       string   `json:"hall_phone"`

	// Service provider fields, only read when role is serviceProvider
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Services []string `json:"services"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterAuthRoutes registers authentication routes
func RegisterAuthRoutes(router *gin.RouterGroup) {
	jwtService := services.NewJWTService()

	auth := router.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/register", func(c *gin.Context) { register(c, jwtService) })
		auth.POST("/login", func(c *gin.Context) { login(c, jwtService) })
		auth.POST("/refresh", func(c *gin.Context) { refreshToken(c, jwtService) })
		auth.POST("/logout", func(c *gin.Context) { logout(c, jwtService) })
		auth.POST("/forgot-password", forgotPassword)
		auth.POST("/reset-password", func(c *gin.Context) { resetPassword(c, jwtService) })
		auth.GET("/me", middleware.AuthMiddleware(), getCurrentUser)
	}
}

// register handles account creation. Hall manager and service provider
// accounts start in pending status and cannot sign in until the admin
// approves their profile.
func register(c *gin.Context, jwtService *services.JWTService) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if ok, problems := middleware.ValidatePasswordStrength(req.Password); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Weak password",
			"message": strings.Join(problems, "; "),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "User already exists",
			"message": "An account with this email already exists",
		})
		return
	}

	role := models.UserRole(req.Role)
	if role == "" {
		role = models.RoleCustomer
	}
	if role == models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Invalid role",
			"message": "Admin accounts cannot be self-registered",
		})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch role {
		case models.RoleHallManager:
			profile := models.HallManager{
				UserID:          user.ID,
				Status:          models.ApprovalStatusPending,
				Name:            req.Name,
				Email:           email,
				HallName:        req.HallName,
				HallAddress:     req.HallAddress,
				HallDescription: req.HallDescription,
				HallCapacity:    req.HallCapacity,
				HallPrice:       req.HallPrice,
				HallPhone:       req.HallPhone,
			}
			return tx.Create(&profile).Error
		case models.RoleServiceProvider:
			profile := models.ServiceProvider{
				UserID:   user.ID,
				Status:   models.ApprovalStatusPending,
				Name:     req.Name,
				Email:    email,
				Phone:    req.Phone,
				Address:  req.Address,
				Services: req.Services,
			}
			return tx.Create(&profile).Error
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ Registration failed for %s: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Registration failed",
			"message": "Failed to create account",
		})
		return
	}

	// Managers and providers wait for admin review before they can sign in
	if role == models.RoleHallManager || role == models.RoleServiceProvider {
		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration submitted. Your account is pending approval by the admin.",
			"user":    user,
		})
		return
	}

	tokens, err := jwtService.GenerateTokenPair(&user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Account created but sign-in failed, please log in",
		})
		return
	}

	log.Printf("✅ New %s registered: %s", role, email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"tokens":  tokens,
		"user":    user,
	})
}

// login authenticates a user. Pending and rejected manager/provider profiles
// are refused with the review outcome.
func login(c *gin.Context, jwtService *services.JWTService) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := database.DB.Where("email = ?", email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Printf("🚫 Failed login attempt for %s from %s", email, c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid credentials",
			"message": "Email or password is incorrect",
		})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Account disabled",
			"message": "This account has been deactivated",
		})
		return
	}

	response := gin.H{"user": user}

	switch user.Role {
	case models.RoleHallManager:
		var profile models.HallManager
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Profile not found",
				"message": "No hall manager profile exists for this account",
			})
			return
		}
		if denied := approvalGate(c, profile.Status); denied {
			return
		}
		response["profile"] = profile
	case models.RoleServiceProvider:
		var profile models.ServiceProvider
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "Profile not found",
				"message": "No service provider profile exists for this account",
			})
			return
		}
		if denied := approvalGate(c, profile.Status); denied {
			return
		}
		response["profile"] = profile
	}

	tokens, err := jwtService.GenerateTokenPair(&user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to generate authentication tokens",
		})
		return
	}
	response["tokens"] = tokens
	response["message"] = "Login successful"

	log.Printf("✅ %s logged in: %s", user.Role, email)
	c.JSON(http.StatusOK, response)
}

// approvalGate rejects sign-in for unapproved profiles and reports whether it
// wrote a response
func approvalGate(c *gin.Context, status models.ApprovalStatus) bool {
	switch status {
	case models.ApprovalStatusPending:
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Account pending",
			"message": "Your account is pending approval by the admin",
		})
		return true
	case models.ApprovalStatusRejected:
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Account rejected",
			"message": "Your account has been rejected by the admin",
		})
		return true
	}
	return false
}

// refreshToken exchanges a refresh token for a new token pair
func refreshToken(c *gin.Context, jwtService *services.JWTService) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	tokens, err := jwtService.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid refresh token",
			"message": "The refresh token is expired or revoked",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// logout revokes the presented refresh token
func logout(c *gin.Context, jwtService *services.JWTService) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Logout failed",
			"message": "Failed to revoke refresh token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// forgotPassword issues a single-use reset token. The response never reveals
// whether the email exists.
func forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	neutral := gin.H{"message": "If that email is registered, a reset token has been issued"}

	var user models.User
	if err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, neutral)
		return
	}

	token, err := middleware.GenerateSecureToken(32)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Token generation failed",
			"message": "Failed to issue reset token",
		})
		return
	}

	reset := models.PasswordResetToken{
		Token:  token,
		UserID: user.ID,
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Reset failed",
			"message": "Failed to issue reset token",
		})
		return
	}

	// No mail transport is wired up; the token is logged for operators to
	// relay out of band.
	log.Printf("🔑 Password reset token for user %d issued", user.ID)
	c.JSON(http.StatusOK, neutral)
}

// resetPassword consumes a reset token and revokes all sessions
func resetPassword(c *gin.Context, jwtService *services.JWTService) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	if ok, problems := middleware.ValidatePasswordStrength(req.NewPassword); !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Weak password",
			"message": strings.Join(problems, "; "),
		})
		return
	}

	var reset models.PasswordResetToken
	if err := database.DB.Where("token = ?", req.Token).First(&reset).Error; err != nil || !reset.IsValidToken() {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid token",
			"message": "The reset token is invalid, expired or already used",
		})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Password hashing failed",
			"message": "Failed to process password",
		})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", reset.UserID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Model(&reset).Update("is_used", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Reset failed",
			"message": "Failed to update password",
		})
		return
	}

	// Invalidate every open session after a password change
	if err := jwtService.RevokeAllUserTokens(reset.UserID); err != nil {
		log.Printf("⚠️ Failed to revoke sessions for user %d: %v", reset.UserID, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}

// getCurrentUser returns the authenticated user with their role profile
func getCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Unauthorized",
			"message": "Authentication required",
		})
		return
	}

	response := gin.H{"user": user}

	switch user.Role {
	case models.RoleHallManager:
		var profile models.HallManager
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["profile"] = profile
		}
	case models.RoleServiceProvider:
		var profile models.ServiceProvider
		if err := database.DB.Where("user_id = ?", user.ID).First(&profile).Error; err == nil {
			response["profile"] = profile
		}
	}

	c.JSON(http.StatusOK, response)
}
