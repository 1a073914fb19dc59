package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimiter stores rate limiters keyed by route + client IP
type RateLimiter struct {
	limiters map[string]*rate.Limiter
	lastSeen map[string]time.Time
	mutex    sync.RWMutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
	}
}

// GetLimiterWithConfig returns a limiter for a composite key with dynamic limits
func (rl *RateLimiter) GetLimiterWithConfig(key string, limit rate.Limit, burst int) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	limiter, exists := rl.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(limit, burst)
		rl.limiters[key] = limiter
	}
	rl.lastSeen[key] = time.Now()
	return limiter
}

// Cleanup removes limiters idle for more than an hour
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	for key, t := range rl.lastSeen {
		if now.Sub(t) > time.Hour {
			delete(rl.limiters, key)
			delete(rl.lastSeen, key)
		}
	}
}

var globalRateLimiter = NewRateLimiter()

// RateLimitMiddleware implements per-route, per-IP rate limiting
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		clientIP := c.ClientIP()
		key := path + "|" + clientIP

		var lim rate.Limit
		var burst int
		switch {
		case strings.HasPrefix(path, "/api/v1/ws"):
			// WebSocket upgrades - allow higher burst
			lim = rate.Every(time.Second)
			burst = 5
		case c.Request.Method == http.MethodGet && (strings.HasPrefix(path, "/api/v1/halls") || strings.HasPrefix(path, "/api/v1/providers")):
			// Catalog browsing is read-heavy
			lim = rate.Every(time.Second)
			burst = 10
		default:
			lim = rate.Every(time.Minute / 30) // 30 req/min
			burst = 20
		}

		limiter := globalRateLimiter.GetLimiterWithConfig(key, lim, burst)

		if !limiter.Allow() {
			log.Printf("🚫 Rate limit exceeded for %s %s from %s", c.Request.Method, path, clientIP)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"message":     "Too many requests. Please try again later.",
				"retry_after": 60,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthRateLimitMiddleware implements stricter rate limiting for auth endpoints
func AuthRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		key := "auth|" + clientIP

		limiter := globalRateLimiter.GetLimiterWithConfig(key, rate.Every(time.Minute/5), 5)

		if !limiter.Allow() {
			log.Printf("🚫 Auth rate limit exceeded for IP: %s", clientIP)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Authentication rate limit exceeded",
				"message":     "Too many authentication attempts. Please try again later.",
				"retry_after": 300,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// SecurityHeadersMiddleware adds security headers
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'self'; img-src 'self' data: https:; connect-src 'self' ws: wss:;")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains; preload")
		c.Header("Server", "")

		c.Next()
	}
}

// InputValidationMiddleware validates request size and content type
func InputValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > 10*1024*1024 { // 10MB limit
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":   "Request too large",
				"message": "Request body exceeds maximum size limit",
			})
			c.Abort()
			return
		}

		if c.Request.Method == "POST" || c.Request.Method == "PUT" || c.Request.Method == "PATCH" {
			contentType := c.GetHeader("Content-Type")
			if contentType != "" &&
				!strings.Contains(contentType, "application/json") &&
				!strings.Contains(contentType, "multipart/form-data") &&
				!strings.Contains(contentType, "application/x-www-form-urlencoded") {
				c.JSON(http.StatusUnsupportedMediaType, gin.H{
					"error":   "Invalid content type",
					"message": "Content-Type must be application/json, multipart/form-data, or application/x-www-form-urlencoded",
				})
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// AuditLogMiddleware logs request outcomes
func AuditLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		if status >= 400 {
			log.Printf("⚠️ AUDIT: %s %s returned %d in %v", c.Request.Method, c.Request.URL.Path, status, duration)
		} else {
			log.Printf("✅ AUDIT: %s %s returned %d in %v", c.Request.Method, c.Request.URL.Path, status, duration)
		}
	}
}

// GenerateSecureToken generates a cryptographically secure random token
func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// ValidatePasswordStrength validates password strength
func ValidatePasswordStrength(password string) (bool, []string) {
	var errors []string

	if len(password) < 8 {
		errors = append(errors, "Password must be at least 8 characters long")
	}

	if len(password) > 128 {
		errors = append(errors, "Password must be less than 128 characters")
	}

	hasUpper := false
	hasLower := false
	hasDigit := false

	for _, char := range password {
		switch {
		case char >= 'A' && char <= 'Z':
			hasUpper = true
		case char >= 'a' && char <= 'z':
			hasLower = true
		case char >= '0' && char <= '9':
			hasDigit = true
		}
	}

	if !hasUpper {
		errors = append(errors, "Password must contain at least one uppercase letter")
	}
	if !hasLower {
		errors = append(errors, "Password must contain at least one lowercase letter")
	}
	if !hasDigit {
		errors = append(errors, "Password must contain at least one digit")
	}

	return len(errors) == 0, errors
}
