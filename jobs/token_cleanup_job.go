package jobs

import (
	"log"
	"time"

	"wedding-hall-server/services"
)

// TokenCleanupJob periodically purges expired refresh and password reset tokens
type TokenCleanupJob struct {
	jwtService *services.JWTService
	stopChan   chan bool
}

// NewTokenCleanupJob creates a new token cleanup job
func NewTokenCleanupJob() *TokenCleanupJob {
	return &TokenCleanupJob{
		jwtService: services.NewJWTService(),
		stopChan:   make(chan bool),
	}
}

// Start begins the cleanup job
func (j *TokenCleanupJob) Start() {
	go j.run()
	log.Println("🚀 Token cleanup job started")
}

// Stop stops the cleanup job
func (j *TokenCleanupJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Token cleanup job stopped")
}

// run executes the cleanup loop
func (j *TokenCleanupJob) run() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	// Run once at startup so restarts don't accumulate stale rows
	j.cleanup()

	for {
		select {
		case <-ticker.C:
			j.cleanup()
		case <-j.stopChan:
			return
		}
	}
}

func (j *TokenCleanupJob) cleanup() {
	if err := j.jwtService.CleanupExpiredTokens(); err != nil {
		log.Printf("❌ Token cleanup failed: %v", err)
	}
}
