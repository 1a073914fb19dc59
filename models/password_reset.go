package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordResetToken represents a single-use password reset token
type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Token     string    `json:"token" gorm:"size:255;uniqueIndex;not null"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null;index"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the PasswordResetToken model
func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// BeforeCreate is a GORM hook that runs before creating a reset token
func (pt *PasswordResetToken) BeforeCreate(tx *gorm.DB) error {
	if pt.ExpiresAt.IsZero() {
		pt.ExpiresAt = time.Now().Add(time.Hour)
	}
	return nil
}

// IsValidToken checks if the reset token is usable (not expired and not used)
func (pt *PasswordResetToken) IsValidToken() bool {
	return !pt.IsUsed && time.Now().Before(pt.ExpiresAt)
}
