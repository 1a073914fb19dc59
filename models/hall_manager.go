package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ApprovalStatus gates whether a hall manager or service provider account is
// visible to customers and allowed to sign in.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// IsValid checks if the approval status is recognized
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	default:
		return false
	}
}

// HallManager represents a wedding hall manager account and the hall listing it owns
type HallManager struct {
	ID     uint           `json:"id" gorm:"primaryKey"`
	UserID uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Status ApprovalStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','approved','rejected')"`

	Name            string         `json:"name" gorm:"size:255"`
	Email           string         `json:"email" gorm:"size:255;not null"`
	HallName        string         `json:"hall_name" gorm:"size:255"`
	HallAddress     string         `json:"hall_address" gorm:"size:500"`
	HallDescription string         `json:"hall_description" gorm:"type:text"`
	HallCapacity    int            `json:"hall_capacity" gorm:"default:0"`
	HallPrice       float64        `json:"hall_price" gorm:"type:decimal(10,2);default:0"`
	HallPhone       string         `json:"hall_phone" gorm:"size:20"`
	Images          pq.StringArray `json:"images" gorm:"type:text[]"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the HallManager model
func (HallManager) TableName() string {
	return "hall_managers"
}

// BeforeCreate is a GORM hook that runs before creating a hall manager
func (hm *HallManager) BeforeCreate(tx *gorm.DB) error {
	if hm.Status == "" {
		hm.Status = ApprovalStatusPending
	}
	return nil
}

// IsApproved checks if the hall manager has been approved by the admin
func (hm *HallManager) IsApproved() bool {
	return hm.Status == ApprovalStatusApproved
}
