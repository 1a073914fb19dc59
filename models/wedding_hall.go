package models

import (
	"time"

	"github.com/lib/pq"
)

// WeddingHall represents a directly listed hall without a manager account.
// These predate the manager approval workflow and are maintained by the admin.
type WeddingHall struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Address     string         `json:"address" gorm:"size:500"`
	Description string         `json:"description" gorm:"type:text"`
	Capacity    int            `json:"capacity" gorm:"default:0"`
	Price       float64        `json:"price" gorm:"type:decimal(10,2);default:0"`
	Phone       string         `json:"phone" gorm:"size:20"`
	Images      pq.StringArray `json:"images" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the WeddingHall model
func (WeddingHall) TableName() string {
	return "wedding_halls"
}
