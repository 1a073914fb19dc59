package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ServiceCategory represents a category of event service a provider can offer
type ServiceCategory string

const (
	ServiceCatering       ServiceCategory = "CATERING"
	ServiceDecoration     ServiceCategory = "DECORATION"
	ServicePhotography    ServiceCategory = "PHOTOGRAPHY"
	ServiceVideography    ServiceCategory = "VIDEOGRAPHY"
	ServiceMusic          ServiceCategory = "MUSIC"
	ServiceTransportation ServiceCategory = "TRANSPORTATION"
	ServiceMakeup         ServiceCategory = "MAKEUP"
	ServiceMehndi         ServiceCategory = "MEHNDI"
)

// ServiceProvider represents an independent event service provider account
type ServiceProvider struct {
	ID     uint           `json:"id" gorm:"primaryKey"`
	UserID uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	Status ApprovalStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';check:status IN ('pending','approved','rejected')"`

	Name         string         `json:"name" gorm:"size:255"`
	Email        string         `json:"email" gorm:"size:255;not null"`
	Phone        string         `json:"phone" gorm:"size:20"`
	Address      string         `json:"address" gorm:"size:500"`
	Services     pq.StringArray `json:"services" gorm:"type:text[]"`
	ProfilePhoto *string        `json:"profile_photo" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for the ServiceProvider model
func (ServiceProvider) TableName() string {
	return "service_providers"
}

// BeforeCreate is a GORM hook that runs before creating a service provider
func (sp *ServiceProvider) BeforeCreate(tx *gorm.DB) error {
	if sp.Status == "" {
		sp.Status = ApprovalStatusPending
	}
	return nil
}

// IsApproved checks if the service provider has been approved by the admin
func (sp *ServiceProvider) IsApproved() bool {
	return sp.Status == ApprovalStatusApproved
}

// GetServiceCategories returns all service categories a provider may offer
func GetServiceCategories() []ServiceCategory {
	return []ServiceCategory{
		ServiceCatering,
		ServiceDecoration,
		ServicePhotography,
		ServiceVideography,
		ServiceMusic,
		ServiceTransportation,
		ServiceMakeup,
		ServiceMehndi,
	}
}
