package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleCustomer        UserRole = "customer"
	RoleHallManager     UserRole = "hallManager"
	RoleServiceProvider UserRole = "serviceProvider"
	RoleAdmin           UserRole = "admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Hidden from JSON
	Role         UserRole  `json:"role" gorm:"type:varchar(20);not null;default:'customer';check:role IN ('customer','hallManager','serviceProvider','admin')"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// BeforeCreate is a GORM hook that runs before creating a user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

// IsValidRole checks if the user role is valid
func (u *User) IsValidRole() bool {
	switch u.Role {
	case RoleCustomer, RoleHallManager, RoleServiceProvider, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsHallManager checks if the user is a hall manager
func (u *User) IsHallManager() bool {
	return u.Role == RoleHallManager
}

// IsServiceProvider checks if the user is a service provider
func (u *User) IsServiceProvider() bool {
	return u.Role == RoleServiceProvider
}

// IsAdmin checks if the user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsCustomer checks if the user is a customer
func (u *User) IsCustomer() bool {
	return u.Role == RoleCustomer
}
