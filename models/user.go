package models

import (
	"time"

	"gorm.io/gorm"
)

// Valid user roles. Capability checks live in the HTTP layer; services only
// record which user performed an action.
const (
	RoleAdmin       = "admin"
	RoleMarketing   = "marketing"
	RoleDistributor = "distributor"
	RoleManager     = "manager"
	RoleGodown      = "godown"
)

// User represents an actor in the system (admin, marketing staff,
// distributor, manager or godown/dispatch staff)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Role      string         `gorm:"not null;default:'marketing'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsValidRole reports whether role is one of the known user roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMarketing, RoleDistributor, RoleManager, RoleGodown:
		return true
	}
	return false
}
