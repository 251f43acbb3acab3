package models

import (
	"time"

	"gorm.io/gorm"
)

// Shop registration statuses. A shop is registered by marketing staff in
// "Pending" and reviewed exactly once by an admin.
const (
	ShopStatusPending  = "Pending"
	ShopStatusApproved = "Approved"
	ShopStatusRejected = "Rejected"
)

// Shop represents a retail shop registered by field marketing staff.
type Shop struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	OwnerName     string         `json:"owner_name"`
	Phone         string         `json:"phone"`
	Address       string         `gorm:"not null" json:"address"`
	Territory     string         `gorm:"index" json:"territory"`
	Status        string         `gorm:"not null;default:'Pending';index" json:"status"`
	ReviewComment *string        `json:"review_comment,omitempty"` // set when reviewed
	ReviewedByID  *uint          `gorm:"index" json:"reviewed_by_id,omitempty"`
	ReviewedBy    *User          `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`
	CreatedByID   uint           `gorm:"not null;index" json:"created_by_id"`
	CreatedBy     User           `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Shop model
func (Shop) TableName() string {
	return "shops"
}
