package models

import (
	"time"

	"gorm.io/gorm"
)

// Distributor represents a distributor partner who sells stock in a territory
// and can report damaged goods or raise sales inquiries.
type Distributor struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	ContactPerson string         `json:"contact_person"`
	Phone         string         `gorm:"not null" json:"phone"`
	Email         string         `json:"email"`
	Address       string         `json:"address"`
	Territory     string         `gorm:"index" json:"territory"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Distributor model
func (Distributor) TableName() string {
	return "distributors"
}
