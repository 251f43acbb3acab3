package models

import (
	"time"

	"gorm.io/gorm"
)

// CheckIn represents a field visit logged by marketing staff, optionally
// tied to a registered shop and backed by a photo.
type CheckIn struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	User       User           `gorm:"foreignKey:UserID" json:"user"`
	ShopID     *uint          `gorm:"index" json:"shop_id,omitempty"`
	Shop       *Shop          `gorm:"foreignKey:ShopID" json:"shop,omitempty"`
	Location   string         `json:"location"` // free text when no shop reference
	Latitude   float64        `json:"latitude"`
	Longitude  float64        `json:"longitude"`
	Note       string         `json:"note"`
	ImageS3Key *string        `json:"image_s3_key,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the CheckIn model
func (CheckIn) TableName() string {
	return "check_ins"
}
