package models

import (
	"time"
)

// Sales inquiry statuses. An inquiry is reviewed once by a manager and, if
// accepted, dispatched once by godown staff.
const (
	InquiryStatusPending    = "Pending"
	InquiryStatusAccepted   = "Accepted"
	InquiryStatusRejected   = "Rejected"
	InquiryStatusDispatched = "Dispatched"
)

// SalesInquiry represents a stock request raised by marketing staff or a
// distributor, flowing Pending -> Accepted/Rejected -> Dispatched.
type SalesInquiry struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	DistributorID *uint        `gorm:"index" json:"distributor_id,omitempty"`
	Distributor   *Distributor `gorm:"foreignKey:DistributorID" json:"distributor,omitempty"`
	ShopID        *uint        `gorm:"index" json:"shop_id,omitempty"`
	Shop          *Shop        `gorm:"foreignKey:ShopID" json:"shop,omitempty"`

	Brand    string `gorm:"not null" json:"brand"`
	Variant  string `gorm:"not null" json:"variant"`
	Quantity int    `gorm:"not null;check:quantity > 0" json:"quantity"`
	Note     string `json:"note"`

	Status         string  `gorm:"not null;default:'Pending';index" json:"status"`
	ManagerComment *string `json:"manager_comment,omitempty"`
	ReviewedByID   *uint   `gorm:"index" json:"reviewed_by_id,omitempty"`
	ReviewedBy     *User   `gorm:"foreignKey:ReviewedByID" json:"reviewed_by,omitempty"`

	DispatchDate      *time.Time `json:"dispatch_date,omitempty"`
	DispatchReference *string    `json:"dispatch_reference,omitempty"`
	DispatchedByID    *uint      `gorm:"index" json:"dispatched_by_id,omitempty"`
	DispatchedBy      *User      `gorm:"foreignKey:DispatchedByID" json:"dispatched_by,omitempty"`

	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SalesInquiry model
func (SalesInquiry) TableName() string {
	return "sales_inquiries"
}
