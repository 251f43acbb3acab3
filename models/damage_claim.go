package models

import (
	"time"

	"gorm.io/datatypes"
)

// Damage claim statuses. A claim starts in "Pending" and is decided exactly
// once; the three decided statuses are terminal.
const (
	ClaimStatusPending           = "Pending"
	ClaimStatusApproved          = "Approved"
	ClaimStatusPartiallyApproved = "Partially Approved"
	ClaimStatusRejected          = "Rejected"
)

// Damage type values accepted on claim creation.
const (
	DamageTypeBox     = "Box Damage"
	DamageTypeProduct = "Product Damage"
	DamageTypeSeal    = "Seal Broken"
	DamageTypeExpiry  = "Expiry Date Issue"
	DamageTypeQuality = "Quality Issue"
	DamageTypeOther   = "Other"
)

// IsValidDamageType reports whether damageType is one of the accepted values.
func IsValidDamageType(damageType string) bool {
	switch damageType {
	case DamageTypeBox, DamageTypeProduct, DamageTypeSeal,
		DamageTypeExpiry, DamageTypeQuality, DamageTypeOther:
		return true
	}
	return false
}

// IsDecidedClaimStatus reports whether status is a terminal decision status.
func IsDecidedClaimStatus(status string) bool {
	return status == ClaimStatusApproved ||
		status == ClaimStatusPartiallyApproved ||
		status == ClaimStatusRejected
}

// DamageClaim represents one reported batch of damaged goods from a
// distributor. The tracking ID is assigned exactly once, on the first
// transition into an approved status; the unique index is partial so the
// many claims that never leave Pending or end up Rejected don't collide on
// a missing value.
type DamageClaim struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	DistributorID   uint        `gorm:"not null;index" json:"distributor_id"`
	Distributor     Distributor `gorm:"foreignKey:DistributorID" json:"distributor"`
	DistributorName string      `gorm:"not null" json:"distributor_name"` // denormalized display copy

	Brand             string         `gorm:"not null" json:"brand"`
	Variant           string         `gorm:"not null" json:"variant"`
	Size              string         `json:"size"`
	Pieces            int            `gorm:"not null;check:pieces > 0" json:"pieces"`
	ManufacturingDate *time.Time     `json:"manufacturing_date,omitempty"`
	BatchDetails      string         `json:"batch_details"`
	DamageType        string         `gorm:"not null" json:"damage_type"`
	Reason            string         `json:"reason"`
	Images            datatypes.JSON `json:"images"` // list of S3 keys / upload paths

	Status         string  `gorm:"not null;default:'Pending';index" json:"status"`
	ApprovedPieces *int    `json:"approved_pieces,omitempty"` // set only when Partially Approved
	ApprovedByID   *uint   `gorm:"index" json:"approved_by_id,omitempty"`
	ApprovedBy     *User   `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	Comment        *string `json:"comment,omitempty"`
	ManagerComment *string `json:"manager_comment,omitempty"`

	TrackingID  *string      `gorm:"uniqueIndex:idx_damage_claims_tracking_id,where:tracking_id IS NOT NULL" json:"tracking_id,omitempty"`
	Replacement *Replacement `gorm:"foreignKey:ClaimID" json:"replacement,omitempty"`

	CreatedByID uint      `gorm:"not null;index" json:"created_by_id"`
	CreatedBy   User      `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the DamageClaim model
func (DamageClaim) TableName() string {
	return "damage_claims"
}

// Replacement is the logistics record describing how approved damaged goods
// were resolved. The unique index on ClaimID enforces at-most-once
// attachment at the storage layer.
type Replacement struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ClaimID         uint      `gorm:"uniqueIndex;not null" json:"claim_id"`
	DispatchDate    time.Time `gorm:"not null" json:"dispatch_date"`
	ApprovedByName  string    `gorm:"not null" json:"approved_by_name"` // dispatch approver, distinct from the claim decision actor
	ChannelledTo    string    `gorm:"not null" json:"channelled_to"`
	ReferenceNumber string    `gorm:"not null" json:"reference_number"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Replacement model
func (Replacement) TableName() string {
	return "replacements"
}

// ClaimView is the API-boundary shape of a claim. Approval-only fields are
// rebuilt from the status so an invalid combination (approved pieces on a
// rejected claim, a tracking ID on a pending one) can never serialize.
type ClaimView struct {
	ID              uint           `json:"id"`
	DistributorID   uint           `json:"distributor_id"`
	DistributorName string         `json:"distributor_name"`
	Brand           string         `json:"brand"`
	Variant         string         `json:"variant"`
	Size            string         `json:"size,omitempty"`
	Pieces          int            `json:"pieces"`
	BatchDetails    string         `json:"batch_details,omitempty"`
	DamageType      string         `json:"damage_type"`
	Reason          string         `json:"reason,omitempty"`
	Images          datatypes.JSON `json:"images,omitempty"`
	Status          string         `json:"status"`
	ApprovedPieces  *int           `json:"approved_pieces,omitempty"`
	ApprovedByID    *uint          `json:"approved_by_id,omitempty"`
	Comment         *string        `json:"comment,omitempty"`
	ManagerComment  *string        `json:"manager_comment,omitempty"`
	TrackingID      *string        `json:"tracking_id,omitempty"`
	Replacement     *Replacement   `json:"replacement,omitempty"`
	CreatedByID     uint           `json:"created_by_id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// View renders the claim for API responses, gated by its status.
func (c *DamageClaim) View() ClaimView {
	v := ClaimView{
		ID:              c.ID,
		DistributorID:   c.DistributorID,
		DistributorName: c.DistributorName,
		Brand:           c.Brand,
		Variant:         c.Variant,
		Size:            c.Size,
		Pieces:          c.Pieces,
		BatchDetails:    c.BatchDetails,
		DamageType:      c.DamageType,
		Reason:          c.Reason,
		Images:          c.Images,
		Status:          c.Status,
		ManagerComment:  c.ManagerComment,
		CreatedByID:     c.CreatedByID,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}

	switch c.Status {
	case ClaimStatusApproved:
		v.ApprovedByID = c.ApprovedByID
		v.Comment = c.Comment
		v.TrackingID = c.TrackingID
		v.Replacement = c.Replacement
	case ClaimStatusPartiallyApproved:
		v.ApprovedPieces = c.ApprovedPieces
		v.ApprovedByID = c.ApprovedByID
		v.Comment = c.Comment
		v.TrackingID = c.TrackingID
		v.Replacement = c.Replacement
	case ClaimStatusRejected:
		v.ApprovedByID = c.ApprovedByID
		v.Comment = c.Comment
	}

	return v
}
