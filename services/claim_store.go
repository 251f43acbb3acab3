package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldlink/fieldlink-api/models"
	"gorm.io/gorm"
)

// ClaimStore is the storage collaborator behind the damage-claim lifecycle.
// UpdateIfStatus is the compare-and-set primitive: it only applies updates
// while the claim still has the expected status, and reports how many rows
// were touched so the caller can tell a lost race from a missing claim.
type ClaimStore interface {
	FindByID(ctx context.Context, id uint) (*models.DamageClaim, error)
	FindByTrackingID(ctx context.Context, trackingID string) (*models.DamageClaim, error)
	Create(ctx context.Context, claim *models.DamageClaim) error
	UpdateIfStatus(ctx context.Context, id uint, expectedStatus string, updates map[string]interface{}) (int64, error)
	UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) (int64, error)
	AttachReplacement(ctx context.Context, replacement *models.Replacement) error
	Delete(ctx context.Context, id uint) (int64, error)
}

// GormClaimStore implements ClaimStore on top of GORM.
type GormClaimStore struct {
	db *gorm.DB
}

// NewGormClaimStore constructs a store around the given database handle.
func NewGormClaimStore(db *gorm.DB) *GormClaimStore {
	return &GormClaimStore{db: db}
}

// FindByID loads a claim with its replacement and actor relations.
func (s *GormClaimStore) FindByID(ctx context.Context, id uint) (*models.DamageClaim, error) {
	var claim models.DamageClaim
	err := s.db.WithContext(ctx).
		Preload("Replacement").
		Preload("Distributor").
		First(&claim, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to load claim: %w", err)
	}
	return &claim, nil
}

// FindByTrackingID loads the claim a tracking ID was assigned to.
func (s *GormClaimStore) FindByTrackingID(ctx context.Context, trackingID string) (*models.DamageClaim, error) {
	var claim models.DamageClaim
	err := s.db.WithContext(ctx).
		Preload("Replacement").
		Preload("Distributor").
		Where("tracking_id = ?", trackingID).
		First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to load claim by tracking ID: %w", err)
	}
	return &claim, nil
}

// Create inserts a new pending claim.
func (s *GormClaimStore) Create(ctx context.Context, claim *models.DamageClaim) error {
	if err := s.db.WithContext(ctx).Create(claim).Error; err != nil {
		return fmt.Errorf("failed to create claim: %w", err)
	}
	return nil
}

// UpdateIfStatus applies updates only while the claim still has
// expectedStatus. The status guard in the WHERE clause is what serializes
// concurrent decisions on the same claim.
func (s *GormClaimStore) UpdateIfStatus(ctx context.Context, id uint, expectedStatus string, updates map[string]interface{}) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.DamageClaim{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(updates)
	if result.Error != nil {
		if IsUniqueViolation(result.Error) {
			return 0, result.Error
		}
		return 0, fmt.Errorf("failed to update claim: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// UpdateFields applies updates regardless of status (manager comments).
func (s *GormClaimStore) UpdateFields(ctx context.Context, id uint, updates map[string]interface{}) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.DamageClaim{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update claim: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// AttachReplacement inserts the replacement row; the unique index on
// claim_id turns a second attempt into a uniqueness violation.
func (s *GormClaimStore) AttachReplacement(ctx context.Context, replacement *models.Replacement) error {
	return s.db.WithContext(ctx).Create(replacement).Error
}

// Delete removes a claim outright. Claims have no soft-delete state, so
// this is a hard delete; the replacement row goes with it.
func (s *GormClaimStore) Delete(ctx context.Context, id uint) (int64, error) {
	if err := s.db.WithContext(ctx).Where("claim_id = ?", id).Delete(&models.Replacement{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete replacement: %w", err)
	}
	result := s.db.WithContext(ctx).Delete(&models.DamageClaim{}, id)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete claim: %w", result.Error)
	}
	return result.RowsAffected, nil
}
