package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldlink/fieldlink-api/models"
	"gorm.io/gorm"
)

// InquiryService owns the sales-inquiry workflow: a manager reviews a
// pending inquiry once, and godown staff dispatch an accepted one once.
// Transitions use the same conditional-update pattern as the claim
// lifecycle so concurrent reviews can't overwrite each other.
type InquiryService struct {
	db *gorm.DB
}

// NewInquiryService constructs the service around a database handle.
func NewInquiryService(db *gorm.DB) *InquiryService {
	return &InquiryService{db: db}
}

// Get loads an inquiry with its relations.
func (s *InquiryService) Get(ctx context.Context, id uint) (*models.SalesInquiry, error) {
	var inquiry models.SalesInquiry
	err := s.db.WithContext(ctx).
		Preload("Distributor").
		Preload("Shop").
		Preload("CreatedBy").
		First(&inquiry, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to load inquiry: %w", err)
	}
	return &inquiry, nil
}

// Review moves a pending inquiry to Accepted or Rejected.
func (s *InquiryService) Review(ctx context.Context, id uint, actorID uint, accepted bool, comment string) (*models.SalesInquiry, error) {
	status := models.InquiryStatusAccepted
	if !accepted {
		status = models.InquiryStatusRejected
	}

	updates := map[string]interface{}{
		"status":         status,
		"reviewed_by_id": actorID,
	}
	if comment != "" {
		updates["manager_comment"] = comment
	}

	result := s.db.WithContext(ctx).
		Model(&models.SalesInquiry{}).
		Where("id = ? AND status = ?", id, models.InquiryStatusPending).
		Updates(updates)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to review inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidState
	}

	return s.Get(ctx, id)
}

// Dispatch records the godown dispatch of an accepted inquiry.
func (s *InquiryService) Dispatch(ctx context.Context, id uint, actorID uint, dispatchDate time.Time, reference string) (*models.SalesInquiry, error) {
	if dispatchDate.IsZero() {
		return nil, &ValidationError{Field: "dispatch_date", Message: "dispatch_date is required"}
	}
	if reference == "" {
		return nil, &ValidationError{Field: "dispatch_reference", Message: "dispatch_reference is required"}
	}

	result := s.db.WithContext(ctx).
		Model(&models.SalesInquiry{}).
		Where("id = ? AND status = ?", id, models.InquiryStatusAccepted).
		Updates(map[string]interface{}{
			"status":             models.InquiryStatusDispatched,
			"dispatch_date":      dispatchDate,
			"dispatch_reference": reference,
			"dispatched_by_id":   actorID,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to dispatch inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidState
	}

	return s.Get(ctx, id)
}
