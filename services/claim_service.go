package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldlink/fieldlink-api/models"
	"github.com/google/uuid"
)

// maxTrackingAttempts bounds the regenerate-and-retry loop when a freshly
// generated tracking ID collides with an existing one.
const maxTrackingAttempts = 3

// Decision carries a manager's verdict on a pending claim.
type Decision struct {
	Status         string
	Comment        *string
	ApprovedPieces *int
}

// ReplacementInput carries the godown dispatch details attached to an
// approved claim.
type ReplacementInput struct {
	DispatchDate    time.Time
	ApprovedByName  string
	ChannelledTo    string
	ReferenceNumber string
}

// ClaimService owns the damage-claim status state machine, tracking-ID
// assignment and replacement-dispatch recording. It is role-agnostic: the
// HTTP layer authorizes the actor before calling in, and the service only
// records who acted.
type ClaimService struct {
	store ClaimStore
}

// NewClaimService constructs the lifecycle service around a claim store.
func NewClaimService(store ClaimStore) *ClaimService {
	return &ClaimService{store: store}
}

// Decide applies a status decision to a pending claim. Exactly one decision
// is accepted per claim: the update is guarded by status = Pending at the
// storage layer, so of two concurrent decisions one wins and the other
// observes ErrInvalidState. Claims moving into Approved or Partially
// Approved receive a tracking ID here, exactly once.
func (s *ClaimService) Decide(ctx context.Context, claimID uint, actorID uint, decision Decision) (*models.DamageClaim, error) {
	if !models.IsDecidedClaimStatus(decision.Status) {
		return nil, &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of %q, %q or %q", models.ClaimStatusApproved, models.ClaimStatusPartiallyApproved, models.ClaimStatusRejected),
		}
	}

	claim, err := s.store.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != models.ClaimStatusPending {
		return nil, ErrInvalidState
	}

	if decision.Status == models.ClaimStatusPartiallyApproved {
		if decision.ApprovedPieces == nil {
			return nil, &ValidationError{Field: "approved_pieces", Message: "approved_pieces is required for a partial approval"}
		}
		if *decision.ApprovedPieces < 1 || *decision.ApprovedPieces > claim.Pieces {
			return nil, &ValidationError{
				Field:   "approved_pieces",
				Message: fmt.Sprintf("approved_pieces must be between 1 and %d", claim.Pieces),
			}
		}
	} else if decision.ApprovedPieces != nil {
		return nil, &ValidationError{Field: "approved_pieces", Message: "approved_pieces is only allowed for a partial approval"}
	}

	updates := map[string]interface{}{
		"status":         decision.Status,
		"approved_by_id": actorID,
	}
	if decision.Comment != nil {
		updates["comment"] = *decision.Comment
	}
	if decision.Status == models.ClaimStatusPartiallyApproved {
		updates["approved_pieces"] = *decision.ApprovedPieces
	}

	if decision.Status == models.ClaimStatusRejected {
		rows, err := s.store.UpdateIfStatus(ctx, claimID, models.ClaimStatusPending, updates)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, s.lostUpdateError(ctx, claimID)
		}
		return s.store.FindByID(ctx, claimID)
	}

	// Approved or partially approved: assign the tracking ID together with
	// the status flip. A uniqueness violation means another claim got the
	// same ID first; regenerate and retry a bounded number of times.
	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		updates["tracking_id"] = NewTrackingID()
		rows, err := s.store.UpdateIfStatus(ctx, claimID, models.ClaimStatusPending, updates)
		if err != nil {
			if IsUniqueViolation(err) {
				continue
			}
			return nil, err
		}
		if rows == 0 {
			return nil, s.lostUpdateError(ctx, claimID)
		}
		return s.store.FindByID(ctx, claimID)
	}

	return nil, ErrTrackingConflict
}

// lostUpdateError disambiguates a zero-row conditional update: either the
// claim vanished or it was already decided by a concurrent call.
func (s *ClaimService) lostUpdateError(ctx context.Context, claimID uint) error {
	if _, err := s.store.FindByID(ctx, claimID); err != nil {
		return err
	}
	return ErrInvalidState
}

// Annotate records a manager comment on a claim in any status. It never
// touches the status or tracking ID, and applying the same comment twice
// leaves the claim unchanged.
func (s *ClaimService) Annotate(ctx context.Context, claimID uint, comment string) (*models.DamageClaim, error) {
	rows, err := s.store.UpdateFields(ctx, claimID, map[string]interface{}{
		"manager_comment": comment,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrClaimNotFound
	}
	return s.store.FindByID(ctx, claimID)
}

// CreateReplacement attaches the dispatch record to the claim identified by
// trackingID. At most one replacement is ever attached; the unique index on
// the replacement's claim ID backs up the in-memory check against races.
func (s *ClaimService) CreateReplacement(ctx context.Context, trackingID string, input ReplacementInput) (*models.DamageClaim, error) {
	if input.DispatchDate.IsZero() {
		return nil, &ValidationError{Field: "dispatch_date", Message: "dispatch_date is required"}
	}
	if input.ReferenceNumber == "" {
		return nil, &ValidationError{Field: "reference_number", Message: "reference_number is required"}
	}

	claim, err := s.store.FindByTrackingID(ctx, trackingID)
	if err != nil {
		return nil, err
	}

	// Pending claims can't be reached here (no tracking ID exists yet), but
	// the guard also covers rejected claims and direct misuse.
	if claim.Status != models.ClaimStatusApproved && claim.Status != models.ClaimStatusPartiallyApproved {
		return nil, ErrInvalidState
	}
	if claim.Replacement != nil {
		return nil, ErrReplacementExists
	}

	replacement := models.Replacement{
		ClaimID:         claim.ID,
		DispatchDate:    input.DispatchDate,
		ApprovedByName:  input.ApprovedByName,
		ChannelledTo:    input.ChannelledTo,
		ReferenceNumber: input.ReferenceNumber,
	}
	if err := s.store.AttachReplacement(ctx, &replacement); err != nil {
		if IsUniqueViolation(err) {
			return nil, ErrReplacementExists
		}
		return nil, fmt.Errorf("failed to attach replacement: %w", err)
	}

	return s.store.FindByTrackingID(ctx, trackingID)
}

// GetByID returns a claim by its identifier.
func (s *ClaimService) GetByID(ctx context.Context, claimID uint) (*models.DamageClaim, error) {
	return s.store.FindByID(ctx, claimID)
}

// GetByTracking returns the claim a tracking ID belongs to.
func (s *ClaimService) GetByTracking(ctx context.Context, trackingID string) (*models.DamageClaim, error) {
	return s.store.FindByTrackingID(ctx, trackingID)
}

// Delete removes a claim outright (admin only; enforced by the caller).
func (s *ClaimService) Delete(ctx context.Context, claimID uint) error {
	rows, err := s.store.Delete(ctx, claimID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClaimNotFound
	}
	return nil
}

// NewTrackingID generates a claim tracking ID. The millisecond timestamp
// plus a random suffix keeps the collision probability negligible without
// any shared counter, so concurrent decisions on different claims never
// contend; the rare collision surfaces as a uniqueness violation and is
// retried by Decide.
func NewTrackingID() string {
	suffix := uuid.NewString()[:6]
	return fmt.Sprintf("DMG-%d-%s", time.Now().UnixMilli(), suffix)
}
