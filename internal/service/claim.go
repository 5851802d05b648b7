package service

import (
	"context"
	"time"

	"legaldesk/internal/models"
	"legaldesk/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ClaimService struct {
	requests RequestRepository
	timeout  time.Duration
	logger   *zap.Logger
}

func NewClaimService(requests RequestRepository, timeout time.Duration, logger *zap.Logger) *ClaimService {
	return &ClaimService{
		requests: requests,
		timeout:  timeout,
		logger:   logger,
	}
}

// Claim binds the caller to an unassigned submitted request and moves it to
// in_review. The bind is a single conditional write, so of any number of
// concurrent claims exactly one succeeds and the rest see ErrAlreadyClaimed.
func (s *ClaimService) Claim(ctx context.Context, caller Caller, requestID uuid.UUID) (*models.LegalRequest, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	if !caller.Role.Staff() {
		return nil, ErrForbidden
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	attorneyID := caller.ID
	swapped, err := s.requests.CompareAndSwap(ctx, requestID,
		repository.RequestState{Status: models.StatusSubmitted},
		repository.RequestState{Status: models.StatusInReview, AttorneyID: &attorneyID},
	)
	if err != nil {
		return nil, storeError("claim request", err)
	}

	if swapped {
		s.logger.Info("Request claimed",
			zap.String("request_id", requestID.String()),
			zap.String("attorney_id", attorneyID.String()),
		)
		r, err := s.requests.GetByID(ctx, requestID)
		if err != nil {
			// The bind is already durable; report the state it wrote.
			s.logger.Warn("Re-read after claim failed",
				zap.String("request_id", requestID.String()),
				zap.Error(err),
			)
			return &models.LegalRequest{ID: requestID, Status: models.StatusInReview, AttorneyID: &attorneyID}, nil
		}
		return r, nil
	}

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, storeError("get request", err)
	}
	if r.AttorneyID != nil {
		s.logger.Debug("Claim lost",
			zap.String("request_id", requestID.String()),
			zap.String("attorney_id", attorneyID.String()),
		)
		return nil, ErrAlreadyClaimed
	}
	if !caller.canView(r) {
		return nil, ErrNotFound
	}
	return nil, ErrInvalidTransition
}
