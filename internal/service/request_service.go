package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"legaldesk/internal/dto"
	"legaldesk/internal/models"
	"legaldesk/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RequestService struct {
	requests  RequestRepository
	documents DocumentRepository
	timeout   time.Duration
	logger    *zap.Logger
}

func NewRequestService(requests RequestRepository, documents DocumentRepository, timeout time.Duration, logger *zap.Logger) *RequestService {
	return &RequestService{
		requests:  requests,
		documents: documents,
		timeout:   timeout,
		logger:    logger,
	}
}

// RequestListing is the caller-scoped view of the request table. Available
// and Mine are only filled for staff.
type RequestListing struct {
	Requests  []*models.LegalRequest
	Available []*models.LegalRequest
	Mine      []*models.LegalRequest
}

// Create inserts a new draft owned by the caller.
func (s *RequestService) Create(ctx context.Context, caller Caller, req *dto.CreateLegalRequest) (*models.LegalRequest, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	if caller.Role == models.RoleAttorney {
		return nil, ErrForbidden
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.CaseType = strings.TrimSpace(req.CaseType)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	caseType := models.CaseType(req.CaseType)
	if caseType == "" {
		caseType = models.CaseTypeOther
	}

	now := time.Now().UTC()
	r := &models.LegalRequest{
		ID:          uuid.New(),
		ClientID:    caller.ID,
		CaseType:    caseType,
		Status:      models.StatusDraft,
		FullName:    sanitizeUTF8(req.FullName),
		Phone:       optional(req.Phone),
		Email:       optional(req.Email),
		Description: optional(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requests.Create(ctx, r); err != nil {
		return nil, storeError("create request", err)
	}

	s.logger.Info("Request created",
		zap.String("request_id", r.ID.String()),
		zap.String("client_id", caller.ID.String()),
		zap.String("case_type", string(r.CaseType)),
	)
	return r, nil
}

// Get returns the request if the caller may see it, ErrNotFound otherwise.
func (s *RequestService) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.LegalRequest, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get request", err)
	}
	if !caller.canView(r) {
		return nil, ErrNotFound
	}
	return r, nil
}

// GetDetail loads the request and its documents in parallel.
func (s *RequestService) GetDetail(ctx context.Context, caller Caller, id uuid.UUID) (*models.LegalRequest, []*models.RequestDocument, error) {
	if err := caller.authenticated(); err != nil {
		return nil, nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var (
		r    *models.LegalRequest
		docs []*models.RequestDocument
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		r, err = s.requests.GetByID(gctx, id)
		return storeError("get request", err)
	})
	g.Go(func() error {
		var err error
		docs, err = s.documents.ListByRequestID(gctx, id)
		return storeError("list documents", err)
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if !caller.canView(r) {
		return nil, nil, ErrNotFound
	}
	return r, docs, nil
}

// Submit moves a draft to submitted. Submitting a submitted request is a no-op.
func (s *RequestService) Submit(ctx context.Context, caller Caller, id uuid.UUID) (*models.LegalRequest, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get request", err)
	}
	if !caller.admin() && r.ClientID != caller.ID {
		return nil, caller.denied(r)
	}

	switch r.Status {
	case models.StatusSubmitted:
		return r, nil
	case models.StatusDraft:
	default:
		return nil, ErrInvalidTransition
	}

	swapped, err := s.requests.CompareAndSwap(ctx, id,
		repository.RequestState{Status: models.StatusDraft},
		repository.RequestState{Status: models.StatusSubmitted},
	)
	if err != nil {
		return nil, storeError("submit request", err)
	}
	if !swapped {
		// somebody else moved the row first
		current, err := s.requests.GetByID(ctx, id)
		if err != nil {
			return nil, storeError("get request", err)
		}
		if current.Status == models.StatusSubmitted {
			return current, nil
		}
		return nil, ErrInvalidTransition
	}

	r.Status = models.StatusSubmitted
	r.UpdatedAt = time.Now().UTC()
	s.logger.Info("Request submitted", zap.String("request_id", id.String()))
	return r, nil
}

// Close ends the review of a claimed request. Only the bound attorney or an
// admin may close it.
func (s *RequestService) Close(ctx context.Context, caller Caller, id uuid.UUID) (*models.LegalRequest, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get request", err)
	}
	if !caller.admin() && !r.AssignedTo(caller.ID) {
		return nil, caller.denied(r)
	}
	if r.Status != models.StatusInReview {
		return nil, ErrInvalidTransition
	}

	state := repository.RequestState{Status: models.StatusInReview, AttorneyID: r.AttorneyID}
	next := repository.RequestState{Status: models.StatusClosed, AttorneyID: r.AttorneyID}
	swapped, err := s.requests.CompareAndSwap(ctx, id, state, next)
	if err != nil {
		return nil, storeError("close request", err)
	}
	if !swapped {
		return nil, ErrInvalidTransition
	}

	r.Status = models.StatusClosed
	r.UpdatedAt = time.Now().UTC()
	s.logger.Info("Request closed",
		zap.String("request_id", id.String()),
		zap.String("closed_by", caller.ID.String()),
	)
	return r, nil
}

// ListForCaller returns the requests the caller works with, newest first.
func (s *RequestService) ListForCaller(ctx context.Context, caller Caller) (*RequestListing, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if caller.Role == models.RoleClient {
		own, err := s.requests.List(ctx, repository.RequestFilter{ClientID: &caller.ID})
		if err != nil {
			return nil, storeError("list requests", err)
		}
		return &RequestListing{Requests: own}, nil
	}

	listing := &RequestListing{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listing.Available, err = s.requests.List(gctx, repository.RequestFilter{
			Unassigned: true,
			Statuses:   []models.RequestStatus{models.StatusSubmitted},
		})
		return storeError("list available requests", err)
	})
	g.Go(func() error {
		var err error
		listing.Mine, err = s.requests.List(gctx, repository.RequestFilter{AttorneyID: &caller.ID})
		return storeError("list assigned requests", err)
	})
	if caller.admin() {
		g.Go(func() error {
			var err error
			listing.Requests, err = s.requests.List(gctx, repository.RequestFilter{})
			return storeError("list requests", err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !caller.admin() {
		listing.Requests = newestFirst(listing.Available, listing.Mine)
	}
	return listing, nil
}

// newestFirst merges disjoint listings into one ordered by creation time.
func newestFirst(lists ...[]*models.LegalRequest) []*models.LegalRequest {
	var out []*models.LegalRequest
	for _, l := range lists {
		out = append(out, l...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
