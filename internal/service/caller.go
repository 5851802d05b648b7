package service

import (
	"context"
	"time"

	"legaldesk/internal/models"
	"legaldesk/internal/repository"

	"github.com/google/uuid"
)

// Caller is the authenticated identity every operation is performed on behalf of.
type Caller struct {
	ID   uuid.UUID
	Role models.Role
}

func (c Caller) authenticated() error {
	if c.ID == uuid.Nil || !c.Role.Valid() {
		return ErrUnauthenticated
	}
	return nil
}

func (c Caller) admin() bool { return c.Role == models.RoleAdmin }

// canView is the read policy for a request and everything attached to it.
func (c Caller) canView(r *models.LegalRequest) bool {
	switch {
	case c.admin(), r.ClientID == c.ID, r.AssignedTo(c.ID):
		return true
	case c.Role == models.RoleAttorney:
		return r.Claimable()
	}
	return false
}

// participant reports whether the caller works on the request: the owning
// client, the bound attorney, or an admin.
func (c Caller) participant(r *models.LegalRequest) bool {
	return c.admin() || r.ClientID == c.ID || r.AssignedTo(c.ID)
}

// denied picks the error for a caller who may not act on r: requests the
// caller cannot see are reported as missing.
func (c Caller) denied(r *models.LegalRequest) error {
	if c.canView(r) {
		return ErrForbidden
	}
	return ErrNotFound
}

type RequestRepository interface {
	Create(ctx context.Context, req *models.LegalRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.LegalRequest, error)
	List(ctx context.Context, filter repository.RequestFilter) ([]*models.LegalRequest, error)
	CompareAndSwap(ctx context.Context, id uuid.UUID, expected, next repository.RequestState) (bool, error)
}

type DocumentRepository interface {
	Create(ctx context.Context, doc *models.RequestDocument) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.RequestDocument, error)
	GetByPath(ctx context.Context, path string) (*models.RequestDocument, error)
	ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]*models.RequestDocument, error)
	PathsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProfileRepository interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// withTimeout bounds a store round trip; d <= 0 leaves ctx as is.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
