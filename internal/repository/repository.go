package repository

import (
	"errors"
	"fmt"

	"legaldesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

const uniqueViolation = "23505"

// RequestState is the pair of columns every lifecycle transition reads and
// writes together. A nil AttorneyID means "no attorney bound".
type RequestState struct {
	Status     models.RequestStatus
	AttorneyID *uuid.UUID
}

// RequestFilter narrows a request listing. Zero value lists everything.
type RequestFilter struct {
	ClientID   *uuid.UUID
	AttorneyID *uuid.UUID
	Unassigned bool
	Statuses   []models.RequestStatus
}

// Match applies the filter in memory; the SQL repositories translate it to WHERE clauses.
func (f RequestFilter) Match(r *models.LegalRequest) bool {
	if f.ClientID != nil && r.ClientID != *f.ClientID {
		return false
	}
	if f.AttorneyID != nil && !r.AssignedTo(*f.AttorneyID) {
		return false
	}
	if f.Unassigned && r.AttorneyID != nil {
		return false
	}
	if len(f.Statuses) > 0 {
		for _, s := range f.Statuses {
			if r.Status == s {
				return true
			}
		}
		return false
	}
	return true
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
