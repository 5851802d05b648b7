package repository

import (
	"errors"
	"fmt"
	"testing"

	"legaldesk/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareAndSwapQueryClaim(t *testing.T) {
	id := uuid.New()
	attorney := uuid.New()

	sql, args, err := compareAndSwapQuery(id,
		RequestState{Status: models.StatusSubmitted},
		RequestState{Status: models.StatusInReview, AttorneyID: &attorney},
	).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "UPDATE legal_requests SET status = $1, attorney_id = $2, updated_at = NOW()")
	assert.Contains(t, sql, "attorney_id IS NULL")
	assert.Contains(t, sql, "id = $")
	assert.Contains(t, sql, "status = $")
	assert.Len(t, args, 4)
	assert.Equal(t, "in_review", args[0])
	assert.Contains(t, args, "submitted")
}

func TestCompareAndSwapQueryBoundAttorney(t *testing.T) {
	id := uuid.New()
	attorney := uuid.New()

	sql, args, err := compareAndSwapQuery(id,
		RequestState{Status: models.StatusInReview, AttorneyID: &attorney},
		RequestState{Status: models.StatusClosed, AttorneyID: &attorney},
	).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "IS NULL")
	assert.Contains(t, sql, "attorney_id = $")
	assert.Len(t, args, 5)
}

func TestCompareAndSwapQueryUnassignedNext(t *testing.T) {
	sql, args, err := compareAndSwapQuery(uuid.New(),
		RequestState{Status: models.StatusDraft},
		RequestState{Status: models.StatusSubmitted},
	).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "attorney_id = $2")
	assert.Nil(t, args[1])
}

func TestListRequestsQuery(t *testing.T) {
	client := uuid.New()
	attorney := uuid.New()

	tests := []struct {
		name     string
		filter   RequestFilter
		contains []string
		args     int
	}{
		{
			name:     "all",
			filter:   RequestFilter{},
			contains: []string{"FROM legal_requests ORDER BY created_at DESC, id"},
		},
		{
			name:     "client",
			filter:   RequestFilter{ClientID: &client},
			contains: []string{"WHERE client_id = $1"},
			args:     1,
		},
		{
			name:     "mine",
			filter:   RequestFilter{AttorneyID: &attorney},
			contains: []string{"WHERE attorney_id = $1"},
			args:     1,
		},
		{
			name: "available",
			filter: RequestFilter{
				Unassigned: true,
				Statuses:   []models.RequestStatus{models.StatusSubmitted},
			},
			contains: []string{"attorney_id IS NULL", "status IN ($1)"},
			args:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := listRequestsQuery(tt.filter).ToSql()
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, sql, c)
			}
			assert.Len(t, args, tt.args)
		})
	}
}

func TestRequestFilterMatch(t *testing.T) {
	client := uuid.New()
	attorney := uuid.New()
	open := &models.LegalRequest{ClientID: client, Status: models.StatusSubmitted}
	claimed := &models.LegalRequest{ClientID: client, Status: models.StatusInReview, AttorneyID: &attorney}

	available := RequestFilter{Unassigned: true, Statuses: []models.RequestStatus{models.StatusSubmitted}}
	assert.True(t, available.Match(open))
	assert.False(t, available.Match(claimed))

	mine := RequestFilter{AttorneyID: &attorney}
	assert.False(t, mine.Match(open))
	assert.True(t, mine.Match(claimed))

	other := uuid.New()
	assert.False(t, RequestFilter{ClientID: &other}.Match(open))
	assert.True(t, RequestFilter{}.Match(claimed))
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))
	assert.ErrorIs(t, translateError(pgx.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translateError(fmt.Errorf("scan: %w", pgx.ErrNoRows)), ErrNotFound)

	dup := translateError(&pgconn.PgError{Code: "23505", ConstraintName: "legal_request_documents_path_key"})
	assert.ErrorIs(t, dup, ErrDuplicate)
	assert.Contains(t, dup.Error(), "legal_request_documents_path_key")

	other := errors.New("connection refused")
	assert.Equal(t, other, translateError(other))
}
