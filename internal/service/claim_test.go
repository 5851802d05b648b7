package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"legaldesk/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClaimConcurrent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.submitted(t, client())

	const contenders = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []uuid.UUID
		lost    int
	)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			caller := attorney()
			_, err := f.claimSvc.Claim(ctx, caller, r.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, caller.ID)
			case assert.ErrorIs(t, err, ErrAlreadyClaimed):
				lost++
			}
		}()
	}
	wg.Wait()

	require.Len(t, winners, 1)
	assert.Equal(t, contenders-1, lost)

	got, err := f.requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AttorneyID)
	assert.Equal(t, winners[0], *got.AttorneyID)
	assert.Equal(t, models.StatusInReview, got.Status)
}

func TestClaimFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	lawyer := attorney()

	draft := f.draft(t, owner)
	open := f.submitted(t, owner)
	_, err := f.claimSvc.Claim(ctx, lawyer, open.ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		caller  Caller
		id      uuid.UUID
		wantErr error
	}{
		{"hidden draft", attorney(), draft.ID, ErrNotFound},
		{"draft", admin(), draft.ID, ErrInvalidTransition},
		{"missing", attorney(), uuid.New(), ErrNotFound},
		{"client", owner, open.ID, ErrForbidden},
		{"anonymous", Caller{}, open.ID, ErrUnauthenticated},
		{"same attorney again", lawyer, open.ID, ErrAlreadyClaimed},
		{"other attorney", attorney(), open.ID, ErrAlreadyClaimed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.claimSvc.Claim(ctx, tt.caller, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	got, err := f.requests.GetByID(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, lawyer.ID, *got.AttorneyID)
}

func TestClaimScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, b, c := client(), attorney(), attorney()

	r1 := f.draft(t, a)
	doc, err := f.docSvc.Attach(ctx, a, r1.ID, []byte("%PDF-1.4\n%test"), "report.pdf", "")
	require.NoError(t, err)
	assert.Equal(t, "report.pdf", doc.Name)

	_, err = f.requestSvc.Submit(ctx, a, r1.ID)
	require.NoError(t, err)

	claimed, err := f.claimSvc.Claim(ctx, b, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInReview, claimed.Status)
	require.NotNil(t, claimed.AttorneyID)
	assert.Equal(t, b.ID, *claimed.AttorneyID)

	_, err = f.claimSvc.Claim(ctx, c, r1.ID)
	assert.ErrorIs(t, err, ErrAlreadyClaimed)

	got, err := f.requestSvc.Get(ctx, b, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, *got.AttorneyID)

	docs, err := f.docSvc.ListFor(ctx, b, r1.ID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.Path, docs[0].Path)
}

// flakyReads fails every GetByID while writes go through.
type flakyReads struct {
	RequestRepository
	getErr error
}

func (f *flakyReads) GetByID(context.Context, uuid.UUID) (*models.LegalRequest, error) {
	return nil, f.getErr
}

func TestClaimSucceedsWhenRereadFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.submitted(t, client())
	lawyer := attorney()

	svc := NewClaimService(&flakyReads{RequestRepository: f.requests, getErr: errors.New("connection reset")}, time.Second, zap.NewNop())
	claimed, err := svc.Claim(ctx, lawyer, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, claimed.ID)
	assert.Equal(t, models.StatusInReview, claimed.Status)
	require.NotNil(t, claimed.AttorneyID)
	assert.Equal(t, lawyer.ID, *claimed.AttorneyID)

	got, err := f.requests.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, lawyer.ID, *got.AttorneyID)
}
