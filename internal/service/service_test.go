package service

import (
	"context"
	"testing"
	"time"

	"legaldesk/internal/dto"
	"legaldesk/internal/models"
	"legaldesk/internal/repository/memory"
	"legaldesk/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	requests  *memory.RequestRepository
	documents *memory.DocumentRepository
	store     *storage.LocalStore

	requestSvc *RequestService
	claimSvc   *ClaimService
	docSvc     *DocumentService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store, err := storage.NewLocalStore(t.TempDir(), "http://localhost:8080", []byte("test-secret"))
	require.NoError(t, err)

	f := &fixture{
		requests:  memory.NewRequestRepository(),
		documents: memory.NewDocumentRepository(),
		store:     store,
	}
	f.wire(f.documents, f.store, zap.NewNop())
	return f
}

// wire rebuilds the services, letting tests swap the ledger or the store.
func (f *fixture) wire(documents DocumentRepository, store storage.ObjectStore, logger *zap.Logger) {
	f.requestSvc = NewRequestService(f.requests, documents, time.Second, logger)
	f.claimSvc = NewClaimService(f.requests, time.Second, logger)
	f.docSvc = NewDocumentService(f.requests, documents, store, time.Hour, time.Second, logger)
}

func client() Caller   { return Caller{ID: uuid.New(), Role: models.RoleClient} }
func attorney() Caller { return Caller{ID: uuid.New(), Role: models.RoleAttorney} }
func admin() Caller    { return Caller{ID: uuid.New(), Role: models.RoleAdmin} }

func (f *fixture) draft(t *testing.T, owner Caller) *models.LegalRequest {
	t.Helper()
	r, err := f.requestSvc.Create(context.Background(), owner, &dto.CreateLegalRequest{
		CaseType: "immigration",
		FullName: "Ana Lopez",
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) submitted(t *testing.T, owner Caller) *models.LegalRequest {
	t.Helper()
	r := f.draft(t, owner)
	r, err := f.requestSvc.Submit(context.Background(), owner, r.ID)
	require.NoError(t, err)
	return r
}
