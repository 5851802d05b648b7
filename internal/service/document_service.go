package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"legaldesk/internal/models"
	"legaldesk/internal/storage"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultSignedURLTTL is how long a resolved document URL stays valid.
const DefaultSignedURLTTL = time.Hour

type DocumentService struct {
	requests     RequestRepository
	documents    DocumentRepository
	store        storage.ObjectStore
	signedURLTTL time.Duration
	timeout      time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewDocumentService(
	requests RequestRepository,
	documents DocumentRepository,
	store storage.ObjectStore,
	signedURLTTL time.Duration,
	timeout time.Duration,
	logger *zap.Logger,
) *DocumentService {
	if signedURLTTL <= 0 {
		signedURLTTL = DefaultSignedURLTTL
	}
	return &DocumentService{
		requests:     requests,
		documents:    documents,
		store:        store,
		signedURLTTL: signedURLTTL,
		timeout:      timeout,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger,
	}
}

// SignedURL is a temporary read link to a stored document.
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// DocumentKey builds the object path <requestId>/<uploaderId>/<unixMillis>-<name>.
func DocumentKey(requestID, uploaderID uuid.UUID, at time.Time, name string) string {
	return fmt.Sprintf("%s/%s/%d-%s", requestID, uploaderID, at.UnixMilli(), SanitizeFileName(name))
}

// Attach stores body as a new object and records it in the ledger. If the
// ledger insert fails the object is removed again; when that removal fails
// too the object is logged as orphaned and the insert error is returned.
func (s *DocumentService) Attach(ctx context.Context, caller Caller, requestID uuid.UUID, body []byte, fileName, mimeType string) (*models.RequestDocument, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, &ValidationError{Fields: map[string]string{"file": "required"}}
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, storeError("get request", err)
	}
	if !caller.participant(r) {
		return nil, caller.denied(r)
	}
	if r.Status == models.StatusClosed {
		return nil, fmt.Errorf("%w: request is closed", ErrInvalidTransition)
	}

	now := s.now()
	name := SanitizeFileName(fileName)
	key := DocumentKey(requestID, caller.ID, now, name)

	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mimetype.Detect(body).String()
	}

	if err := s.store.Put(ctx, key, body, mimeType); err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			return nil, fmt.Errorf("%w: object %s already exists", ErrConflict, key)
		}
		return nil, &StoreError{Op: "put object", Err: err}
	}

	size := int64(len(body))
	doc := &models.RequestDocument{
		ID:             uuid.New(),
		LegalRequestID: requestID,
		UploadedBy:     caller.ID,
		Path:           key,
		Name:           name,
		MimeType:       &mimeType,
		Size:           &size,
		CreatedAt:      now,
	}

	if err := s.documents.Create(ctx, doc); err != nil {
		s.removeObject(ctx, key)
		return nil, storeError("insert document", err)
	}

	s.logger.Info("Document attached",
		zap.String("request_id", requestID.String()),
		zap.String("document_id", doc.ID.String()),
		zap.String("path", key),
		zap.Int64("size", size),
	)
	return doc, nil
}

// removeObject runs even if ctx was canceled, since the object would leak otherwise.
func (s *DocumentService) removeObject(ctx context.Context, key string) {
	ctx, cancel := withTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.store.Delete(ctx, key); err != nil {
		s.logger.Warn("orphaned object",
			zap.String("path", key),
			zap.Error(err),
		)
	}
}

// Detach deletes the object and then its ledger row. Only the uploader or an
// admin may detach. A failed object delete keeps the row.
func (s *DocumentService) Detach(ctx context.Context, caller Caller, documentID uuid.UUID) error {
	if err := caller.authenticated(); err != nil {
		return err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.documents.GetByID(ctx, documentID)
	if err != nil {
		return storeError("get document", err)
	}
	if doc.UploadedBy != caller.ID && !caller.admin() {
		r, err := s.requests.GetByID(ctx, doc.LegalRequestID)
		if err != nil {
			return storeError("get request", err)
		}
		return caller.denied(r)
	}

	if err := s.store.Delete(ctx, doc.Path); err != nil {
		return &StoreError{Op: "delete object", Err: err}
	}
	if err := s.documents.Delete(ctx, doc.ID); err != nil {
		return storeError("delete document", err)
	}

	s.logger.Info("Document detached",
		zap.String("document_id", doc.ID.String()),
		zap.String("path", doc.Path),
	)
	return nil
}

// ListFor returns the request's documents, oldest first.
func (s *DocumentService) ListFor(ctx context.Context, caller Caller, requestID uuid.UUID) ([]*models.RequestDocument, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, storeError("get request", err)
	}
	if !caller.canView(r) {
		return nil, ErrNotFound
	}

	docs, err := s.documents.ListByRequestID(ctx, requestID)
	if err != nil {
		return nil, storeError("list documents", err)
	}
	return docs, nil
}

// ResolveURL signs a temporary read URL for a path recorded in the ledger.
func (s *DocumentService) ResolveURL(ctx context.Context, caller Caller, path string) (*SignedURL, error) {
	if err := caller.authenticated(); err != nil {
		return nil, err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, &ValidationError{Fields: map[string]string{"path": "required"}}
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.documents.GetByPath(ctx, path)
	if err != nil {
		return nil, storeError("get document", err)
	}
	r, err := s.requests.GetByID(ctx, doc.LegalRequestID)
	if err != nil {
		return nil, storeError("get request", err)
	}
	if !caller.canView(r) {
		return nil, ErrNotFound
	}

	expiresAt := s.now().Add(s.signedURLTTL)
	url, err := s.store.SignedURL(ctx, doc.Path, s.signedURLTTL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "sign url", Err: err}
	}
	return &SignedURL{URL: url, ExpiresAt: expiresAt}, nil
}

// FindOrphans lists objects under prefix that have no ledger row and are
// older than minAge. Younger objects may belong to an attach in progress.
func (s *DocumentService) FindOrphans(ctx context.Context, prefix string, minAge time.Duration) ([]storage.ObjectInfo, error) {
	var (
		objects []storage.ObjectInfo
		known   []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		objects, err = s.store.List(gctx, prefix)
		if err != nil {
			return &StoreError{Op: "list objects", Err: err}
		}
		return nil
	})
	g.Go(func() error {
		var err error
		known, err = s.documents.PathsWithPrefix(gctx, prefix)
		return storeError("list document paths", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recorded := make(map[string]struct{}, len(known))
	for _, p := range known {
		recorded[p] = struct{}{}
	}

	cutoff := s.now().Add(-minAge)
	var orphans []storage.ObjectInfo
	for _, obj := range objects {
		if _, ok := recorded[obj.Path]; ok {
			continue
		}
		if obj.LastModified.After(cutoff) {
			continue
		}
		orphans = append(orphans, obj)
	}
	return orphans, nil
}

// RemoveOrphans deletes the given objects from the store.
func (s *DocumentService) RemoveOrphans(ctx context.Context, orphans []storage.ObjectInfo) error {
	if len(orphans) == 0 {
		return nil
	}
	paths := make([]string, len(orphans))
	for i, o := range orphans {
		paths[i] = o.Path
	}
	if err := s.store.Delete(ctx, paths...); err != nil {
		return &StoreError{Op: "delete objects", Err: err}
	}
	s.logger.Info("Orphaned objects removed", zap.Int("count", len(paths)))
	return nil
}
