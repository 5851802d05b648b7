// Package memory holds map-backed repositories with the same contracts as the
// Postgres ones. They back REPOSITORY_DRIVER=memory and the tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"legaldesk/internal/models"
	"legaldesk/internal/repository"

	"github.com/google/uuid"
)

type RequestRepository struct {
	mu       sync.Mutex
	requests map[uuid.UUID]models.LegalRequest
}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{requests: make(map[uuid.UUID]models.LegalRequest)}
}

func (r *RequestRepository) Create(_ context.Context, req *models.LegalRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[req.ID]; ok {
		return repository.ErrDuplicate
	}
	r.requests[req.ID] = cloneRequest(*req)
	return nil
}

func (r *RequestRepository) GetByID(_ context.Context, id uuid.UUID) (*models.LegalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneRequest(req)
	return &out, nil
}

func (r *RequestRepository) List(_ context.Context, filter repository.RequestFilter) ([]*models.LegalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.LegalRequest
	for _, req := range r.requests {
		if filter.Match(&req) {
			c := cloneRequest(req)
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

// CompareAndSwap holds the lock across the compare and the write. Like the
// Postgres check constraint it refuses in_review or closed without an attorney.
func (r *RequestRepository) CompareAndSwap(_ context.Context, id uuid.UUID, expected, next repository.RequestState) (bool, error) {
	if next.Status.Assigned() && next.AttorneyID == nil {
		return false, fmt.Errorf("status %s requires an attorney", next.Status)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok || req.Status != expected.Status || !sameAttorney(req.AttorneyID, expected.AttorneyID) {
		return false, nil
	}
	req.Status = next.Status
	req.AttorneyID = copyID(next.AttorneyID)
	req.UpdatedAt = time.Now().UTC()
	r.requests[id] = req
	return true, nil
}

type DocumentRepository struct {
	mu   sync.Mutex
	docs map[uuid.UUID]models.RequestDocument
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{docs: make(map[uuid.UUID]models.RequestDocument)}
}

func (r *DocumentRepository) Create(_ context.Context, doc *models.RequestDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[doc.ID]; ok {
		return repository.ErrDuplicate
	}
	for _, d := range r.docs {
		if d.Path == doc.Path {
			return repository.ErrDuplicate
		}
	}
	r.docs[doc.ID] = cloneDocument(*doc)
	return nil
}

func (r *DocumentRepository) GetByID(_ context.Context, id uuid.UUID) (*models.RequestDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneDocument(doc)
	return &out, nil
}

func (r *DocumentRepository) GetByPath(_ context.Context, path string) (*models.RequestDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, doc := range r.docs {
		if doc.Path == path {
			d := cloneDocument(doc)
			return &d, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *DocumentRepository) ListByRequestID(_ context.Context, requestID uuid.UUID) ([]*models.RequestDocument, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*models.RequestDocument
	for _, doc := range r.docs {
		if doc.LegalRequestID == requestID {
			d := cloneDocument(doc)
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].Path < out[j].Path
	})
	return out, nil
}

func (r *DocumentRepository) PathsWithPrefix(_ context.Context, prefix string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var paths []string
	for _, doc := range r.docs {
		if strings.HasPrefix(doc.Path, prefix) {
			paths = append(paths, doc.Path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (r *DocumentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

type ProfileRepository struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[uuid.UUID]models.Profile)}
}

func (r *ProfileRepository) Create(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.profiles {
		if existing.ID == p.ID || strings.EqualFold(existing.Email, p.Email) {
			return repository.ErrDuplicate
		}
	}
	r.profiles[p.ID] = *p
	return nil
}

func (r *ProfileRepository) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if strings.EqualFold(p.Email, email) {
			out := p
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ProfileRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func cloneRequest(req models.LegalRequest) models.LegalRequest {
	req.AttorneyID = copyID(req.AttorneyID)
	return req
}

func cloneDocument(doc models.RequestDocument) models.RequestDocument {
	if doc.MimeType != nil {
		m := *doc.MimeType
		doc.MimeType = &m
	}
	if doc.Size != nil {
		n := *doc.Size
		doc.Size = &n
	}
	return doc
}

func copyID(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}

func sameAttorney(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
