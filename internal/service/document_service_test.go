package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"legaldesk/internal/models"
	"legaldesk/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type failingDocuments struct {
	DocumentRepository
	createErr error
}

func (f *failingDocuments) Create(context.Context, *models.RequestDocument) error {
	return f.createErr
}

type failingStore struct {
	storage.ObjectStore
	deleteErr error
}

func (f *failingStore) Delete(context.Context, ...string) error {
	return f.deleteErr
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"report.pdf":            "report.pdf",
		"my report (1).pdf":     "my_report__1_.pdf",
		"../../etc/passwd":      ".._.._etc_passwd",
		"":                      "document",
		"   ":                   "document",
		"résumé.docx":           "r_sum_.docx",
		"scan_2024-01-02.PNG":   "scan_2024-01-02.PNG",
		"a/b\\c":                "a_b_c",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeFileName(in), "input %q", in)
	}
}

func TestAttachAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	r := f.draft(t, owner)

	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.docSvc.now = fixedClock(start)

	first, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("%PDF-1.4\n%fixture"), "report.pdf", "")
	require.NoError(t, err)
	second, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("plain notes"), "my notes.txt", "text/plain")
	require.NoError(t, err)

	wantKey := fmt.Sprintf("%s/%s/%d-report.pdf", r.ID, owner.ID, start.Add(time.Millisecond).UnixMilli())
	assert.Equal(t, wantKey, first.Path)
	assert.Equal(t, owner.ID, first.UploadedBy)
	require.NotNil(t, first.MimeType)
	assert.Equal(t, "application/pdf", *first.MimeType)
	require.NotNil(t, first.Size)
	assert.EqualValues(t, len("%PDF-1.4\n%fixture"), *first.Size)

	assert.Equal(t, "my_notes.txt", second.Name)
	assert.Equal(t, "text/plain", *second.MimeType)

	docs, err := f.docSvc.ListFor(ctx, owner, r.ID)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, first.ID, docs[0].ID)
	assert.Equal(t, second.ID, docs[1].ID)

	objects, err := f.store.List(ctx, r.ID.String()+"/")
	require.NoError(t, err)
	assert.Len(t, objects, 2)
}

func TestAttachPermissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	r := f.submitted(t, owner)
	body := []byte("x")

	_, err := f.docSvc.Attach(ctx, client(), r.ID, body, "a.txt", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.docSvc.Attach(ctx, attorney(), r.ID, body, "a.txt", "")
	assert.ErrorIs(t, err, ErrForbidden, "claimable request is visible to attorneys but they are not participants")

	_, err = f.docSvc.Attach(ctx, owner, r.ID, nil, "a.txt", "")
	assert.ErrorIs(t, err, ErrValidation)

	lawyer := attorney()
	_, err = f.claimSvc.Claim(ctx, lawyer, r.ID)
	require.NoError(t, err)
	_, err = f.docSvc.Attach(ctx, lawyer, r.ID, body, "memo.txt", "")
	require.NoError(t, err)

	_, err = f.requestSvc.Close(ctx, lawyer, r.ID)
	require.NoError(t, err)
	_, err = f.docSvc.Attach(ctx, owner, r.ID, body, "late.txt", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAttachConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	r := f.draft(t, owner)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.docSvc.now = func() time.Time { return at }

	_, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("one"), "same.txt", "")
	require.NoError(t, err)

	_, err = f.docSvc.Attach(ctx, owner, r.ID, []byte("two"), "same.txt", "")
	assert.ErrorIs(t, err, ErrConflict)

	docs, err := f.docSvc.ListFor(ctx, owner, r.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestAttachCompensation(t *testing.T) {
	insertErr := errors.New("connection reset by peer")

	t.Run("object removed when the ledger insert fails", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		owner := client()
		r := f.draft(t, owner)

		f.wire(&failingDocuments{DocumentRepository: f.documents, createErr: insertErr}, f.store, zap.NewNop())

		_, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("data"), "a.txt", "")
		var se *StoreError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, insertErr.Error(), se.Error())

		objects, err := f.store.List(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, objects)
	})

	t.Run("orphan logged when cleanup fails too", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()
		owner := client()
		r := f.draft(t, owner)

		core, logs := observer.New(zapcore.WarnLevel)
		store := &failingStore{ObjectStore: f.store, deleteErr: errors.New("access denied")}
		f.wire(&failingDocuments{DocumentRepository: f.documents, createErr: insertErr}, store, zap.New(core))

		_, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("data"), "a.txt", "")
		assert.ErrorIs(t, err, insertErr)

		entries := logs.FilterMessage("orphaned object").All()
		require.Len(t, entries, 1)
		path, ok := entries[0].ContextMap()["path"].(string)
		require.True(t, ok)
		assert.Contains(t, path, r.ID.String()+"/"+owner.ID.String()+"/")

		objects, err := f.store.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.Equal(t, path, objects[0].Path)
	})
}

// cancelingDocuments cancels the caller's context mid-insert.
type cancelingDocuments struct {
	DocumentRepository
	cancel context.CancelFunc
}

func (c *cancelingDocuments) Create(ctx context.Context, _ *models.RequestDocument) error {
	c.cancel()
	<-ctx.Done()
	return ctx.Err()
}

// recordingStore records the context state seen by Delete.
type recordingStore struct {
	storage.ObjectStore
	deleteCtxErr error
	deletes      int
}

func (r *recordingStore) Delete(ctx context.Context, keys ...string) error {
	r.deletes++
	r.deleteCtxErr = ctx.Err()
	return r.ObjectStore.Delete(ctx, keys...)
}

func TestAttachCompensationSurvivesCancel(t *testing.T) {
	f := newFixture(t)
	owner := client()
	r := f.draft(t, owner)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := &recordingStore{ObjectStore: f.store}
	f.wire(&cancelingDocuments{DocumentRepository: f.documents, cancel: cancel}, store, zap.NewNop())

	_, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("data"), "a.txt", "")
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1, store.deletes)
	assert.NoError(t, store.deleteCtxErr)

	objects, err := f.store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, objects)
}

func TestDetach(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	r := f.submitted(t, owner)
	lawyer := attorney()
	_, err := f.claimSvc.Claim(ctx, lawyer, r.ID)
	require.NoError(t, err)

	doc, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("data"), "a.txt", "")
	require.NoError(t, err)

	err = f.docSvc.Detach(ctx, lawyer, doc.ID)
	assert.ErrorIs(t, err, ErrForbidden, "participant but not uploader")

	err = f.docSvc.Detach(ctx, client(), doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.docSvc.Detach(ctx, owner, doc.ID))

	docs, err := f.docSvc.ListFor(ctx, owner, r.ID)
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = f.docSvc.ResolveURL(ctx, owner, doc.Path)
	assert.ErrorIs(t, err, ErrNotFound)

	err = f.docSvc.Detach(ctx, owner, doc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetachStoreFailureKeepsRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	r := f.draft(t, owner)

	doc, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("data"), "a.txt", "")
	require.NoError(t, err)

	f.wire(f.documents, &failingStore{ObjectStore: f.store, deleteErr: errors.New("service unavailable")}, zap.NewNop())

	err = f.docSvc.Detach(ctx, admin(), doc.ID)
	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "service unavailable", se.Error())

	docs, err := f.docSvc.ListFor(ctx, owner, r.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestResolveURL(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	r := f.draft(t, owner)

	doc, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("data"), "a.txt", "")
	require.NoError(t, err)

	signed, err := f.docSvc.ResolveURL(ctx, owner, doc.Path)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), signed.ExpiresAt, time.Minute)

	u, err := url.Parse(signed.URL)
	require.NoError(t, err)
	assert.Equal(t, "/files", u.Path)

	fullPath, err := f.store.Open(u.Query().Get("token"))
	require.NoError(t, err)
	assert.Contains(t, fullPath, "a.txt")

	t.Run("invisible request", func(t *testing.T) {
		_, err := f.docSvc.ResolveURL(ctx, client(), doc.Path)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown path", func(t *testing.T) {
		_, err := f.docSvc.ResolveURL(ctx, owner, r.ID.String()+"/nope")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := f.docSvc.ResolveURL(ctx, owner, " ")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestFindOrphans(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := client()
	r := f.draft(t, owner)

	doc, err := f.docSvc.Attach(ctx, owner, r.ID, []byte("kept"), "kept.txt", "")
	require.NoError(t, err)

	leaked := r.ID.String() + "/" + owner.ID.String() + "/1-leaked.txt"
	require.NoError(t, f.store.Put(ctx, leaked, []byte("leaked"), "text/plain"))

	f.docSvc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	orphans, err := f.docSvc.FindOrphans(ctx, r.ID.String()+"/", time.Hour)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, leaked, orphans[0].Path)

	f.docSvc.now = func() time.Time { return time.Now().UTC() }
	young, err := f.docSvc.FindOrphans(ctx, r.ID.String()+"/", time.Hour)
	require.NoError(t, err)
	assert.Empty(t, young, "objects newer than min age are skipped")

	require.NoError(t, f.docSvc.RemoveOrphans(ctx, orphans))
	objects, err := f.store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, doc.Path, objects[0].Path)
}
