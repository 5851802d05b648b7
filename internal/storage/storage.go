// Package storage provides the blob side of the document ledger: a key/value
// object store addressed by slash-separated paths.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrObjectExists is returned by Put when the key is already taken.
	ErrObjectExists = errors.New("object already exists")
	// ErrObjectNotFound is returned when a key has no object behind it.
	ErrObjectNotFound = errors.New("object not found")
)

type ObjectInfo struct {
	Path         string
	Size         int64
	LastModified time.Time
}

// ObjectStore is implemented by LocalStore and S3Store.
type ObjectStore interface {
	// Put writes body at path and never overwrites an existing object.
	Put(ctx context.Context, path string, body []byte, contentType string) error
	// Delete removes the objects; missing paths are not an error.
	Delete(ctx context.Context, paths ...string) error
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// SignedURL returns a URL granting read access to path for ttl.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
