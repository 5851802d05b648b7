package storage

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), "http://files.test/", []byte("secret"))
	require.NoError(t, err)
	return s
}

func tokenOf(t *testing.T, signed string) string {
	t.Helper()
	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "files.test", u.Host)
	assert.Equal(t, "/files", u.Path)
	return u.Query().Get("token")
}

func TestLocalPutNeverOverwrites(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "r1/u1/1-a.txt", []byte("first"), "text/plain"))
	err := s.Put(ctx, "r1/u1/1-a.txt", []byte("second"), "text/plain")
	assert.ErrorIs(t, err, ErrObjectExists)

	full, err := s.fullPath("r1/u1/1-a.txt")
	require.NoError(t, err)
	data, err := os.ReadFile(full)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestLocalRejectsEscapingKeys(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	for _, key := range []string{"", "../x", "a/../../x", "/abs", "a//b", "a/./b"} {
		assert.Error(t, s.Put(ctx, key, []byte("x"), ""), "key %q", key)
	}
}

func TestLocalListAndDelete(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "r1/u1/1-a.txt", []byte("a"), ""))
	require.NoError(t, s.Put(ctx, "r1/u2/2-b.txt", []byte("bb"), ""))
	require.NoError(t, s.Put(ctx, "r2/u1/3-c.txt", []byte("ccc"), ""))

	objects, err := s.List(ctx, "r1/")
	require.NoError(t, err)
	require.Len(t, objects, 2)
	paths := []string{objects[0].Path, objects[1].Path}
	assert.ElementsMatch(t, []string{"r1/u1/1-a.txt", "r1/u2/2-b.txt"}, paths)

	require.NoError(t, s.Delete(ctx, "r1/u1/1-a.txt", "r1/missing.txt"))

	objects, err = s.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, objects, 2)
}

func TestLocalSignedURL(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "r1/u1/1-a.txt", []byte("a"), ""))

	t.Run("round trip", func(t *testing.T) {
		signed, err := s.SignedURL(ctx, "r1/u1/1-a.txt", time.Hour)
		require.NoError(t, err)

		full, err := s.Open(tokenOf(t, signed))
		require.NoError(t, err)
		want, _ := s.fullPath("r1/u1/1-a.txt")
		assert.Equal(t, want, full)
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := s.SignedURL(ctx, "r1/u1/nope.txt", time.Hour)
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		signed, err := s.SignedURL(ctx, "r1/u1/1-a.txt", -time.Minute)
		require.NoError(t, err)
		_, err = s.Open(tokenOf(t, signed))
		assert.Error(t, err)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other, err := NewLocalStore(t.TempDir(), "http://files.test", []byte("other"))
		require.NoError(t, err)
		require.NoError(t, other.Put(ctx, "r1/u1/1-a.txt", []byte("a"), ""))
		signed, err := other.SignedURL(ctx, "r1/u1/1-a.txt", time.Hour)
		require.NoError(t, err)

		_, err = s.Open(tokenOf(t, signed))
		assert.Error(t, err)
	})

	t.Run("object deleted after signing", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, "r1/u1/2-b.txt", []byte("b"), ""))
		signed, err := s.SignedURL(ctx, "r1/u1/2-b.txt", time.Hour)
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, "r1/u1/2-b.txt"))

		_, err = s.Open(tokenOf(t, signed))
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})
}
