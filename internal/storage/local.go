package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const fileTokenAudience = "files"

// LocalStore keeps objects under a directory and signs download URLs with
// short-lived HS256 tokens that the /files route verifies.
type LocalStore struct {
	basePath string
	baseURL  string
	secret   []byte
}

func NewLocalStore(basePath, baseURL string, secret []byte) (*LocalStore, error) {
	if basePath == "" {
		basePath = "./uploads"
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &LocalStore{
		basePath: abs,
		baseURL:  strings.TrimRight(baseURL, "/"),
		secret:   secret,
	}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, body []byte, _ string) error {
	fullPath, err := s.fullPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := file.Write(body); err != nil {
		file.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}
	return file.Close()
}

func (s *LocalStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		fullPath, err := s.fullPath(key)
		if err != nil {
			return err
		}
		if err := os.Remove(fullPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete file: %w", err)
		}
	}
	return nil
}

func (s *LocalStore) List(_ context.Context, prefix string) ([]ObjectInfo, error) {
	var out []ObjectInfo
	err := filepath.WalkDir(s.basePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.basePath, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		out = append(out, ObjectInfo{Path: key, Size: info.Size(), LastModified: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return out, nil
}

func (s *LocalStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	fullPath, err := s.fullPath(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrObjectNotFound
		}
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   key,
		Audience:  jwt.ClaimStrings{fileTokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/files?token=" + url.QueryEscape(signed), nil
}

// Open verifies a token minted by SignedURL and returns the file it grants.
func (s *LocalStore) Open(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(fileTokenAudience),
		jwt.WithExpirationRequired(),
	)
	var claims jwt.RegisteredClaims
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return "", fmt.Errorf("invalid file token: %w", err)
	}

	fullPath, err := s.fullPath(claims.Subject)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(fullPath); err != nil {
		return "", ErrObjectNotFound
	}
	return fullPath, nil
}

// fullPath maps a key to a file under basePath, rejecting keys that escape it.
func (s *LocalStore) fullPath(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+key {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.basePath, filepath.FromSlash(clean)), nil
}
