package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	LocalPrefix = "loc:"
	S3Prefix    = "s3://"
)

var ErrUnknownLocator = errors.New("unrecognised storage locator")

// FileStore persists uploads and hands back a locator that Open understands.
// Save stores under the base name of key; callers make keys unique.
type FileStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Open(ctx context.Context, locator string) (io.ReadCloser, error)
}

// LocalStore keeps uploads under a root directory and returns "loc:<path>" locators.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	path := filepath.Join(s.root, filepath.Base(filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return LocalPrefix + path, nil
}

func (s *LocalStore) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	if !strings.HasPrefix(locator, LocalPrefix) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocator, locator)
	}
	return os.Open(strings.TrimPrefix(locator, LocalPrefix))
}

// Router opens a locator with whichever store owns its scheme and saves through the primary store.
type Router struct {
	primary FileStore
	local   *LocalStore
	s3      *S3Store
}

func NewRouter(local *LocalStore, s3 *S3Store) *Router {
	r := &Router{local: local, s3: s3, primary: local}
	if s3 != nil {
		r.primary = s3
	}
	return r
}

func (r *Router) Save(ctx context.Context, filename string, src io.Reader) (string, error) {
	return r.primary.Save(ctx, filename, src)
}

func (r *Router) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(locator, LocalPrefix) && r.local != nil:
		return r.local.Open(ctx, locator)
	case strings.HasPrefix(locator, S3Prefix) && r.s3 != nil:
		return r.s3.Open(ctx, locator)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocator, locator)
	}
}
