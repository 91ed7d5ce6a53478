// Package storage abstracts the blob store uploaded images live in. The API
// only ever sees opaque paths; everything else (directory layout, naming) is
// an implementation detail of the concrete store.
package storage

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// BlobStore stores uploaded files under a namespace and addresses them by
// the returned path
type BlobStore interface {
	Store(r io.Reader, filename, namespace string) (string, error)
	Exists(path string) bool
	Delete(path string) error
}

// DiskStore is a BlobStore backed by a local directory tree
type DiskStore struct {
	baseDir string
}

// NewDiskStore creates a DiskStore rooted at baseDir
func NewDiskStore(baseDir string) (*DiskStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob store root: %w", err)
	}
	return &DiskStore{baseDir: baseDir}, nil
}

// NewDiskStoreFromEnv creates a DiskStore rooted at BLOB_STORE_DIR
func NewDiskStoreFromEnv() (*DiskStore, error) {
	dir := os.Getenv("BLOB_STORE_DIR")
	if dir == "" {
		dir = "storage/public"
	}
	return NewDiskStore(dir)
}

// Store writes the blob under namespace with a uuid-based name derived from
// the original extension and returns the store-relative path
func (s *DiskStore) Store(r io.Reader, filename, namespace string) (string, error) {
	dir := filepath.Join(s.baseDir, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create namespace dir %s: %w", namespace, err)
	}

	name := uuid.New().String() + filepath.Ext(filename)
	path := filepath.Join(namespace, name)

	f, err := os.Create(filepath.Join(s.baseDir, path))
	if err != nil {
		return "", fmt.Errorf("failed to create blob %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write blob %s: %w", path, err)
	}

	slog.Info("Stored blob", "path", path, "namespace", namespace)
	return path, nil
}

// BaseDir is the directory the store is rooted at
func (s *DiskStore) BaseDir() string {
	return s.baseDir
}

// Exists reports whether path resolves to a stored blob
func (s *DiskStore) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.baseDir, path))
	return err == nil
}

// Delete removes the blob at path. A missing blob is a no-op.
func (s *DiskStore) Delete(path string) error {
	err := os.Remove(filepath.Join(s.baseDir, path))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete blob %s: %w", path, err)
	}
	return nil
}
