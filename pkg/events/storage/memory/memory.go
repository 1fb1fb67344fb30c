// Package memory provides an in-memory events.BlobStore for tests and the
// memory run mode.
package memory

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/eventboard/events-api/pkg/events"
)

// Backend is an in-memory implementation of the events.BlobStore interface.
type Backend struct {
	mu           sync.RWMutex
	objects      map[string][]byte
	contentTypes map[string]string
}

// New creates a new in-memory storage backend.
func New() *Backend {
	return &Backend{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (b *Backend) Upload(ctx context.Context, reader io.Reader, params events.UploadParams) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return &events.StorageError{Key: params.ObjectKey, Op: "upload", Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[params.ObjectKey] = data
	b.contentTypes[params.ObjectKey] = params.ContentType
	return nil
}

func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, events.ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, objectKey)
	delete(b.contentTypes, objectKey)
	return nil
}

// PresignGet returns a synthetic URL; the memory backend has no signer.
func (b *Backend) PresignGet(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return "memory://" + objectKey, nil
}

// ContentType reports the declared content type of a stored object, for tests.
func (b *Backend) ContentType(objectKey string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ct, ok := b.contentTypes[objectKey]
	return ct, ok
}

// Len reports the number of stored objects, for tests.
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.objects)
}
