package mocks

import (
	"context"
	"sync"

	"github.com/adhithyyaa/Dorm-Connect-fresh/internal/core/ports"
)

// UploadCall records one Upload invocation for assertions.
type UploadCall struct {
	Bucket      string
	Path        string
	ContentType string
	Size        int
}

// MockBlobStore implements ports.BlobStore, remembering uploaded objects.
type MockBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte // keyed by bucket + "/" + path

	UploadCalls []UploadCall

	UploadError error
}

var _ ports.BlobStore = (*MockBlobStore)(nil)

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{objects: make(map[string][]byte)}
}

func (m *MockBlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UploadCalls = append(m.UploadCalls, UploadCall{
		Bucket:      bucket,
		Path:        path,
		ContentType: contentType,
		Size:        len(data),
	})

	if m.UploadError != nil {
		return m.UploadError
	}
	m.objects[bucket+"/"+path] = append([]byte(nil), data...)
	return nil
}

func (m *MockBlobStore) PublicURL(bucket, path string) string {
	return "https://" + bucket + ".example.test/" + path
}

// Object returns the stored bytes, or nil if the upload never happened.
func (m *MockBlobStore) Object(bucket, path string) []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.objects[bucket+"/"+path]
}
