package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"petfinder-backend/utils"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory BlobStore used by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	blobs   map[string][]byte
	baseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{
		blobs:   make(map[string][]byte),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *MemoryStore) Put(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("pets/%s-%s", uuid.NewString(), utils.SanitizeFilename(originalName))

	s.mu.Lock()
	s.blobs[key] = b
	s.mu.Unlock()

	return s.baseURL + "/" + key, nil
}

func (s *MemoryStore) Delete(ctx context.Context, url string) error {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	s.mu.Lock()
	delete(s.blobs, key)
	s.mu.Unlock()
	return nil
}

// Get returns the stored bytes for a URL, for test assertions.
func (s *MemoryStore) Get(url string) ([]byte, bool) {
	key := strings.TrimPrefix(url, s.baseURL+"/")
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[key]
	return b, ok
}

// Len reports how many blobs are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
