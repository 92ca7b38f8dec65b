package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"petfinder-backend/utils"

	"github.com/google/uuid"
)

// DiskStore keeps blobs on the local filesystem under root, keyed
// `pets/<uuid>-<sanitized name>`, and serves them under baseURL (wired to a
// static handler in main). It implements the same contract an object-store
// backed implementation would.
type DiskStore struct {
	root    string
	baseURL string
}

func NewDiskStore(root, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "pets"), 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *DiskStore) Put(ctx context.Context, r io.Reader, originalName, contentType string) (string, error) {
	key := fmt.Sprintf("pets/%s-%s", uuid.NewString(), utils.SanitizeFilename(originalName))

	dst, err := os.Create(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("store blob: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(dst.Name())
		return "", fmt.Errorf("store blob: %w", err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the blob the URL refers to. URLs outside this store and
// already-deleted keys are not errors.
func (s *DiskStore) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

func (s *DiskStore) keyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return "", false
	}
	key := strings.TrimPrefix(url, s.baseURL+"/")
	// Reject anything that could escape the root.
	if key == "" || path.Clean(key) != key || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}
