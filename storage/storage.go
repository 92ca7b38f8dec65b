package storage

import (
	"context"
	"io"
)

// BlobStore is the put/delete contract for uploaded pet photos. Put assigns
// a collision-resistant key regardless of the client-supplied name and
// returns a stable, publicly dereferenceable URL; that URL is what callers
// persist. Delete is idempotent: removing an absent blob succeeds.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, originalName, contentType string) (string, error)
	Delete(ctx context.Context, url string) error
}
