package ports

import "context"

// BlobStore is the object-storage boundary for complaint and resolution
// evidence images. Paths follow {owner_id}/{unix_millis}.{ext}; collisions
// within the same owner at sub-millisecond granularity are not guarded.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) error
	PublicURL(bucket, path string) string
}
