package storage

import (
	"context"
	"time"
)

// DefaultPresignedURLExpiry is how long an exercise video upload URL stays valid.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage is the object store holding exercise videos.
type FileStorage interface {
	// GeneratePresignedUploadURL returns a URL the client PUTs the video body to.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	DeleteObject(ctx context.Context, objectKey string) error

	// ObjectURL is the public URL an object is served from once uploaded.
	ObjectURL(objectKey string) string

	// KeyFromURL returns the object key behind a URL produced by ObjectURL.
	// ok is false for URLs that point outside our bucket.
	KeyFromURL(url string) (key string, ok bool)
}
