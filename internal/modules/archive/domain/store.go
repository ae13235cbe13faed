package domain

import (
	"context"
	"errors"
	"io"
)

var ErrEmptyKey = errors.New("object key is required")

// ObjectStore persists write-once objects under slash-separated keys.
// Implementations exist for S3-compatible buckets and the local filesystem.
type ObjectStore interface {
	// Put writes body under key and returns the object's location.
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}
