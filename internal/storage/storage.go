package storage

import "context"

// ObjectStorage is the binary-object boundary: upload bytes under a path,
// get back a public reference. Implementations cover the hosted storage
// providers the service can be pointed at.
type ObjectStorage interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (string, error)
	Delete(ctx context.Context, path string) error
}
