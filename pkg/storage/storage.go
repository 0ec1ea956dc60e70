package storage

import "context"

// BlobStore is the capability the documents service uses to persist raw
// file bytes. It keeps disk and path handling out of the business layer.
type BlobStore interface {
	// Put stores the blob under a name derived from hint and returns the
	// storage path for later retrieval.
	Put(ctx context.Context, hint string, data []byte) (string, error)
	// Open returns the blob bytes stored at path.
	Open(ctx context.Context, path string) ([]byte, error)
}
