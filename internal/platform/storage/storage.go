// Package storage provides file storage backends for uploaded assets.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrSaveFailed is returned when a file cannot be written to the backend.
var ErrSaveFailed = errors.New("failed to save file")

// FileStore is the contract for the upload storage collaborator: it takes
// the file bytes and the client-supplied name and returns a stable
// reference path for the stored file. Deployment variants (local disk,
// remote object store) live behind this interface.
type FileStore interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
