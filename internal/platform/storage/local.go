package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/tobenna/blog-api/internal/platform/logger"
)

// LocalStore implements FileStore by writing files to a local directory
// that is served publicly under /assets. Stored names are prefixed with a
// millisecond timestamp so repeated uploads of the same file never collide.
type LocalStore struct {
	dir      string
	logger   *slog.Logger
	timeFunc func() time.Time // Injectable for testing
}

// NewLocalStore creates a LocalStore writing into dir.
func NewLocalStore(dir string, logger *slog.Logger) *LocalStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalStore{
		dir:      dir,
		logger:   logger.With(slog.String("component", "file_store")),
		timeFunc: time.Now,
	}
}

// Ensure LocalStore implements FileStore interface
var _ FileStore = (*LocalStore)(nil)

// Save implements the FileStore interface. The client-supplied name is
// reduced to its base so it cannot escape the assets directory.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	filename := fmt.Sprintf("%d-%s", s.timeFunc().UnixMilli(), filepath.Base(name))
	dst := filepath.Join(s.dir, filename)

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}

	log.Info("file stored", slog.String("filename", filename))

	// The reference is the public path, not the filesystem path.
	return path.Join("assets", filename), nil
}
