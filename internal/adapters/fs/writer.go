package fs

import (
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"go.trai.ch/keel/internal/core/domain"
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Writer = (*Writer)(nil)

// Writer replaces files atomically: temp file, fsync, rename.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteFile replaces the file at path with data, creating parent directories as needed.
func (w *Writer) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if mkErr := os.MkdirAll(dir, domain.DirPerm); mkErr != nil {
			return zerr.With(zerr.Wrap(mkErr, domain.ErrWriteFailed.Error()), "path", path)
		}
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(domain.FilePerm))
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWriteFailed.Error()), "path", path)
	}
	defer func() {
		// No-op once the file has been committed.
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(data); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWriteFailed.Error()), "path", path)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWriteFailed.Error()), "path", path)
	}
	return nil
}
