package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileStore keeps each blob in its own file under Dir. Writes go to a
// temporary file that is renamed over the target, so a failed write never
// leaves a half-written blob behind.
type FileStore struct {
	Dir string
}

// NewFileStore returns a store rooted at dir. The directory is created on
// first use.
func NewFileStore(dir string) *FileStore { return &FileStore{Dir: dir} }

// Save writes the snapshot as tickets.blob, users.blob and admin.blob.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	return saveSnapshot(ctx, s, snap)
}

// Load reads the snapshot; missing files load as empty state.
func (s *FileStore) Load(ctx context.Context) (Snapshot, error) {
	return loadSnapshot(ctx, s)
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.Dir, name+".blob")
}

func (s *FileStore) ensureDir() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", s.Dir, err)
	}
	return nil
}

// PutBlob atomically replaces the named blob.
func (s *FileStore) PutBlob(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path(name), err)
	}
	committed = true

	logrus.WithFields(logrus.Fields{"blob": name, "bytes": len(data), "dir": s.Dir}).Debug("blob written")
	return nil
}

// GetBlob reads the named blob. found is false when the file does not exist.
func (s *FileStore) GetBlob(ctx context.Context, name string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if err := s.ensureDir(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
