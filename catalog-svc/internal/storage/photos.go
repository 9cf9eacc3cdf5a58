package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalPhotoStorage writes product photos into a directory on local disk.
type LocalPhotoStorage struct {
	Dir string
}

func NewLocalPhotoStorage(dir string) (*LocalPhotoStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalPhotoStorage{Dir: dir}, nil
}

func (s *LocalPhotoStorage) path(fileName string) string {
	return filepath.Join(s.Dir, filepath.Base(fileName))
}

func (s *LocalPhotoStorage) Store(_ context.Context, fileName string, content io.Reader) error {
	f, err := os.Create(s.path(fileName))
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	return f.Close()
}

// Remove ignores files that are already gone.
func (s *LocalPhotoStorage) Remove(_ context.Context, fileName string) error {
	err := os.Remove(s.path(fileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
