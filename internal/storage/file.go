package storage

import (
	"os"
	"path/filepath"

	perrors "github.com/zhubert/parley/internal/errors"
)

// File persists the snapshot blob as a single file on disk.
type File struct {
	path string
}

// NewFile creates a file backend writing to the given path. The parent
// directory is created on first save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Load reads the persisted blob. A missing file is not an error: it
// returns (nil, nil) so the caller can fall back to a default state.
func (f *File) Load() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, perrors.StorageOpenFailed(f.path, err)
	}
	return data, nil
}

// Save writes the blob, creating the parent directory if needed.
func (f *File) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return perrors.StorageSaveFailed(f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return perrors.StorageSaveFailed(f.path, err)
	}
	return nil
}
