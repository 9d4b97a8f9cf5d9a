package persistence

import (
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/engram/internal/fs"
)

// ErrNotFound is returned when the requested file or blob does not exist.
var ErrNotFound = errors.New("persistence: not found")

// IOError describes a failed storage operation.
type IOError struct {
	Op   string
	Name string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, e.Name, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func wrapIO(op, name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
	}
	return &IOError{Op: op, Name: name, Err: err}
}

// LoadFile reads the whole file at path.
func LoadFile(path string) ([]byte, error) {
	return loadFile(fs.Default, path)
}

// SaveFile atomically replaces the file at path with data.
// Missing parent directories are created.
func SaveFile(path string, data []byte) error {
	return saveFile(fs.Default, path, data)
}

func loadFile(fsys fs.FileSystem, path string) ([]byte, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, wrapIO("load", path, err)
	}
	return data, nil
}

func saveFile(fsys fs.FileSystem, path string, data []byte) error {
	return wrapIO("save", path, fs.WriteFileAtomic(fsys, path, data, 0o644))
}
