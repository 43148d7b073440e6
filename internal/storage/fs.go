package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "."
	}
	fi, err := os.Stat(base)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, errors.New("assets base is not a directory: " + base)
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Resolve(key string) string {
	if filepath.IsAbs(key) {
		return filepath.Clean(key)
	}
	return filepath.Join(s.base, filepath.Clean(key))
}

func (s *FSStore) Open(key string) (io.ReadCloser, error) {
	if key == "" {
		return nil, &fs.PathError{Op: "open", Path: key, Err: fs.ErrNotExist}
	}
	f, err := os.Open(s.Resolve(key))
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: key, Err: fs.ErrNotExist}
	}
	return f, nil
}

func (s *FSStore) Stat(key string) (fs.FileInfo, error) {
	if key == "" {
		return nil, &fs.PathError{Op: "stat", Path: key, Err: fs.ErrNotExist}
	}
	return os.Stat(s.Resolve(key))
}
