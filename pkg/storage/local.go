package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps objects as plain files under one directory.
type LocalStorage struct {
	dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{dir: abs}, nil
}

func (s *LocalStorage) Write(_ context.Context, name string, data []byte) (string, error) {
	location, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(location, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return location, nil
}

func (s *LocalStorage) Read(_ context.Context, location string) ([]byte, error) {
	path, err := s.resolve(location)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	return data, err
}

func (s *LocalStorage) Exists(_ context.Context, location string) (bool, error) {
	path, err := s.resolve(location)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return err == nil, err
}

func (s *LocalStorage) Remove(_ context.Context, location string) error {
	path, err := s.resolve(location)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrObjectNotFound
	}
	return err
}

// resolve maps a bare name or a previously returned location to a path
// inside the storage directory.
func (s *LocalStorage) resolve(location string) (string, error) {
	path := location
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	path = filepath.Clean(path)
	rel, err := filepath.Rel(s.dir, path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("location %q escapes upload dir", location)
	}
	return path, nil
}
