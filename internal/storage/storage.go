// Package storage provides local filesystem storage for reward images
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// allowedExtensions is the whitelist of reward image file extensions
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// Storage is the interface for reward image persistence
type Storage interface {
	// Save writes the image contents under the given file name and
	// returns an error if the name has a disallowed extension.
	Save(name string, contents io.Reader) error
	// Open opens a stored image for reading.
	Open(name string) (io.ReadCloser, error)
	// Delete removes a stored image.
	Delete(name string) error
}

// localStorage implements Storage using the local filesystem
type localStorage struct {
	basePath string
}

// NewLocalStorage creates a new localStorage instance
func NewLocalStorage(basePath string) *localStorage {
	return &localStorage{
		basePath: basePath,
	}
}

// ValidExtension reports whether the file name carries an allowed image extension
func ValidExtension(name string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// path builds the full file path, rejecting names that escape the base dir
func (s *localStorage) path(name string) (string, error) {
	cleaned := filepath.Base(filepath.Clean(name))
	if cleaned == "." || cleaned == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}
	return filepath.Join(s.basePath, cleaned), nil
}

// Save writes the image to disk
func (s *localStorage) Save(name string, contents io.Reader) error {
	if !ValidExtension(name) {
		return fmt.Errorf("unsupported image extension: %q", filepath.Ext(name))
	}

	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		os.Remove(path)
		return err
	}

	return nil
}

// Open opens a stored image for reading
func (s *localStorage) Open(name string) (io.ReadCloser, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

// Delete removes a stored image
func (s *localStorage) Delete(name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}
