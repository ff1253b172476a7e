package photo

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
)

const (
	nameSeparator = "_"
	fileExtension = ".jpg"
)

var (
	ErrEmptyPayload  = errors.New("photo payload is empty")
	ErrMissingPrefix = errors.New("photo payload has no metadata prefix")
	ErrInvalidName   = errors.New("visitor name cannot be used as a file name")
	ErrPhotoNotFound = errors.New("photo not found")
)

// Store writes decoded visitor photos into a single flat directory.
type Store struct {
	fs afero.Fs
}

// NewStore roots the store at dir on the OS filesystem, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return NewStoreWithFs(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

func NewStoreWithFs(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// FileName derives the stored name from the visitor's full name. Two visitors with the
// same name share a file.
func FileName(fullName string) (string, error) {
	name := strings.ReplaceAll(strings.TrimSpace(fullName), " ", nameSeparator)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", ErrInvalidName
	}
	return name + fileExtension, nil
}

// Save decodes a "<metadata>,<base64>" payload and writes it under the visitor's name.
func (s *Store) Save(fullName, payload string) (string, error) {
	if payload == "" {
		return "", ErrEmptyPayload
	}

	_, encoded, found := strings.Cut(payload, ",")
	if !found {
		return "", ErrMissingPrefix
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	filename, err := FileName(fullName)
	if err != nil {
		return "", err
	}

	if err := afero.WriteFile(s.fs, filename, data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	return filename, nil
}

// Open returns a stored photo for serving. Only plain file names are accepted.
func (s *Store) Open(filename string) (afero.File, os.FileInfo, error) {
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return nil, nil, ErrPhotoNotFound
	}

	f, err := s.fs.Open(filename)
	if err != nil {
		return nil, nil, ErrPhotoNotFound
	}

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		_ = f.Close()
		return nil, nil, ErrPhotoNotFound
	}
	return f, info, nil
}
