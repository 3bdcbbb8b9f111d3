package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ImageStorage persists uploaded slot images and returns the reference path
// stored on the booking record.
type ImageStorage interface {
	Save(filename string, src io.Reader) (string, error)
}

type localImageStorage struct {
	dir string
}

// NewLocalImageStorage stores images on the local filesystem under dir,
// creating the directory if needed.
func NewLocalImageStorage(dir string) (ImageStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &localImageStorage{dir: dir}, nil
}

func (s *localImageStorage) Save(filename string, src io.Reader) (string, error) {
	unique := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		sanitizeFilename(filename),
	)

	dst, err := os.Create(filepath.Join(s.dir, unique))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return filepath.ToSlash(filepath.Join(filepath.Base(s.dir), unique)), nil
}

// sanitizeFilename strips any path components and replaces characters that
// are unsafe in a filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.' || c == '-' || c == '_':
			b.WriteRune(c)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
