package storage

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public path prefix under which stored images are served.
const URLPrefix = "/uploads/"

// ImageStore persists uploaded fossil images on the local filesystem and
// hands out the relative URL recorded on the fossil row.
type ImageStore struct {
	dir string
}

// NewImageStore ensures the upload directory exists.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the filesystem directory backing the store.
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a collision-resistant generated name
// and returns its relative URL ("/uploads/<name>").
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write image file: %w", err)
	}
	return URLPrefix + name, nil
}

// Remove deletes the stored file behind a relative URL, best-effort. Failures
// are logged and never propagated; refs outside the uploads area are ignored.
func (s *ImageStore) Remove(ref string) {
	if !strings.HasPrefix(ref, URLPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(ref, URLPrefix))
	if name == "." || name == "/" {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		log.Printf("remove image %s: %v", ref, err)
	}
}

// sanitizeFilename strips path components and any character outside
// [a-zA-Z0-9._-] from the client-supplied name. Falls back to a random name
// when nothing usable remains.
func sanitizeFilename(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	clean := strings.Trim(b.String(), ".")
	if clean == "" {
		return uuid.New().String()
	}
	return clean
}
