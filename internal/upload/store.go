package upload

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

// allowedExtensions is the inbound image allow-list. Files with any other
// extension are silently skipped, not rejected.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".tiff": "image/tiff",
	".webp": "image/webp",
}

// Stored describes an image staged on disk for the duration of one
// request. Name keeps the original base filename and serves as the
// finding identifier in responses.
type Stored struct {
	Name     string
	Path     string
	MimeType string
}

// Store stages uploaded images in a single directory.
type Store struct {
	Dir string
}

// NewStore creates the staging directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Allowed reports whether the filename carries an accepted image
// extension.
func Allowed(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Save writes the uploaded file under a UUID-prefixed name so concurrent
// requests uploading the same filename cannot collide.
func (s *Store) Save(file *multipart.FileHeader) (Stored, error) {
	name := filepath.Base(file.Filename)
	path := filepath.Join(s.Dir, uuid.NewString()+"_"+name)

	src, err := file.Open()
	if err != nil {
		return Stored{}, fmt.Errorf("open upload %s: %w", name, err)
	}
	defer src.Close()

	out, err := os.Create(path)
	if err != nil {
		return Stored{}, fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(path)
		return Stored{}, fmt.Errorf("write %s: %w", path, err)
	}
	return Stored{
		Name:     name,
		Path:     path,
		MimeType: mimeTypes[strings.ToLower(filepath.Ext(name))],
	}, nil
}

// Remove deletes a staged file. Best effort: a file that survives here is
// reaped later by the sweep job.
func (s *Store) Remove(stored Stored) {
	if err := os.Remove(stored.Path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove staged upload %s: %v", stored.Path, err)
	}
}

// Sweep removes staged files older than maxAge.
func (s *Store) Sweep(maxAge time.Duration) error {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return fmt.Errorf("read upload dir: %w", err)
	}
	cutoff := time.Now().Add(-maxAge)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(s.Dir, entry.Name())); err != nil {
				log.Printf("sweep: failed to remove %s: %v", entry.Name(), err)
			}
		}
	}
	return nil
}
