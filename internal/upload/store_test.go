package upload

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		filename string
		want     bool
	}{
		{"scan.png", true},
		{"scan.jpg", true},
		{"scan.jpeg", true},
		{"scan.gif", true},
		{"scan.bmp", true},
		{"scan.tiff", true},
		{"scan.webp", true},
		{"photo.PNG", true},
		{"scan.exe", false},
		{"scan.pdf", false},
		{"noextension", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Allowed(tc.filename), "filename: %q", tc.filename)
	}
}

// fileHeader builds a real multipart.FileHeader the way gin receives one.
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("images", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest("POST", "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["images"][0]
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	stored, err := store.Save(fileHeader(t, "scan.png", "fake image bytes"))
	assert.NoError(t, err)

	assert.Equal(t, "scan.png", stored.Name)
	assert.Equal(t, "image/png", stored.MimeType)
	assert.True(t, strings.HasSuffix(stored.Path, "_scan.png"))

	data, err := os.ReadFile(stored.Path)
	assert.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))

	store.Remove(stored)
	_, err = os.Stat(stored.Path)
	assert.True(t, os.IsNotExist(err))

	// Removing twice is harmless.
	store.Remove(stored)
}

func TestSaveSameFilenameDoesNotCollide(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	first, err := store.Save(fileHeader(t, "scan.jpg", "one"))
	assert.NoError(t, err)
	second, err := store.Save(fileHeader(t, "scan.jpg", "two"))
	assert.NoError(t, err)

	assert.NotEqual(t, first.Path, second.Path)

	one, _ := os.ReadFile(first.Path)
	two, _ := os.ReadFile(second.Path)
	assert.Equal(t, "one", string(one))
	assert.Equal(t, "two", string(two))
}

func TestSaveStripsDirectoryComponents(t *testing.T) {
	store, err := NewStore(t.TempDir())
	assert.NoError(t, err)

	stored, err := store.Save(fileHeader(t, "../../etc/evil.png", "x"))
	assert.NoError(t, err)

	assert.Equal(t, "evil.png", stored.Name)
	assert.Equal(t, store.Dir, filepath.Dir(stored.Path))
}

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	assert.NoError(t, err)

	stale := filepath.Join(dir, "stale.png")
	fresh := filepath.Join(dir, "fresh.png")
	assert.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))
	assert.NoError(t, os.WriteFile(fresh, []byte("new"), 0o644))

	past := time.Now().Add(-2 * time.Hour)
	assert.NoError(t, os.Chtimes(stale, past, past))

	assert.NoError(t, store.Sweep(time.Hour))

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(fresh)
	assert.NoError(t, err)
}
