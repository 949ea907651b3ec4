// Package avatar stores uploaded profile pictures on local disk. The rest of
// the application only ever sees the stored filename.
package avatar

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"socialite/backend/internal/models"
)

// Store writes profile pictures under <Dir>/<username>/profile/.
type Store struct {
	Dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes the uploaded file under a random name, keeping the original
// extension, and returns the generated filename.
func (s *Store) Save(username string, fh *multipart.FileHeader) (string, error) {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating avatar name: %w", err)
	}
	name := hex.EncodeToString(buf) + filepath.Ext(fh.Filename)

	dir := filepath.Join(s.Dir, username, "profile")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating avatar directory: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating avatar file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("writing avatar file: %w", err)
	}
	return name, nil
}

// Remove deletes a previously stored picture. The shared placeholder is
// never removed, and a missing file is not an error.
func (s *Store) Remove(username, filename string) error {
	if filename == "" || filename == models.DefaultProfilePic {
		return nil
	}
	err := os.Remove(filepath.Join(s.Dir, username, "profile", filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing avatar file: %w", err)
	}
	return nil
}
