package invoice

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps rendered invoice PDFs on local disk, addressed by the
// /invoices/<name> URL path the API serves them under.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes the artifact and returns its serving URL path.
func (s *FileStore) Save(name string, data []byte) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", err
	}
	return "/invoices/" + name, nil
}

// Remove deletes an artifact by its serving URL. Missing files are fine.
func (s *FileStore) Remove(fileURL string) error {
	name := strings.TrimPrefix(fileURL, "/invoices/")
	if err := validName(name); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves a serving URL back to the on-disk file.
func (s *FileStore) Path(name string) (string, error) {
	if err := validName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

func validName(name string) error {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return errors.New("invalid file name")
	}
	return nil
}
