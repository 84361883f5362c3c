// Package thumbnails stores cover images on disk, one "<volume_id>.jpg" per
// book. File existence alone signals presence; contents are never validated.
package thumbnails

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type Store struct {
	dir string
}

// NewStore returns a store rooted at the "books" subdirectory of the data
// directory.
func NewStore(dataDir string) *Store {
	return &Store{dir: filepath.Join(dataDir, "books")}
}

func (s *Store) Path(volumeID string) string {
	return filepath.Join(s.dir, volumeID+".jpg")
}

func (s *Store) Exists(volumeID string) bool {
	_, err := os.Stat(s.Path(volumeID))
	return err == nil
}

// Save writes the thumbnail for a book, replacing any existing file. Two
// concurrent saves for the same id race and the last writer wins.
func (s *Store) Save(volumeID string, r io.Reader) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create thumbnail directory %s", s.dir)
	}

	f, err := os.Create(s.Path(volumeID))
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return errors.Wrapf(err, "failed to write thumbnail for %s", volumeID)
	}
	return nil
}

// CopyTo copies a book's thumbnail into destDir under the same file name.
func (s *Store) CopyTo(volumeID, destDir string) error {
	src, err := os.Open(s.Path(volumeID))
	if err != nil {
		return errors.WithStack(err)
	}
	defer src.Close()

	dest, err := os.Create(filepath.Join(destDir, volumeID+".jpg"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer dest.Close()

	_, err = io.Copy(dest, src)
	return errors.WithStack(err)
}
