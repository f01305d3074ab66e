package identity

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/tkabila/shajara/core/session"
)

// FileStore keeps the serialized identity in a single local file: the
// zero-dependency analogue of browser local storage. Writes go through a temp
// file + rename so readers never observe a partial token.
type FileStore struct {
	path string
}

var _ session.IdentityStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "creating identity dir")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return errors.Wrap(err, "writing identity file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replacing identity file")
	}
	return nil
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", session.ErrNoIdentity
	}
	if err != nil {
		return "", errors.Wrap(err, "reading identity file")
	}
	if len(data) == 0 {
		return "", session.ErrNoIdentity
	}
	return string(data), nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing identity file")
	}
	return nil
}
