package tcaclient

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xw1nchester/tca-backend/internal/backend"
)

// fileStore persists the session between console runs. An empty path keeps
// the session in memory only.
type fileStore struct {
	path string
}

func (s fileStore) load() (*backend.Session, error) {
	if s.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var session backend.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	if session.RefreshToken == "" {
		return nil, nil
	}

	return &session, nil
}

func (s fileStore) save(session *backend.Session) error {
	if s.path == "" {
		return nil
	}

	if session == nil {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, s.path)
}
