// Package storage persists the single credential entry used for session
// bootstrap, either in a local JSON file or on a fixed Redis key.
package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/petuniaboards/storefront/internal/core/domain"
)

const defaultFileName = "credentials.json"

// FileStore keeps the credential entry in one JSON file, mode 0600.
type FileStore struct {
	path string
}

// NewFileStore builds a FileStore. An empty path resolves to a per-user
// default under the OS config directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve user config dir")
		}
		path = filepath.Join(dir, "petunia", defaultFileName)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(_ context.Context, creds domain.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "encode credentials")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create credentials dir")
	}
	// Write-then-rename keeps the entry whole if the process dies mid-write.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "write credentials")
	}
	return errors.Wrap(os.Rename(tmp, s.path), "store credentials")
}

func (s *FileStore) Load(_ context.Context) (domain.Credentials, error) {
	var creds domain.Credentials
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return creds, domain.ErrNoCredentials
		}
		return creds, errors.Wrap(err, "read credentials")
	}
	if err := json.Unmarshal(data, &creds); err != nil {
		return domain.Credentials{}, errors.Wrap(err, "decode credentials")
	}
	return creds, nil
}

func (s *FileStore) Delete(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "delete credentials")
	}
	return nil
}
