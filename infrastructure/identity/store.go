// Package identity persists the client's pseudo-identity as a small JSON
// file so the same user id is reused across runs.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	domain "github.com/20q2/golgari-game-day/domain/identity"
	"go.uber.org/zap"
)

// FileStore reads and writes an identity file
type FileStore struct {
	path   string
	logger *zap.Logger
}

// DefaultPath is <user config dir>/gameday/identity.json
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "gameday", "identity.json"), nil
}

// NewFileStore creates a store at path, or at DefaultPath when path is empty
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Path is the file the store uses
func (s *FileStore) Path() string {
	return s.path
}

// LoadOrCreate returns the stored identity, generating and saving a new one
// when the file is missing or unusable.
func (s *FileStore) LoadOrCreate() (domain.Identity, error) {
	id, err := s.Load()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn("Replacing unreadable identity file",
			zap.String("path", s.path),
			zap.Error(err),
		)
	}

	id = domain.New()
	if err := s.Save(id); err != nil {
		return domain.Identity{}, err
	}

	s.logger.Info("Created new identity",
		zap.String("userId", id.UserID),
		zap.String("username", id.Username),
	)
	return id, nil
}

// Load reads the stored identity
func (s *FileStore) Load() (domain.Identity, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Identity{}, err
	}

	var id domain.Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return domain.Identity{}, fmt.Errorf("failed to decode identity: %w", err)
	}
	if !id.Valid() {
		return domain.Identity{}, fmt.Errorf("identity file %s is incomplete", s.path)
	}
	return id, nil
}

// Save writes the identity, creating parent directories
func (s *FileStore) Save(id domain.Identity) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create identity directory: %w", err)
	}

	data, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode identity: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write identity: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write identity: %w", err)
	}
	return nil
}
