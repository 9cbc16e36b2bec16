package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore keeps credentials as JSON files in a config directory,
// one file per endpoint. The directory is created mode 0700 and the
// files 0600, since they hold live API tokens.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based credential store.
// If baseDir is empty, defaults to ~/.config/surge/credentials/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "surge", "credentials")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create credentials dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) credPath(endpoint string) string {
	// Ports appear as host:port; ":" is not a portable filename byte.
	name := strings.ReplaceAll(endpointKey(endpoint), ":", "-")
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Get(ctx context.Context, endpoint string) (*Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.credPath(endpoint))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read credential file: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("parse credential: %w", err)
	}
	return &cred, nil
}

func (s *FileStore) Set(ctx context.Context, cred *Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := os.WriteFile(s.credPath(cred.Endpoint), data, 0600); err != nil {
		return fmt.Errorf("write credential file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.credPath(endpoint)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential file: %w", err)
	}
	return nil
}

// Cleanup removes files that no longer parse as credentials, which
// can happen after a downgrade or a partially written file.
func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read credentials dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cred Credential
		if json.Unmarshal(data, &cred) != nil || cred.Token == "" {
			os.Remove(path)
		}
	}
	return nil
}

// Path returns the base directory for credential files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

// =============================================================================
// CLI convenience wrapper
// =============================================================================

// CLIStore wraps a FileStore bound to one endpoint, so command code
// does not thread the endpoint through every call.
type CLIStore struct {
	store    *FileStore
	endpoint string
}

// NewCLIStore creates a store bound to the given endpoint, backed by
// the default credentials directory.
func NewCLIStore(endpoint string) (*CLIStore, error) {
	store, err := NewFileStore("")
	if err != nil {
		return nil, err
	}
	return &CLIStore{store: store, endpoint: endpoint}, nil
}

// GetCredential retrieves the stored login for the bound endpoint.
func (c *CLIStore) GetCredential(ctx context.Context) (*Credential, error) {
	return c.store.Get(ctx, c.endpoint)
}

// SaveCredential stores the login for the bound endpoint.
func (c *CLIStore) SaveCredential(ctx context.Context, cred *Credential) error {
	cred.Endpoint = c.endpoint
	return c.store.Set(ctx, cred)
}

// DeleteCredential removes the login for the bound endpoint.
func (c *CLIStore) DeleteCredential(ctx context.Context) error {
	return c.store.Delete(ctx, c.endpoint)
}

// Path returns the credential file path for the bound endpoint.
func (c *CLIStore) Path() string {
	return c.store.credPath(c.endpoint)
}
