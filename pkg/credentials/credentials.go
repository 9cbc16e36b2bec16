// Package credentials stores the API tokens the CLI obtains at login.
//
// This package defines an interface for credential storage with
// implementations for different backends:
//   - file: JSON files under the user's config directory, for CLI use
//   - redis: shared storage for CI runners and other multi-host setups
//
// # Architecture
//
// A [Credential] is one endpoint's login: the account email, the API
// token, and when it was obtained. Credentials are keyed by endpoint,
// so a user can stay logged in to production and a test endpoint at
// the same time. The Store interface supports:
//   - Get/Set/Delete operations keyed by endpoint
//   - Cleanup of credentials for endpoints no longer in use
//
// # Usage
//
// Create a credential store:
//
//	// CLI
//	store, err := credentials.NewFileStore("")  // ~/.config/surge/credentials/
//
//	// CI / shared
//	store := credentials.NewRedisStore(redisClient, 0)
//
// Manage credentials:
//
//	cred := credentials.New("user@example.com", token, endpoint)
//	if err := store.Set(ctx, cred); err != nil {
//	    return err
//	}
//
//	cred, err := store.Get(ctx, endpoint)
//	if errors.Is(err, credentials.ErrNotFound) {
//	    // not logged in
//	}
package credentials

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
)

// Sentinel errors for credential operations.
var (
	// ErrNotFound is returned when no credential is stored for an endpoint.
	ErrNotFound = errors.New("not logged in")
)

// Credential is one endpoint's stored login.
type Credential struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a credential for the given endpoint, stamped with the
// current time.
func New(email, token, endpoint string) *Credential {
	return &Credential{
		Email:     email,
		Token:     token,
		Endpoint:  endpoint,
		CreatedAt: time.Now(),
	}
}

// Store is the interface for credential storage backends.
type Store interface {
	// Get retrieves the credential for an endpoint.
	// Returns ErrNotFound if none is stored.
	Get(ctx context.Context, endpoint string) (*Credential, error)

	// Set stores a credential, replacing any previous one for the
	// same endpoint.
	Set(ctx context.Context, cred *Credential) error

	// Delete removes the credential for an endpoint. Deleting a
	// missing credential is not an error.
	Delete(ctx context.Context, endpoint string) error

	// Cleanup removes stale or unreadable entries (may be a no-op).
	Cleanup(ctx context.Context) error
}

// endpointKey normalizes an endpoint URL to a storage key: its
// lowercased host, with the port kept so distinct local test servers
// do not collide.
func endpointKey(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return strings.ToLower(u.Host)
	}
	key := strings.TrimPrefix(strings.TrimPrefix(endpoint, "https://"), "http://")
	key = strings.TrimSuffix(key, "/")
	return strings.ToLower(key)
}
