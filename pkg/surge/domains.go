package surge

import (
	"context"
	"net/http"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// List returns every deployment on the account, newest first.
func (c *Client) List(ctx context.Context, auth Auth) ([]Deployment, error) {
	var res []Deployment
	if err := c.getJSON(ctx, auth, "list", &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ListDomain returns the revision history of one domain.
func (c *Client) ListDomain(ctx context.Context, auth Auth, domain string) ([]Metadata, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	var res []Metadata
	if err := c.getJSON(ctx, auth, domain+"/list", &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Teardown removes domain and all of its revisions from the service.
func (c *Client) Teardown(ctx context.Context, auth Auth, domain string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	return c.doJSON(ctx, auth, http.MethodDelete, domain, nil, nil)
}

// Rollback switches domain to the revision before the current one.
func (c *Client) Rollback(ctx context.Context, auth Auth, domain string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	return c.doJSON(ctx, auth, http.MethodPost, domain+"/rollback", nil, nil)
}

// Rollfore switches domain to the revision after the current one,
// undoing a rollback.
func (c *Client) Rollfore(ctx context.Context, auth Auth, domain string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	return c.doJSON(ctx, auth, http.MethodPost, domain+"/rollfore", nil, nil)
}

// Cutover makes the given revision the live one. An empty revision
// cuts over to the newest.
func (c *Client) Cutover(ctx context.Context, auth Auth, domain, revision string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	return c.doJSON(ctx, auth, http.MethodPut, revPath(domain, revision), nil, nil)
}

// Discard deletes the given revision. The live revision cannot be
// discarded; cut over to another one first.
func (c *Client) Discard(ctx context.Context, auth Auth, domain, revision string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	return c.doJSON(ctx, auth, http.MethodDelete, revPath(domain, revision), nil, nil)
}

// Metadata fetches the deployment record of a revision. An empty
// revision reads the live one.
func (c *Client) Metadata(ctx context.Context, auth Auth, domain, revision string) (*Metadata, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	path := domain + "/metadata.json"
	if revision != "" {
		path = domain + "/" + revision + "/metadata.json"
	}
	var res Metadata
	if err := c.getJSON(ctx, auth, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Manifest fetches a revision's file manifest, keyed by entry path. An
// empty revision reads the live one.
func (c *Client) Manifest(ctx context.Context, auth Auth, domain, revision string) (map[string]ManifestEntry, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	path := domain + "/manifest.json"
	if revision != "" {
		path = domain + "/" + revision + "/manifest.json"
	}
	var res map[string]ManifestEntry
	if err := c.getJSON(ctx, auth, path, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateSettings replaces the domain's behavior settings (redirects,
// CORS, HSTS and so on).
func (c *Client) UpdateSettings(ctx context.Context, auth Auth, domain string, settings DomainConfig) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	return c.doJSON(ctx, auth, http.MethodPut, domain+"/settings", settings, nil)
}

// Bust flushes the edge cache for domain, forcing the next requests
// back to origin.
func (c *Client) Bust(ctx context.Context, auth Auth, domain string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	return c.doJSON(ctx, auth, http.MethodDelete, domain+"/cache", nil, nil)
}

// Invite grants the given account emails collaborator access to
// domain.
func (c *Client) Invite(ctx context.Context, auth Auth, domain string, emails []string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	payload := map[string][]string{"emails": emails}
	return c.doJSON(ctx, auth, http.MethodPost, domain+"/collaborators", payload, nil)
}

// Revoke removes collaborator access from the given account emails.
func (c *Client) Revoke(ctx context.Context, auth Auth, domain string, emails []string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	payload := map[string][]string{"emails": emails}
	return c.doJSON(ctx, auth, http.MethodDelete, domain+"/collaborators", payload, nil)
}

func revPath(domain, revision string) string {
	if revision == "" {
		return domain + "/rev"
	}
	return domain + "/rev/" + revision
}
