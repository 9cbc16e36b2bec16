package surge

import (
	"context"
	"encoding/json"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// Analytics fetches the traffic report for domain.
func (c *Client) Analytics(ctx context.Context, auth Auth, domain string) (*Analytics, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	var res Analytics
	if err := c.getJSON(ctx, auth, domain+"/analytics", &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Usage fetches domain's resource usage counters. The report's
// sections vary by plan, so they are returned raw.
func (c *Client) Usage(ctx context.Context, auth Auth, domain string) (map[string]json.RawMessage, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	var res map[string]json.RawMessage
	if err := c.getJSON(ctx, auth, domain+"/usage", &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Audit fetches domain's audit trail: one entry per revision, keyed by
// revision identifier.
func (c *Client) Audit(ctx context.Context, auth Auth, domain string) (map[string]AuditEntry, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	var res map[string]AuditEntry
	if err := c.getJSON(ctx, auth, domain+"/audit", &res); err != nil {
		return nil, err
	}
	return res, nil
}
