package surge

import (
	"context"
	"net/http"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// DNSRecord is one record in a domain's DNS table. The same shape is
// used for zone records on domains that delegate their whole zone.
type DNSRecord struct {
	ID       string `json:"id,omitempty"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Value    string `json:"value"`
	Priority int    `json:"priority,omitempty"`
	TTL      int    `json:"ttl,omitempty"`
}

// DNS lists the DNS records attached to domain.
func (c *Client) DNS(ctx context.Context, auth Auth, domain string) ([]DNSRecord, error) {
	return c.listRecords(ctx, auth, domain, "dns")
}

// AddDNS creates a DNS record on domain and returns it with the
// server-assigned identifier filled in.
func (c *Client) AddDNS(ctx context.Context, auth Auth, domain string, record DNSRecord) (*DNSRecord, error) {
	return c.addRecord(ctx, auth, domain, "dns", record)
}

// RemoveDNS deletes the DNS record with the given identifier.
func (c *Client) RemoveDNS(ctx context.Context, auth Auth, domain, id string) error {
	return c.removeRecord(ctx, auth, domain, "dns", id)
}

// Zone lists the zone records of a domain whose nameservers point at
// the service.
func (c *Client) Zone(ctx context.Context, auth Auth, domain string) ([]DNSRecord, error) {
	return c.listRecords(ctx, auth, domain, "zone")
}

// AddZone creates a zone record on domain.
func (c *Client) AddZone(ctx context.Context, auth Auth, domain string, record DNSRecord) (*DNSRecord, error) {
	return c.addRecord(ctx, auth, domain, "zone", record)
}

// RemoveZone deletes the zone record with the given identifier.
func (c *Client) RemoveZone(ctx context.Context, auth Auth, domain, id string) error {
	return c.removeRecord(ctx, auth, domain, "zone", id)
}

func (c *Client) listRecords(ctx context.Context, auth Auth, domain, kind string) ([]DNSRecord, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	var res []DNSRecord
	if err := c.getJSON(ctx, auth, domain+"/"+kind, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (c *Client) addRecord(ctx context.Context, auth Auth, domain, kind string, record DNSRecord) (*DNSRecord, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	if record.Type == "" || record.Name == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "dns record needs a type and a name")
	}
	var res DNSRecord
	if err := c.doJSON(ctx, auth, http.MethodPost, domain+"/"+kind, record, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) removeRecord(ctx context.Context, auth Auth, domain, kind, id string) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	if id == "" {
		return errors.New(errors.ErrCodeInvalidInput, "record id cannot be empty")
	}
	return c.doJSON(ctx, auth, http.MethodDelete, domain+"/"+kind+"/"+id, nil, nil)
}
