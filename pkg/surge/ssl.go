package surge

import (
	"bytes"
	"context"
	"net/http"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// Certs lists the TLS certificates attached to domain.
func (c *Client) Certs(ctx context.Context, auth Auth, domain string) ([]Cert, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	var res struct {
		Certs []Cert `json:"certs"`
	}
	if err := c.getJSON(ctx, auth, domain+"/certs", &res); err != nil {
		return nil, err
	}
	return res.Certs, nil
}

// UploadSSL attaches a PEM bundle (certificate chain plus private key)
// to domain. The bundle is sent as-is; the server validates it.
func (c *Client) UploadSSL(ctx context.Context, auth Auth, domain string, pem []byte) error {
	if err := errors.ValidateDomain(domain); err != nil {
		return err
	}
	if len(pem) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "pem bundle cannot be empty")
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, auth, http.MethodPost, domain+"/certs", bytes.NewReader(pem))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-pem-file")

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Encrypt asks the service to provision a certificate for domain and
// returns the progress event stream of the provisioning run. The
// stream works exactly like a publish stream: read until io.EOF and
// close it.
func (c *Client) Encrypt(ctx context.Context, auth Auth, domain string) (*EventStream, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, auth, http.MethodPut, domain+"/encrypt", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/ndjson")

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	return newEventStream(resp.Body), nil
}
