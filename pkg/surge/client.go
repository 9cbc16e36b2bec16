package surge

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/surge-sh/surge-go/pkg/errors"
	"github.com/surge-sh/surge-go/pkg/httputil"
	"github.com/surge-sh/surge-go/pkg/observability"
)

// maxErrorBody caps how much of a failed response is read back when
// building an error message.
const maxErrorBody = 64 << 10

// Client talks to one Surge API endpoint. All state is fixed at
// construction, so a Client is safe for concurrent use and can serve
// any number of accounts; credentials travel with each call.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *log.Logger
}

// New validates cfg and returns a ready Client. A nil logger disables
// the client's debug logging; the SDK never logs above debug level,
// so callers stay in charge of what their users see.
func New(cfg Config, logger *log.Logger) (*Client, error) {
	cfg = cfg.withDefaults()
	if err := errors.ValidateEndpoint(cfg.Endpoint); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// The timeout is applied per call via context rather than on the
	// http.Client, which would also cut off long event streams.
	hc := &http.Client{}
	if cfg.Insecure {
		hc.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &Client{cfg: cfg, http: hc, logger: logger}, nil
}

// Endpoint returns the API base URL the client talks to.
func (c *Client) Endpoint() string {
	return c.cfg.Endpoint
}

// withTimeout applies the configured timeout for non-streaming calls.
func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.cfg.Timeout)
}

// url joins a request path to the endpoint.
func (c *Client) url(path string) string {
	return strings.TrimSuffix(c.cfg.Endpoint, "/") + "/" + path
}

// newRequest builds an authenticated request with the headers every
// call carries.
func (c *Client) newRequest(ctx context.Context, auth Auth, method, path string, body io.Reader) (*http.Request, error) {
	if auth == nil {
		return nil, errors.New(errors.ErrCodeUnauthorized, "no credentials provided")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build %s /%s request", method, path)
	}
	req.Header.Set("version", c.cfg.Version)
	req.Header.Set("timestamp", time.Now().UTC().Format(time.RFC3339))
	auth.apply(req)
	return req, nil
}

// send executes req and maps transport failures and non-2xx statuses
// to coded errors. On success the caller owns resp.Body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	hooks := observability.HTTP()
	hooks.OnRequest(req.Context(), req.Method, req.URL.Host, req.URL.Path)
	c.logger.Debug("request", "method", req.Method, "path", req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(req.Context(), req.Method, req.URL.Host, req.URL.Path, err)
		c.logger.Debug("request failed", "method", req.Method, "path", req.URL.Path, "err", err)
		if t, ok := err.(interface{ Timeout() bool }); ok && t.Timeout() {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "%s %s timed out", req.Method, req.URL.Path)
		}
		return nil, &httputil.RetryableError{
			Err: errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", req.Method, req.URL.Path),
		}
	}
	hooks.OnResponse(req.Context(), req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))
	c.logger.Debug("response", "method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if err := checkStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

// getJSON performs an authenticated GET and decodes the body into v.
func (c *Client) getJSON(ctx context.Context, auth Auth, path string, v any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	req, err := c.newRequest(ctx, auth, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeAPI, err, "decode %s response", path)
	}
	return nil
}

// doJSON performs an authenticated call with an optional JSON payload,
// decoding the response into v when v is non-nil.
func (c *Client) doJSON(ctx context.Context, auth Auth, method, path string, payload, v any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode %s payload", path)
		}
		body = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, auth, method, path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if v == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeAPI, err, "decode %s response", path)
	}
	return nil
}

// checkStatus maps a non-2xx response to a coded error, consuming the
// body as needed. 5xx results are marked retryable so callers that
// choose to retry idempotent reads can recognize them.
func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s not found", resp.Request.URL.Path)
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "authentication rejected (status %d)", code)
	case code == http.StatusTooManyRequests:
		return rateLimited(resp)
	case code >= 500:
		return &httputil.RetryableError{
			Err: errors.New(errors.ErrCodeNetwork, "server error: status %d", code),
		}
	default:
		return apiError(resp)
	}
}

func rateLimited(resp *http.Response) error {
	retryAfter := 0
	if s := resp.Header.Get("Retry-After"); s != "" {
		retryAfter, _ = strconv.Atoi(s)
	}
	return &errors.RateLimitedError{RetryAfter: retryAfter, Message: "rate limited by server"}
}

// apiError builds an [errors.APIError] from a rejected response,
// preferring the structured {"errors": [...]} body the API sends.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Errors   []string `json:"errors"`
		Messages []string `json:"messages"`
	}
	var msgs []string
	if json.Unmarshal(body, &payload) == nil {
		msgs = append(payload.Errors, payload.Messages...)
	}
	if len(msgs) == 0 {
		if text := strings.TrimSpace(string(body)); text != "" {
			msgs = []string{text}
		}
	}
	return &errors.APIError{Status: resp.StatusCode, Errors: msgs}
}
