package surge_test

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/surge-sh/surge-go/pkg/errors"
	"github.com/surge-sh/surge-go/pkg/httputil"
	"github.com/surge-sh/surge-go/pkg/surge"
	"github.com/surge-sh/surge-go/pkg/surgetest"
)

func TestNewValidatesEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		wantErr  bool
	}{
		{"default endpoint", "", false},
		{"https endpoint", "https://surge.example.com", false},
		{"http endpoint", "http://localhost:8080", false},
		{"bare host", "surge.example.com", true},
		{"ftp scheme", "ftp://surge.example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := surge.New(surge.Config{Endpoint: tt.endpoint}, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%q) error = %v, wantErr %v", tt.endpoint, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidEndpoint) {
				t.Errorf("error code = %q, want INVALID_ENDPOINT", errors.GetCode(err))
			}
		})
	}
}

func TestAuthorizationForms(t *testing.T) {
	srv := surgetest.New(t)
	client := newTestClient(t, srv)
	ctx := context.Background()

	t.Run("bearer token", func(t *testing.T) {
		if _, err := client.Account(ctx, surge.Token("secret")); err != nil {
			t.Fatal(err)
		}
		if got := srv.LastRequest(t).Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("Authorization = %q, want Bearer secret", got)
		}
	})

	t.Run("basic credentials", func(t *testing.T) {
		if _, err := client.Account(ctx, surge.Basic{Username: "me@example.com", Password: "pw"}); err != nil {
			t.Fatal(err)
		}
		req := srv.LastRequest(t)
		hr := &http.Request{Header: req.Header}
		user, pass, ok := hr.BasicAuth()
		if !ok || user != "me@example.com" || pass != "pw" {
			t.Errorf("basic auth = %q/%q (%v)", user, pass, ok)
		}
	})
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errors.Code
	}{
		{"not found", http.StatusNotFound, `{}`, errors.ErrCodeNotFound},
		{"unauthorized", http.StatusUnauthorized, `{}`, errors.ErrCodeUnauthorized},
		{"forbidden", http.StatusForbidden, `{}`, errors.ErrCodeUnauthorized},
		{"rate limited", http.StatusTooManyRequests, `{}`, errors.ErrCodeRateLimited},
		{"server error", http.StatusBadGateway, `oops`, errors.ErrCodeNetwork},
		{"structured rejection", 422, `{"errors":["bad project"]}`, errors.ErrCodeAPI},
		{"plain text rejection", http.StatusBadRequest, `that will not work`, errors.ErrCodeAPI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusTooManyRequests {
					w.Header().Set("Retry-After", "17")
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			client, err := surge.New(surge.Config{Endpoint: ts.URL}, nil)
			if err != nil {
				t.Fatal(err)
			}
			_, err = client.Account(context.Background(), surge.Token("tok"))
			if err == nil {
				t.Fatal("expected an error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %q, want %q", got, tt.wantCode)
			}

			switch tt.wantCode {
			case errors.ErrCodeRateLimited:
				var rl *errors.RateLimitedError
				if !stderrors.As(err, &rl) || rl.RetryAfter != 17 {
					t.Errorf("rate limit error = %v, want RetryAfter 17", err)
				}
			case errors.ErrCodeAPI:
				var apiErr *errors.APIError
				if !stderrors.As(err, &apiErr) {
					t.Fatalf("error = %T, want *errors.APIError", err)
				}
				if apiErr.Status != tt.status || len(apiErr.Errors) != 1 {
					t.Errorf("APIError = %+v", apiErr)
				}
			}
		})
	}
}

func TestServerErrorsAreRetryable(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	client, err := surge.New(surge.Config{Endpoint: ts.URL}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// The SDK never retries on its own; httputil.Retry must recognize
	// the wrapped 5xx failure and re-invoke.
	err = httputil.Retry(context.Background(), 3, 0, func() error {
		_, err := client.List(context.Background(), surge.Token("tok"))
		return err
	})
	if err != nil {
		t.Fatalf("retried call failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("server saw %d calls, want 3", calls)
	}
}

func TestCRUDRoundTrips(t *testing.T) {
	srv := surgetest.New(t)
	client := newTestClient(t, srv)
	ctx := context.Background()
	auth := surge.Token("tok")

	t.Run("login", func(t *testing.T) {
		res, err := client.Login(ctx, "tester@example.com", "pw")
		if err != nil {
			t.Fatal(err)
		}
		if res.Token != srv.Token() {
			t.Errorf("token = %q, want %q", res.Token, srv.Token())
		}
	})

	t.Run("list", func(t *testing.T) {
		deployments, err := client.List(ctx, auth)
		if err != nil {
			t.Fatal(err)
		}
		if len(deployments) != 1 || deployments[0].Domain != "demo.surge.sh" {
			t.Errorf("deployments = %+v", deployments)
		}
	})

	t.Run("domain revisions", func(t *testing.T) {
		revs, err := client.ListDomain(ctx, auth, "demo.surge.sh")
		if err != nil {
			t.Fatal(err)
		}
		if len(revs) != 2 || !revs[0].Current {
			t.Errorf("revisions = %+v", revs)
		}
	})

	t.Run("teardown", func(t *testing.T) {
		if err := client.Teardown(ctx, auth, "demo.surge.sh"); err != nil {
			t.Fatal(err)
		}
		req := srv.LastRequest(t)
		if req.Method != http.MethodDelete || req.Path != "/demo.surge.sh" {
			t.Errorf("request = %s %s", req.Method, req.Path)
		}
	})

	t.Run("rollback", func(t *testing.T) {
		if err := client.Rollback(ctx, auth, "demo.surge.sh"); err != nil {
			t.Fatal(err)
		}
		if req := srv.LastRequest(t); req.Path != "/demo.surge.sh/rollback" {
			t.Errorf("path = %s", req.Path)
		}
	})

	t.Run("dns", func(t *testing.T) {
		records, err := client.DNS(ctx, auth, "demo.surge.sh")
		if err != nil {
			t.Fatal(err)
		}
		if len(records) != 1 || records[0].Type != "CNAME" {
			t.Errorf("records = %+v", records)
		}

		added, err := client.AddDNS(ctx, auth, "demo.surge.sh",
			surge.DNSRecord{Type: "A", Name: "@", Value: "192.0.2.1"})
		if err != nil {
			t.Fatal(err)
		}
		if added.ID == "" || added.Value != "192.0.2.1" {
			t.Errorf("added record = %+v", added)
		}

		if err := client.RemoveDNS(ctx, auth, "demo.surge.sh", added.ID); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("cache bust", func(t *testing.T) {
		if err := client.Bust(ctx, auth, "demo.surge.sh"); err != nil {
			t.Fatal(err)
		}
		if req := srv.LastRequest(t); req.Path != "/demo.surge.sh/cache" {
			t.Errorf("path = %s", req.Path)
		}
	})
}

func TestGenerateDomain(t *testing.T) {
	plain := regexp.MustCompile(`^[a-z]+-[a-z]+\.surge\.sh$`)
	numbered := regexp.MustCompile(`^[a-z]+-[a-z]+-\d{1,4}\.surge\.sh$`)

	for range 50 {
		if d := surge.GenerateDomain(false); !plain.MatchString(d) {
			t.Fatalf("GenerateDomain(false) = %q", d)
		}
		if d := surge.GenerateDomain(true); !numbered.MatchString(d) {
			t.Fatalf("GenerateDomain(true) = %q", d)
		}
	}

	// Generated names must satisfy the client's own validation.
	if err := errors.ValidateDomain(surge.GenerateDomain(true)); err != nil {
		t.Errorf("generated domain failed validation: %v", err)
	}
}
