// Package surgetest runs an in-process fake of the Surge API for
// tests and examples.
//
// A [Server] wraps an httptest.Server behind a chi router that mimics
// the real service's route table: token login, the publish endpoint
// with a scripted NDJSON response, and canned fixtures for the list,
// account and DNS calls. Every request is captured so tests can assert
// on the headers and bodies a client actually sent.
//
//	srv := surgetest.New(t)
//	srv.ScriptPublish(http.StatusOK,
//		`{"kind":"upload","message":"uploading"}`,
//		`{"kind":"success","message":"done"}`,
//	)
//	client, _ := surge.New(surge.Config{Endpoint: srv.URL()}, nil)
//	... publish, then inspect srv.Requests() ...
package surgetest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Request is one captured client request. Body holds the full request
// body; for publishes that is the uploaded tar.gz archive.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// BearerToken returns the token of a "Bearer ..." Authorization
// header, or "" if the request used none.
func (r Request) BearerToken() string {
	const prefix = "Bearer "
	auth := r.Header.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// publishScript is the scripted response of the publish endpoint.
type publishScript struct {
	status int
	lines  []string
	pace   time.Duration
	body   string // overrides lines when status is non-2xx
}

// Server is the scripted API fake. All methods are safe for
// concurrent use; the zero value is not usable, construct with [New].
type Server struct {
	ts *httptest.Server

	mu       sync.Mutex
	requests []Request
	publish  publishScript
	token    string
	email    string
}

// New starts a fake API server that is shut down with the test.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		publish: publishScript{status: http.StatusOK},
		token:   uuid.NewString(),
		email:   "tester@example.com",
	}

	r := chi.NewRouter()
	r.Post("/token", s.handleToken)
	r.Get("/account", s.handleAccount)
	r.Get("/list", s.handleList)
	r.Get("/{domain}/list", s.handleDomainList)
	r.Get("/{domain}/dns", s.handleDNSList)
	r.Post("/{domain}/dns", s.handleDNSAdd)
	r.Delete("/{domain}/dns/{id}", s.handleOK)
	r.Delete("/{domain}/cache", s.handleOK)
	r.Delete("/{domain}", s.handleOK)
	r.Post("/{domain}/rollback", s.handleOK)
	r.Post("/{domain}/rollfore", s.handleOK)
	r.Put("/{domain}", s.handlePublish)

	s.ts = httptest.NewServer(r)
	t.Cleanup(s.ts.Close)
	return s
}

// URL returns the server's base URL, suitable as a client endpoint.
func (s *Server) URL() string {
	return s.ts.URL
}

// Token returns the API token the fake's login endpoint mints.
func (s *Server) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// ScriptPublish sets the status and NDJSON lines the next publishes
// answer with. Lines are written without trailing newlines added by
// the caller; a newline is appended to each and the response is
// flushed after every line so chunking is observable.
func (s *Server) ScriptPublish(status int, lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish = publishScript{status: status, lines: lines}
}

// ScriptPublishError makes publishes fail with the given status and
// literal response body.
func (s *Server) ScriptPublishError(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish = publishScript{status: status, body: body}
}

// SetPace inserts a delay between scripted publish lines, so tests can
// observe events arriving while the response is still open.
func (s *Server) SetPace(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish.pace = d
}

// Requests returns a copy of every captured request, in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent captured request. It fails the
// test if nothing was captured yet.
func (s *Server) LastRequest(t *testing.T) Request {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		t.Fatal("no requests captured")
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) capture(r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   body,
	})
}

// ===== Handlers =====

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if _, _, ok := r.BasicAuth(); !ok {
		writeJSON(w, http.StatusUnauthorized, `{"errors":["email and password required"]}`)
		return
	}
	s.mu.Lock()
	token, email := s.token, s.email
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, `{"email":"`+email+`","token":"`+token+`"}`)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if !s.authorized(w, r) {
		return
	}
	s.mu.Lock()
	email := s.email
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, `{"email":"`+email+`","id":"`+uuid.NewString()+`","role":0,"plan":{"id":"free","name":"Free","current":true}}`)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, `[{"domain":"demo.surge.sh","planName":"Free","rev":1,"cmd":"surge","publicFileCount":2,"publicTotalSize":512}]`)
}

func (s *Server) handleDomainList(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, `[{"rev":2,"cmd":"surge","current":true,"publicFileCount":2,"publicTotalSize":512},{"rev":1,"cmd":"surge","publicFileCount":1,"publicTotalSize":128}]`)
}

func (s *Server) handleDNSList(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, `[{"id":"`+uuid.NewString()+`","type":"CNAME","name":"www","value":"`+chi.URLParam(r, "domain")+`"}]`)
}

func (s *Server) handleDNSAdd(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if !s.authorized(w, r) {
		return
	}
	last := s.LastRequestQuiet()
	record := string(last.Body)
	// Echo the record back with a fresh id spliced in.
	if len(record) > 1 && record[0] == '{' {
		record = `{"id":"` + uuid.NewString() + `",` + record[1:]
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleOK(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if !s.authorized(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, `{"ok":true}`)
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	s.capture(r)
	if !s.authorized(w, r) {
		return
	}

	s.mu.Lock()
	script := s.publish
	s.mu.Unlock()

	if script.status < 200 || script.status >= 300 {
		writeJSON(w, script.status, script.body)
		return
	}

	w.Header().Set("Content-Type", "application/ndjson")
	w.WriteHeader(script.status)
	flusher, _ := w.(http.Flusher)
	for _, line := range script.lines {
		io.WriteString(w, line+"\n")
		if flusher != nil {
			flusher.Flush()
		}
		if script.pace > 0 {
			time.Sleep(script.pace)
		}
	}
}

// LastRequestQuiet is LastRequest without the testing.T dependency,
// for use inside handlers.
func (s *Server) LastRequestQuiet() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") == "" {
		writeJSON(w, http.StatusUnauthorized, `{"errors":["authentication required"]}`)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}
