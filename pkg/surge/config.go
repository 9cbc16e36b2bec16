package surge

import (
	"time"

	"github.com/surge-sh/surge-go/pkg/buildinfo"
)

const (
	// DefaultEndpoint is the production API endpoint.
	DefaultEndpoint = "https://surge.surge.sh"

	// DefaultTimeout bounds plain API calls. Publishes and other
	// streaming calls ignore it; their lifetime is the context's.
	DefaultTimeout = 30 * time.Second
)

// Config holds the immutable settings of a [Client]. The zero value
// talks to the production endpoint with default timeouts.
type Config struct {
	// Endpoint is the API base URL. Empty means [DefaultEndpoint].
	Endpoint string

	// Version is reported to the server in the version header of
	// every request. Empty means the library's build version.
	Version string

	// Timeout bounds non-streaming calls. Zero means
	// [DefaultTimeout]; negative disables the timeout entirely.
	Timeout time.Duration

	// Insecure disables TLS certificate verification, for
	// development against endpoints with self-signed certificates.
	Insecure bool
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Version == "" {
		c.Version = buildinfo.Version
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
