package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// domainLabelRegex matches a single DNS label: alphanumeric with
// interior hyphens, 1-63 characters.
var domainLabelRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidateDomain validates a deploy target domain name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - At least two dot-separated labels (e.g. "example.surge.sh")
//   - Each label is lowercase alphanumeric with interior hyphens, max 63 chars
//   - Total length at most 253 characters
//   - No scheme, port, path, or userinfo components
//
// Both *.surge.sh names and custom domains pass; the server decides
// whether the caller may deploy to them.
func ValidateDomain(domain string) error {
	if domain == "" {
		return New(ErrCodeInvalidDomain, "domain cannot be empty")
	}

	if len(domain) > 253 {
		return New(ErrCodeInvalidDomain, "domain too long (max 253 characters)")
	}

	if strings.Contains(domain, "://") {
		return New(ErrCodeInvalidDomain, "domain must not include a scheme: %q", domain)
	}

	if strings.ContainsAny(domain, "/:@ ") {
		return New(ErrCodeInvalidDomain, "domain must be a bare hostname: %q", domain)
	}

	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return New(ErrCodeInvalidDomain, "domain must contain at least one dot: %q", domain)
	}

	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return New(ErrCodeInvalidDomain, "domain label out of range in %q", domain)
		}
		if !domainLabelRegex.MatchString(label) {
			return New(ErrCodeInvalidDomain, "invalid domain label %q in %q", label, domain)
		}
	}

	return nil
}

// ValidateEntryPath validates a relative archive entry path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (paths are forward-slash normalized before archiving)
func ValidateEntryPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if path == ".." || strings.HasPrefix(path, "../") || strings.Contains(path, "/../") || strings.HasSuffix(path, "/..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateEndpoint validates an API endpoint URL.
// It ensures the URL has a safe scheme (http or https).
func ValidateEndpoint(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidEndpoint, "endpoint cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidEndpoint, "endpoint must use http or https scheme")
	}

	return nil
}
