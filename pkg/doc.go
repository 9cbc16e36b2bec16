// Package pkg provides the libraries behind the surge CLI and SDK.
//
// # Overview
//
// Surge publishes a directory of static files to a domain and manages
// the resulting deployments. The pkg directory is organized into three
// main areas:
//
//  1. [surge] - The API client: authentication, publish, domain, DNS,
//     SSL and account operations.
//  2. [project] and [archive] - The local side of a deploy: ignore-aware
//     file collection and deterministic tar.gz packaging.
//  3. Supporting infrastructure - [credentials], [cache], [httputil],
//     [errors], [observability] and the [surgetest] test server.
//
// # Architecture
//
// The data flow of a deploy:
//
//	project directory
//	         ↓
//	    [project] package (walk + ignore rules)
//	         ↓
//	    [archive] package (deterministic tar.gz)
//	         ↓
//	    [surge] package (streaming PUT + NDJSON progress events)
//	         ↓
//	    live deployment
//
// # Quick Start
//
// Publish a directory and follow the progress stream:
//
//	import (
//	    "context"
//	    "io"
//	    "github.com/surge-sh/surge-go/pkg/surge"
//	)
//
//	client, _ := surge.New(surge.Config{}, nil)
//	stream, _ := client.Publish(context.Background(), surge.Token(token),
//	    "example.surge.sh", surge.PublishOptions{Dir: "./site"})
//	defer stream.Close()
//	for {
//	    ev, err := stream.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // handle ev
//	}
//
// # Main Packages
//
// [surge] - The API client. One method per endpoint, explicit [surge.Auth]
// values (token or basic), typed responses, and a pull-based
// [surge.EventStream] for the endpoints that answer in NDJSON.
//
// [project] - Directory traversal with layered ignore rules: built-in
// defaults, .surgeignore files, and caller-supplied patterns. Collection
// order is deterministic.
//
// [archive] - Packs a collected project into a gzip-compressed tarball
// with fixed metadata, so identical input always produces an identical
// upload.
//
// [credentials] - Stores access tokens per endpoint, on disk or in
// Redis.
//
// [cache] - Keyed byte cache with TTL expiry, backing shell completion.
//
// [httputil] - Retry helper for callers that want to re-attempt
// retryable API failures.
//
// [errors] - Coded errors shared by every package, with user-facing
// messages per code.
//
// [observability] - Pluggable hooks for publish, cache and HTTP
// activity.
//
// [surgetest] - A scriptable in-process API server for tests.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/surge/...      # Specific package
//
// [surge]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/surge
// [project]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/project
// [archive]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/archive
// [credentials]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/credentials
// [cache]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/errors
// [observability]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/observability
// [surgetest]: https://pkg.go.dev/github.com/surge-sh/surge-go/pkg/surgetest
package pkg
