package surge

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/surge-sh/surge-go/pkg/archive"
	"github.com/surge-sh/surge-go/pkg/errors"
	"github.com/surge-sh/surge-go/pkg/observability"
	"github.com/surge-sh/surge-go/pkg/project"
)

// PublishOptions controls how a project is uploaded.
type PublishOptions struct {
	// Dir is the project directory. Empty means the current directory.
	Dir string

	// Rules filters the uploaded files. Nil means the built-in
	// excludes plus any .surgeignore files found in the tree.
	Rules *project.RuleSet

	// Headers are merged into the request after the standard upload
	// headers, overriding them on conflict.
	Headers map[string]string

	// Argv is echoed to the server inside the argv header and shows
	// up in the deployment's metadata.
	Argv []string

	// Force asks the server to replace a deployment it would
	// otherwise refuse to overwrite.
	Force bool
}

// Publish uploads the project to domain and returns the server's
// progress event stream. The archive is built while it uploads;
// nothing is buffered in full, and the first byte hits the wire as
// soon as the first file is read.
//
// The configured timeout does not apply; cancel ctx to abort a deploy.
func (c *Client) Publish(ctx context.Context, auth Auth, domain string, opts PublishOptions) (*EventStream, error) {
	return c.publish(ctx, auth, domain, opts, false)
}

// PublishWip uploads the project to a timestamped work-in-progress
// subdomain of domain, leaving the live deployment untouched. The
// preview slot is named <unix-millis>-<domain> and shows up in the
// final info event's URL list.
func (c *Client) PublishWip(ctx context.Context, auth Auth, domain string, opts PublishOptions) (*EventStream, error) {
	return c.publish(ctx, auth, domain, opts, true)
}

func (c *Client) publish(ctx context.Context, auth Auth, domain string, opts PublishOptions, wip bool) (*EventStream, error) {
	if err := errors.ValidateDomain(domain); err != nil {
		return nil, err
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	hooks := observability.Publish()
	hooks.OnCollectStart(ctx, domain)
	collectStart := time.Now()

	paths, err := project.Collect(dir, opts.Rules)
	if err == nil && len(paths) == 0 {
		err = errors.New(errors.ErrCodeProjectEmpty, "no publishable files in %s", dir)
	}
	var stats project.Stats
	if err == nil {
		stats, err = project.Measure(dir, opts.Rules)
	}
	hooks.OnCollectComplete(ctx, domain, stats.FileCount, stats.TotalSize, time.Since(collectStart), err)
	if err != nil {
		return nil, err
	}

	target := domain
	if wip {
		target = fmt.Sprintf("%d-%s", time.Now().UnixMilli(), domain)
	}

	// The archive is produced straight into the request body.
	pr, pw := io.Pipe()
	done := make(chan error, 1)
	go func() {
		err := archive.Build(pw, dir, paths)
		pw.CloseWithError(err)
		done <- err
	}()

	req, err := c.newRequest(ctx, auth, http.MethodPut, target, pr)
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}
	argv, err := c.argvHeader(opts.Argv, wip)
	if err != nil {
		pr.CloseWithError(err)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/gzip")
	req.Header.Set("Accept", "application/ndjson")
	req.Header.Set("stage", strconv.FormatBool(wip))
	req.Header.Set("ssl", "null")
	req.Header.Set("argv", argv)
	req.Header.Set("file-count", strconv.Itoa(stats.FileCount))
	req.Header.Set("project-size", strconv.FormatInt(stats.TotalSize, 10))
	if opts.Force {
		req.Header.Set("force", "true")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	hooks.OnUploadStart(ctx, target, stats.FileCount, stats.TotalSize)
	uploadStart := time.Now()

	resp, err := c.send(req)
	if err != nil {
		// Tearing down the pipe unblocks the builder. A genuine local
		// archive failure outranks the transport's view of the broken
		// upload, but a builder that only tripped over the dead pipe
		// must not mask the transport error.
		pr.CloseWithError(err)
		if buildErr := <-done; buildErr != nil &&
			!stderrors.Is(buildErr, io.ErrClosedPipe) && !stderrors.Is(buildErr, err) {
			err = buildErr
		}
		hooks.OnUploadComplete(ctx, target, 0, time.Since(uploadStart), err)
		return nil, err
	}
	hooks.OnUploadComplete(ctx, target, resp.StatusCode, time.Since(uploadStart), nil)

	return newEventStream(resp.Body), nil
}

// argvHeader renders the metadata header the server stores alongside
// the deployment.
func (c *Client) argvHeader(argv []string, wip bool) (string, error) {
	if argv == nil {
		argv = []string{}
	}
	payload := struct {
		Args     []string `json:"_"`
		E        string   `json:"e"`
		Endpoint string   `json:"endpoint"`
		S        bool     `json:"s"`
		Stage    bool     `json:"stage"`
	}{argv, c.cfg.Endpoint, c.cfg.Endpoint, wip, wip}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "encode argv header")
	}
	return string(data), nil
}
