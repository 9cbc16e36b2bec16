// Package surge is a client for the Surge static web publishing API.
//
// # Overview
//
// A [Client] wraps one API endpoint and carries no credentials or other
// mutable state; every call takes a [context.Context] and an [Auth]
// value, so a single client can serve any number of users and
// goroutines concurrently:
//
//	client, err := surge.New(surge.Config{}, nil)
//	auth := surge.Token("my-api-token")
//	deployments, err := client.List(ctx, auth)
//
// # Publishing
//
// [Client.Publish] uploads a project directory and returns an
// [EventStream] of server progress events. The upload is fully
// streamed: files are collected with [project.Collect], packed with
// [archive.Build] through an [io.Pipe], and sent as the request body,
// so memory use stays flat for arbitrarily large projects.
//
//	stream, err := client.Publish(ctx, auth, "example.surge.sh", surge.PublishOptions{Dir: "./site"})
//	if err != nil {
//		return err
//	}
//	defer stream.Close()
//	for {
//		ev, err := stream.Next()
//		if err == io.EOF {
//			break
//		}
//		...
//	}
//
// [Client.PublishWip] stages the same upload under a timestamped
// work-in-progress subdomain without touching the live deployment.
//
// # Event Streams
//
// The API reports progress as newline-delimited JSON. [EventStream]
// decodes it incrementally: one [Event] per line, independent of how
// the network chunks the bytes. A malformed line surfaces as an
// [errors.EventError] and the stream continues with the next line,
// so one bad event never kills a deploy in flight.
//
// # Errors
//
// All failures carry a code from [errors.GetCode]. API rejections are
// [errors.APIError] values with the HTTP status and the server's
// messages; rate limits are [errors.RateLimitedError]. Nothing is
// retried automatically, and no response is cached; callers retry by
// re-invoking.
//
// [project.Collect]: github.com/surge-sh/surge-go/pkg/project.Collect
// [archive.Build]: github.com/surge-sh/surge-go/pkg/archive.Build
// [errors.GetCode]: github.com/surge-sh/surge-go/pkg/errors.GetCode
// [errors.EventError]: github.com/surge-sh/surge-go/pkg/errors.EventError
// [errors.APIError]: github.com/surge-sh/surge-go/pkg/errors.APIError
// [errors.RateLimitedError]: github.com/surge-sh/surge-go/pkg/errors.RateLimitedError
package surge
