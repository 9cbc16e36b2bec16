// Package httputil provides caller-side retry for API calls.
//
// # Overview
//
// The surge SDK performs exactly one attempt per call: a publish that
// dies mid-upload leaves the deployment in an indeterminate remote
// state, and only the caller knows whether re-invoking is safe. This
// package is the re-invocation half of that contract:
//
//   - [RetryableError]: marks a failure as transient (5xx responses,
//     connection drops) at the point it is detected
//   - [Retry]: re-runs an operation while it keeps failing transiently
//
// # Retry
//
// [Retry] re-runs idempotent reads such as list or account calls:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    deployments, err = client.List(ctx, auth)
//	    return err
//	})
//
// Only errors wrapped in [RetryableError] are retried; a 404 or a
// validation failure returns immediately. Publishes should not be
// wrapped blindly: re-invoking one re-uploads the whole archive, which
// is correct (the archive is deterministic) but not free.
package httputil
