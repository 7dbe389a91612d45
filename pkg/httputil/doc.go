// Package httputil provides retry support for platform API clients.
//
// # Retry
//
// [Retry] executes an operation with exponential backoff. Only errors
// wrapped in [RetryableError] trigger another attempt; anything else
// fails immediately. The integration clients wrap transient failures
// (network errors, 5xx responses, rate limits) in [RetryableError], so
// a whole request-and-decode cycle can be passed as the operation:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return client.Get(ctx, url, &out)
//	})
//
// # Configuration
//
// [RetryWithBackoff] uses 3 attempts with a 1 second initial delay,
// doubling after each failure. Use [Retry] directly for a different
// budget.
//
// Write requests are deliberately not retried by the integration
// clients: re-sending a timed-out create could duplicate the resource.
// Callers that know a write is idempotent can wrap it themselves.
package httputil
