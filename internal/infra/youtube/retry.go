package youtube

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"google.golang.org/api/googleapi"

	"github.com/osa030/ytplaylen/internal/domain/failure"
)

// do runs fn with a per-call timeout, retries transient failures with exponential
// backoff and classifies the final error.
func (c *Client) do(ctx context.Context, stage failure.Stage, ref string, fn func(ctx context.Context) error) error {
	var lastErr error
	for i := 0; i < c.maxAttempts; i++ {
		if i > 0 {
			delay := c.retryDelay * time.Duration(1<<uint(i-1))
			zlog.Debug().Msgf("retrying %s (%s) in %v (attempt %d/%d)", stage, ref, delay, i+1, c.maxAttempts)
			select {
			case <-ctx.Done():
				return failure.FromContext(ctx, stage, ref)
			case <-time.After(delay):
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		err := fn(callCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return failure.FromContext(ctx, stage, ref)
		}
		if !isRetryable(err) {
			return classify(err, stage, ref)
		}
		zlog.Warn().Msgf("transient youtube error on %s (%s) (attempt %d/%d): %v", stage, ref, i+1, c.maxAttempts, err)
	}
	return classify(errors.Wrapf(lastErr, "gave up after %d attempts", c.maxAttempts), stage, ref)
}

// isRetryable checks if an error is retryable.
// Server errors, rate limiting and transport failures are; other 4xx are not.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= http.StatusInternalServerError || apiErr.Code == http.StatusTooManyRequests
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// classify maps a provider error onto a failure kind.
func classify(err error, stage failure.Stage, ref string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code >= http.StatusInternalServerError {
			return failure.WithStatus(err, failure.KindUpstreamUnavailable, stage, ref, apiErr.Code)
		}
		rejected := failure.WithStatus(err, failure.KindUpstreamRejected, stage, ref, apiErr.Code)
		switch apiErr.Code {
		case http.StatusNotFound:
			return errors.WithHint(rejected, "the playlist may be private, unlisted or deleted")
		case http.StatusBadRequest, http.StatusForbidden:
			return errors.WithHint(rejected, "check the YouTube API key and its daily quota")
		default:
			return rejected
		}
	}
	return failure.Wrap(err, failure.KindUpstreamUnavailable, stage, ref)
}
