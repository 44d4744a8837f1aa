package connect

import (
	"context"
	"time"

	"connectrpc.com/connect"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

const (
	// RequestIDHeader is the header name carrying the request ID.
	RequestIDHeader = "X-Request-Id"
)

// NewRequestIDInterceptor creates an interceptor that assigns a request ID
// to every call, echoes it on the response and logs the outcome.
func NewRequestIDInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			requestID := req.Header().Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			start := time.Now()

			// Call next handler
			res, err := next(ctx, req)
			elapsed := time.Since(start)

			if err != nil {
				var ce *connect.Error
				if errors.As(err, &ce) {
					ce.Meta().Set(RequestIDHeader, requestID)
				}
				zlog.Warn().Msgf("rpc %s failed: request_id=%s code=%s elapsed=%s: %v",
					req.Spec().Procedure, requestID, connect.CodeOf(err), elapsed, err)
				return nil, err
			}

			res.Header().Set(RequestIDHeader, requestID)
			zlog.Info().Msgf("rpc %s ok: request_id=%s elapsed=%s", req.Spec().Procedure, requestID, elapsed)
			return res, nil
		}
	}
}
