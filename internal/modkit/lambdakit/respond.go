// Package lambdakit provides helpers for writing Lambda proxy responses with
// a consistent shape
package lambdakit

import (
	"context"
	"encoding/json"
	"net/http"

	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/platform/logger"
)

// Response is the Lambda proxy result shape the runtime serializes for the caller
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Handler is the signature all sftpcycle entrypoints share. The schedule
// trigger carries no payload, so handlers take only a context
type Handler func(ctx context.Context) (Response, error)

// OK writes a 200 response with v marshaled as the body
func OK(v any) Response {
	return withStatus(http.StatusOK, v)
}

// Err maps any error onto the response using the platform status mapping
// and the wire error shape
func Err(err error) Response {
	status, wire := perr.HTTP(err)
	return withStatus(status, wire)
}

func withStatus(status int, v any) Response {
	b, err := json.Marshal(v)
	if err != nil {
		// marshal failures indicate a programming error in the result type
		logger.Get().Error().Err(err).Msg("response marshal failed")
		return Response{
			StatusCode: http.StatusInternalServerError,
			Body:       `{"error":"response encoding failed"}`,
		}
	}
	return Response{StatusCode: status, Body: string(b)}
}

// Recover wraps a Handler so panics surface as structured 500 responses
// instead of crashing the runtime
func Recover(h Handler) Handler {
	return func(ctx context.Context) (resp Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.C(ctx).Error().Interface("panic", r).Msg("handler panicked")
				resp = Err(perr.PanicErrf("unexpected error: %v", r))
				err = nil
			}
		}()
		return h(ctx)
	}
}
