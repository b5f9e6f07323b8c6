package deliveryapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"textbook-logistics/internal/apperr"
)

// StatusError is an HTTP answer the client has no typed error for.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("delivery api: status %d", e.Code)
	}
	return fmt.Sprintf("delivery api: status %d: %s", e.Code, e.Message)
}

// statusToError maps a non 2xx answer onto the apperr taxonomy.
func statusToError(op string, code int, msg string) error {
	switch code {
	case http.StatusBadRequest:
		return fmt.Errorf("%s: %s: %w", op, msg, apperr.Invalid)
	case http.StatusForbidden:
		return apperr.Denied(op, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, apperr.NotFound)
	case http.StatusConflict:
		return apperr.Rejected(op, "", msg)
	case http.StatusUnprocessableEntity:
		return &apperr.RoutingError{Err: errors.New(msg)}
	default:
		return &StatusError{Code: code, Message: msg}
	}
}

// isRetryable reports whether a call may succeed when repeated.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		switch se.Code {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
