package routing

import "errors"

// ErrNoResults is returned when the provider found nothing for the query.
var ErrNoResults = errors.New("no results")

// ErrUnavailable is returned while the circuit breaker is open.
var ErrUnavailable = errors.New("routing provider unavailable")
