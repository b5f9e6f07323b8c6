package ratelimit

import (
	"net/http"
	"strings"
)

// Class groups requests that share a budget.
type Class string

const (
	ClassDefault Class = "default"
	// ClassFee covers requests that geocode and route.
	ClassFee Class = "fee"
	// ClassLocation covers rider position samples.
	ClassLocation Class = "location"
)

// Classify maps a request to its budget class.
func Classify(r *http.Request) Class {
	path := strings.TrimSuffix(r.URL.Path, "/")
	rest, ok := strings.CutPrefix(path, "/deliveries/")
	if !ok || rest == "" {
		return ClassDefault
	}

	switch {
	case r.Method == http.MethodPost && rest == "fee":
		return ClassFee
	case r.Method == http.MethodPatch && !strings.Contains(rest, "/"):
		return ClassFee
	case r.Method == http.MethodPost && strings.HasSuffix(rest, "/location"):
		return ClassLocation
	default:
		return ClassDefault
	}
}
