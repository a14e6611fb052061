package marketplace

import (
	"fmt"
	"strings"
)

// ValidationError reports required request fields that are missing or not
// usable. It is raised before any network I/O happens.
//
// The message text is Turkish because it is shown verbatim to the storefront
// operators consuming the proxy.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Eksik parametreler: %s", strings.Join(e.Fields, ", "))
}

// EncodingError reports that the credential pair could not be encoded into a
// Basic-Auth header. Kept distinct from ValidationError so callers can map it
// to a server-side failure instead of a bad request.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "credential encoding failed: " + e.Reason
}

// UpstreamError reports a non-2xx response from the marketplace. Detail is
// the best available description of the upstream failure, extracted per the
// fallback chain in upstreamDetail.
type UpstreamError struct {
	StatusCode int
	Status     string
	Detail     string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf(
		"marketplace request failed (%d %s): %s",
		e.StatusCode,
		e.Status,
		e.Detail,
	)
}
