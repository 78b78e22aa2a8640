package errors

import (
	stdErrors "errors"
	"fmt"
)

// FetchErrorKind classifies why an outbound enrichment fetch failed.
type FetchErrorKind int

const (
	// KindTransport covers connection failures and other round-trip errors.
	KindTransport FetchErrorKind = iota
	// KindTimeout means the request did not finish within its deadline.
	KindTimeout
	// KindStatus is a non-2xx HTTP status that has no more specific kind.
	KindStatus
	// KindNotFound means the page does not exist (HTTP 404 or a missingtitle API error).
	KindNotFound
	// KindRateLimited is an HTTP 429 response.
	KindRateLimited
	// KindMalformed means the response did not have the expected payload shape.
	KindMalformed
)

func (k FetchErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindNotFound:
		return "not found"
	case KindRateLimited:
		return "rate limited"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// FetchError is returned by enrichment clients when the remote source could not deliver a usable page.
type FetchError struct {
	Kind       FetchErrorKind
	Subject    string
	StatusCode int // Zero when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %q: %s", e.Subject, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError creates a FetchError of the given kind.
func NewFetchError(kind FetchErrorKind, subject string, statusCode int, err error) *FetchError {
	return &FetchError{
		Kind:       kind,
		Subject:    subject,
		StatusCode: statusCode,
		Err:        err,
	}
}

// IsFetchError reports whether err is a FetchError (even when wrapped).
func IsFetchError(err error) bool {
	var fetchErr *FetchError
	return stdErrors.As(err, &fetchErr)
}

// FetchErrorKindOf returns the kind of the FetchError in err's chain.
// The second result is false when err carries no FetchError.
func FetchErrorKindOf(err error) (FetchErrorKind, bool) {
	var fetchErr *FetchError
	if !stdErrors.As(err, &fetchErr) {
		return 0, false
	}
	return fetchErr.Kind, true
}
