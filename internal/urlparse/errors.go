package urlparse

import (
	"errors"
	"fmt"
)

// MalformedURLError reports a URL that could not be decoded into navigator
// intent: the URL itself does not split into location/path/query, or a
// component that must be numeric is not.
//
// Token carries the offending raw input (a path segment, a query parameter
// value, or the whole URL) for diagnostics.
type MalformedURLError struct {
	Token  string // offending raw input
	Reason string // human-readable description
	Err    error  // underlying parse error, if any
}

// Error implements the error interface.
func (e *MalformedURLError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("malformed navigator URL: %s: %q", e.Reason, e.Token)
	}
	return fmt.Sprintf("malformed navigator URL: %s", e.Reason)
}

// Unwrap returns the underlying parse error, if any.
func (e *MalformedURLError) Unwrap() error {
	return e.Err
}

// IsMalformedURL returns true if the error is a MalformedURLError.
// Uses errors.As to handle wrapped errors.
func IsMalformedURL(err error) bool {
	var me *MalformedURLError
	return errors.As(err, &me)
}
