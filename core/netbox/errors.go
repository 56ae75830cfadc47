package netbox

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreachable wraps transport level failures talking to NetBox.
	ErrUnreachable = errors.New("netbox unreachable")
	// ErrNoCredentials is returned when neither a token nor a username/password is set.
	ErrNoCredentials = errors.New("either token or username/password must be provided")
	// ErrMultipleResults is returned when a lookup filter matches more than one object.
	ErrMultipleResults = errors.New("lookup matched more than one object")
)

// APIError is a non-2xx answer from the NetBox API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// IsStatus reports whether err is an *APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	return false
}
