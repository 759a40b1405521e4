package querybuilder

import (
	"fmt"

	"github.com/pkg/errors"
)

// ClientError marks a failure caused by the caller-supplied options:
// unsupported operators, non-array values for array operators, array
// operators under a dialect that lacks them, pathological nesting depth.
// The API layer maps these to a 400 response.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

func clientErrorf(format string, args ...any) error {
	return &ClientError{Message: fmt.Sprintf(format, args...)}
}

// IsClientError reports whether err (or anything it wraps) is a ClientError.
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}
