package errors

import (
	"errors"
	"net/http"
)

// Exception is a reported failure with the HTTP-equivalent status it maps
// to. Anything else that reaches a handler is treated as a store error.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
