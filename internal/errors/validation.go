package errors

import "net/http"

// Validation wraps a required-field or size-constraint message.
func Validation(message string) *Exception {
	return &Exception{
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}
