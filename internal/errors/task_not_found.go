package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "No matching task found",
	StatusCode: http.StatusNotFound,
}
