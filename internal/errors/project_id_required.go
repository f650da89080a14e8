package errors

import "net/http"

var ErrProjectIDRequired = &Exception{
	Message:    "Project Id is required",
	StatusCode: http.StatusBadRequest,
}
