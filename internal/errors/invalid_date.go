package errors

import "net/http"

var ErrInvalidDate = &Exception{
	Message:    "Invalid date format. Valid format YYYY-MM-DD HH:mm:ss",
	StatusCode: http.StatusBadRequest,
}
