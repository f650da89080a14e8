package errors

import "net/http"

var ErrParentTaskNotFound = &Exception{
	Message:    "No matching parenttask found in project",
	StatusCode: http.StatusBadRequest,
}
