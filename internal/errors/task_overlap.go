package errors

import "net/http"

var ErrTaskOverlap = &Exception{
	Message:    "Task start/endtime overlaps with one or more other tasks",
	StatusCode: http.StatusConflict,
}
