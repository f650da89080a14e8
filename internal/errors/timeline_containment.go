package errors

import "net/http"

var ErrTimelineContainment = &Exception{
	Message:    "Subtask start/endtime must be within parents timeline",
	StatusCode: http.StatusBadRequest,
}
