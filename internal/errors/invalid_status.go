package errors

import (
	"fmt"
	"net/http"
)

func InvalidStatus(value string) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("Unsupported value %s for status", value),
		StatusCode: http.StatusBadRequest,
	}
}
