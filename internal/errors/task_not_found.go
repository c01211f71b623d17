package errors

import "net/http"

var ErrTaskNotFound = &Exception{
	Message:    "requested task not found",
	StatusCode: http.StatusNotFound,
}
