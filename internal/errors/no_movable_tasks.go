package errors

import "net/http"

var ErrNoMovableTasks = &Exception{
	Message:    "no movable tasks for the requested date",
	StatusCode: http.StatusBadRequest,
}
