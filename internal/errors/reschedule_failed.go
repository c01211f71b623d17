package errors

import "net/http"

var ErrRescheduleFailed = &Exception{
	Message:    "rescheduler failed to produce a schedule",
	StatusCode: http.StatusBadGateway,
}
