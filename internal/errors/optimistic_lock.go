package errors

import "net/http"

var ErrOptimisticLock = &Exception{
	Message:    "task was modified concurrently, reload and retry",
	StatusCode: http.StatusConflict,
}
