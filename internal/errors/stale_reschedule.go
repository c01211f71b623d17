package errors

import "net/http"

// ErrStaleReschedule is returned when a rescheduler result refers to a
// task that was edited after the reschedule request was built.
var ErrStaleReschedule = &Exception{
	Message:    "schedule is out of date, reload and retry",
	StatusCode: http.StatusConflict,
}
