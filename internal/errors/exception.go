package errors

import (
	"errors"
	"net/http"
)

// Exception is an application error that knows which HTTP status it
// should surface as.
type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

// NewValidation wraps a field-level validation failure.
func NewValidation(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusBadRequest}
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
