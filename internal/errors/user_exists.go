package errors

import "net/http"

var ErrUserExists = &Exception{
	Message:    "user already exists",
	StatusCode: http.StatusConflict,
}
