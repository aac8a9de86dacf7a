package error

import "net/http"

// ConflictError signals that another pass already claimed this occurrence.
// It is an expected outcome under concurrent triggers, not a failure.
type ConflictError string

func (err ConflictError) Error() string {
	return string(err)
}

func (err ConflictError) ErrCode() string {
	return "CONFLICT_ERROR"
}

func (err ConflictError) StatusCode() int {
	return http.StatusConflict
}
