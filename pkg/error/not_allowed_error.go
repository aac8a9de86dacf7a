package error

import "net/http"

type NotAllowedError string

func (err NotAllowedError) Error() string {
	return string(err)
}

func (err NotAllowedError) ErrCode() string {
	return "NOT_ALLOWED_ERROR"
}

func (err NotAllowedError) StatusCode() int {
	return http.StatusForbidden
}
