package error

import "net/http"

// PublishError signals that the target platform rejected or failed the
// publish call. The post stays stored as failed for manual retry.
type PublishError string

func (err PublishError) Error() string {
	return string(err)
}

func (err PublishError) ErrCode() string {
	return "PUBLISH_ERROR"
}

func (err PublishError) StatusCode() int {
	return http.StatusBadGateway
}
