package error

import "net/http"

// GenerationError signals that the AI provider failed to produce content.
// Nothing was persisted, so the same occurrence fires again on a later pass.
type GenerationError string

func (err GenerationError) Error() string {
	return string(err)
}

func (err GenerationError) ErrCode() string {
	return "GENERATION_ERROR"
}

func (err GenerationError) StatusCode() int {
	return http.StatusBadGateway
}
