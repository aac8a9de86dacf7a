package error

// GenericError is implemented by all typed errors in this package so the
// HTTP recovery layer can translate them into a response.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
