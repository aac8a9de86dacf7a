package error

import "net/http"

// CredentialError signals a missing or expired platform credential. The
// operation should not be retried until the owner reconnects the account.
type CredentialError string

func (err CredentialError) Error() string {
	return string(err)
}

func (err CredentialError) ErrCode() string {
	return "CREDENTIAL_ERROR"
}

func (err CredentialError) StatusCode() int {
	return http.StatusUnauthorized
}
