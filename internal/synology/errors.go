package synology

import (
	"errors"
	"fmt"
)

// ErrOTPUnavailable is returned when the server asks for a one-time code and none could be obtained
var ErrOTPUnavailable = errors.New("could not retrieve OTP")

// AuthError describes a failed login attempt
type AuthError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
