package identity

import (
	"errors"
	"strings"

	"google.golang.org/api/googleapi"
)

// AuthError is an authentication failure carrying a message fit to show the user.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }
func (e *AuthError) Unwrap() error { return e.Err }

var authMessages = map[string]string{
	"EMAIL_EXISTS":                "This email address is already registered.",
	"EMAIL_NOT_FOUND":             "Invalid email or password.",
	"INVALID_PASSWORD":            "Invalid email or password.",
	"INVALID_LOGIN_CREDENTIALS":   "Invalid email or password.",
	"INVALID_EMAIL":               "The email address is badly formatted.",
	"MISSING_PASSWORD":            "A password is required.",
	"MISSING_EMAIL":               "An email address is required.",
	"WEAK_PASSWORD":               "Password should be at least 6 characters.",
	"USER_DISABLED":               "This account has been disabled.",
	"TOO_MANY_ATTEMPTS_TRY_LATER": "Too many attempts. Try again later.",
	"OPERATION_NOT_ALLOWED":       "Email and password sign-in is disabled for this project.",
}

// translateError turns an Identity Toolkit error into an AuthError. Error codes arrive as
// the message of a googleapi.Error, optionally followed by " : detail".
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	code := apiErr.Message
	if i := strings.Index(code, " : "); i >= 0 {
		code = code[:i]
	}
	code = strings.TrimSpace(code)
	if msg, ok := authMessages[code]; ok {
		return &AuthError{Code: code, Message: msg, Err: err}
	}
	msg := apiErr.Message
	if msg == "" {
		msg = "Authentication failed."
	}
	return &AuthError{Code: code, Message: msg, Err: err}
}
