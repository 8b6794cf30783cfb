package services

import "errors"

// Error kinds returned by the session manager. Match them with errors.Is.
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long for the hashing scheme")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStorage            = errors.New("storage failure")
)

var messages = []struct {
	err  error
	text string
}{
	{ErrInvalidCredentials, "Invalid email or password"},
	{ErrInvalidEmail, "Invalid email format"},
	{ErrWeakPassword, "Password must be at least 6 characters"},
	{ErrPasswordTooLong, "Password is too long"},
	{ErrDuplicateUser, "User with this email already exists"},
}

// Message returns the text shown to the user for err, or fallback when err
// is not one of the validation kinds.
func Message(err error, fallback string) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.text
		}
	}
	return fallback
}
