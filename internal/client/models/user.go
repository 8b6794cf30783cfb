package models

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// User is the identity kept as the active session. It never carries a
// credential.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserWithSecret is a directory record: a User plus its encoded credential.
// The JSON layout is shared with other clients of the same directory blob.
type UserWithSecret struct {
	User
	Password string `json:"password"`
}

// Strip returns the record without its credential.
func (u UserWithSecret) Strip() User {
	return u.User
}

// NormalizeEmail returns the canonical form used for directory lookups.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(email)
}
