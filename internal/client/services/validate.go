package services

import (
	"regexp"
	"unicode/utf8"
)

// MinPasswordLength is counted in characters, not bytes.
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// StrongEnough reports whether password meets MinPasswordLength.
func StrongEnough(password []byte) bool {
	return utf8.RuneCount(password) >= MinPasswordLength
}
