package cli

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/gophauth/internal/client/services"
)

// Field messages shown next to the form before anything is submitted.
const (
	msgNameRequired  = "Name is required"
	msgNameShort     = "Name must be at least 2 characters"
	msgEmailRequired = "Email is required"
	msgEmailInvalid  = "Please enter a valid email address"
	msgPwdRequired   = "Password is required"
	msgPwdShort      = "Password must be at least 6 characters"
)

// checkName returns the field error for name, or "".
func checkName(name string) string {
	n := strings.TrimSpace(name)
	switch {
	case n == "":
		return msgNameRequired
	case utf8.RuneCountInString(n) < 2:
		return msgNameShort
	}
	return ""
}

func checkEmail(email string) string {
	switch {
	case strings.TrimSpace(email) == "":
		return msgEmailRequired
	case !services.ValidEmail(email):
		return msgEmailInvalid
	}
	return ""
}

// checkPassword treats an all-blank password as missing. The length is
// checked on the raw input.
func checkPassword(pw []byte) string {
	switch {
	case len(strings.TrimSpace(string(pw))) == 0:
		return msgPwdRequired
	case !services.StrongEnough(pw):
		return msgPwdShort
	}
	return ""
}

// PasswordStrength rates pw by length: "" when empty, then Weak, Medium
// and Strong at 6 and 10 characters.
func PasswordStrength(pw []byte) string {
	n := utf8.RuneCount(pw)
	switch {
	case n == 0:
		return ""
	case n < services.MinPasswordLength:
		return "Weak"
	case n < 10:
		return "Medium"
	}
	return "Strong"
}

// Initials returns the upper-cased first letters of the first two words
// of name.
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, w := range strings.Split(name, " ") {
		if w == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
		count++
		if count == 2 {
			break
		}
	}
	return cases.Upper(language.Und).String(b.String())
}
