package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/dmitrijs2005/gophauth/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// errFormInvalid is returned when a form is rejected before reaching the
// session manager. The field messages have already been printed.
var errFormInvalid = errors.New("form has errors")

// Signup prompts for name, email and password and creates the account.
// On success the home screen is shown.
func (a *App) Signup(ctx context.Context) error {
	return a.signupWith(ctx, "", "")
}

// signupWith prompts only for the values not given.
func (a *App) signupWith(ctx context.Context, name, email string) error {
	var err error
	if name == "" {
		if name, err = getSimpleText(a.reader, "Full Name", a.out); err != nil {
			return err
		}
	}
	if email == "" {
		if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return err
		}
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.formOK(checkName(name), checkEmail(email), checkPassword(password)) {
		return errFormInvalid
	}
	a.println("Password strength:", PasswordStrength(password))

	if err := a.session.Signup(ctx, name, email, password); err != nil {
		a.log.Debug(ctx, "signup failed", "error", err)
		a.println(services.Message(err, "An error occurred during signup"))
		return err
	}

	a.println("Account created.")
	return a.Home(ctx)
}

// Login prompts for credentials and starts a session. On success the home
// screen is shown.
func (a *App) Login(ctx context.Context) error {
	return a.loginWith(ctx, "")
}

func (a *App) loginWith(ctx context.Context, email string) error {
	var err error
	if email == "" {
		if email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return err
		}
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if !a.formOK(checkEmail(email), checkPassword(password)) {
		return errFormInvalid
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		a.log.Debug(ctx, "login failed", "error", err)
		a.println(services.Message(err, "Invalid email or password"))
		return err
	}

	return a.Home(ctx)
}

// Logout asks for confirmation and ends the session.
func (a *App) Logout(ctx context.Context) error {
	return a.logout(ctx, false)
}

func (a *App) logout(ctx context.Context, confirmed bool) error {
	if !confirmed {
		answer, err := getSimpleText(a.reader, "Are you sure you want to logout? [y/N]", a.out)
		if err != nil {
			return err
		}
		if !isYes(answer) {
			a.println("Cancelled.")
			return nil
		}
	}

	if err := a.session.Logout(ctx); err != nil {
		a.println("Failed to logout. Please try again.")
		return err
	}
	a.println("Logged out.")
	return nil
}

// formOK prints every non-empty field message and reports whether there
// were none.
func (a *App) formOK(msgs ...string) bool {
	ok := true
	for _, m := range msgs {
		if m != "" {
			a.println("  *", m)
			ok = false
		}
	}
	return ok
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "logout":
		return true
	}
	return false
}
