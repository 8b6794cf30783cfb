package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoading() bool
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Home(ctx context.Context) error
	Logout(ctx context.Context) error
}

const (
	helpAnonymous     = "Available commands: login, signup, exit"
	helpAuthenticated = "Available commands: home, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the gophauth CLI.
//
// Commands are guarded by the session state:
//
//	Not logged in:
//	  - login          authenticate
//	  - signup         create an account
//
//	Logged in:
//	  - home           show the home screen
//	  - logout         end the session (asks for confirmation)
//
//	Always:
//	  - help           show available commands
//	  - exit | quit    leave the program
//
// Errors returned by handlers are not fatal; handlers print their own
// messages. The loop exits on EOF or exit/quit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	if a.isLoggedIn() {
		_ = a.Home(ctx)
	} else {
		fmt.Fprintln(w, helpAnonymous)
	}

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "gophauth %s> ", statusFn())
		line, err := readLine(reader)
		if err != nil {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(w, "Bye!")
			return
		}
		if a.isLoading() {
			continue
		}

		loggedIn := a.isLoggedIn()
		switch cmd {
		case "help":
			if loggedIn {
				fmt.Fprintln(w, helpAuthenticated)
			} else {
				fmt.Fprintln(w, helpAnonymous)
			}

		case "login", "signup":
			if loggedIn {
				fmt.Fprintln(w, "You are already logged in. Use logout first.")
				continue
			}
			if cmd == "login" {
				_ = a.Login(ctx)
			} else {
				_ = a.Signup(ctx)
			}

		case "home", "logout":
			if !loggedIn {
				fmt.Fprintln(w, "Please login first.")
				continue
			}
			if cmd == "home" {
				_ = a.Home(ctx)
			} else if err := a.Logout(ctx); err == nil && !a.isLoggedIn() {
				fmt.Fprintln(w, helpAnonymous)
			}

		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}
	}
}

// Run blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) error {
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
	return nil
}
