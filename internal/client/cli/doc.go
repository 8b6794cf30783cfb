// Package cli provides the gophauth terminal front end.
//
// It wires configuration, the selected key-value store and the session
// manager, then either runs an interactive REPL or a single cobra
// subcommand. Every entry point restores the persisted session first, so a
// login in one process is visible to the next.
//
// Screens:
//   - login, signup   available while nobody is logged in
//   - home, logout    available while a user is logged in
//
// The REPL is started by the root command and blocks until the user exits.
// See NewRootCommand, App and runREPL for details.
package cli
