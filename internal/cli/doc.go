// Package cli provides the interactive task tracker command line.
//
// It wires configuration, the local sqlite store, the authentication service,
// and the session manager into an interactive REPL. Typical flow: restore any
// persisted session, prompt for credentials when there is none, and execute
// user commands.
//
// Key features:
//   - Login / Logout against the local credential store
//   - Session inspection and extension
//   - Task listing, creation, status updates, deletion and comments
//   - Account creation (administrators only)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
