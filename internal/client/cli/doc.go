// Package cli provides the interactive lifemgmt command-line client.
//
// It wires configuration, the local token store, the Credential Store API
// client and the session controller behind a small REPL. The REPL keeps a
// current view (see Router); protected views are only rendered while the
// session is authenticated, otherwise the client is sent to /login.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartSessionWatcher, and runREPL for details.
package cli
