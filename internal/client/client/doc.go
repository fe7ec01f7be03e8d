// Package client contains the client-side transport for the lifemgmt
// Credential Store.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     login, register, logout, password reset, current-user lookup and
//     token verification.
//  2. A concrete REST implementation (see HTTPClient) that holds the bearer
//     session token, attaches it to authenticated calls and decodes
//     `{message}` bodies of failed requests into *RemoteError.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database with embedded goose migrations.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable; any non-2xx answer is a
// *RemoteError, and a 401 additionally matches ErrUnauthorized with errors.Is.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client
