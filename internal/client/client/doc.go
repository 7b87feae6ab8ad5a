// Package client contains the roster client's backend plumbing.
//
// # Overview
//
// The package provides:
//  1. GRPCClient, the remote persistence backend. It implements
//     services.Repository on top of the roster gRPC service, bounds every call
//     with a timeout and maps gRPC status codes back to the sentinel errors in
//     internal/common.
//  2. WatchOnline, a polling loop that reports when the server becomes
//     reachable or unreachable.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations): opens the
//     SQLite database and applies the embedded goose migrations.
//
// # Error Handling
//
// Transport failures surface as ErrUnavailable. Domain failures keep their
// meaning across the wire: AlreadyExists becomes common.ErrDuplicateKey,
// NotFound becomes common.ErrorNotFound and InvalidArgument becomes
// common.ErrorValidation.
package client
