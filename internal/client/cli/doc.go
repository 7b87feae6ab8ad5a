// Package cli provides the interactive roster command-line client.
//
// It wires configuration, the chosen persistence backend (local SQLite or the
// remote roster server), the roster store and a router, then runs a REPL.
// Screens (list, add, detail, edit, settings) are reached through the router
// so the current location can always be printed and restored with "go".
//
// Commands:
//   - list [query] [-reg] [-sort recent|alphabetical]
//   - add, show <id>, edit <id>, settings, go <token>
//   - delete <id>, deleteall
//   - import <file.xlsx>, export [file.xlsx]
//   - print [reg], check <first> [last]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
