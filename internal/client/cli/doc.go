// Package cli provides the interactive EduStream terminal storefront.
//
// It wires configuration, the local session store, the API gateway and the
// client services behind a small REPL. On start the stored session is
// checked, a background watcher keeps the connectivity mode current, and
// user commands are executed until the user exits.
//
// Commands:
//   - register / login / logout / status
//   - courses, add <id>, remove <id>, cart, checkout
//   - dashboard, order <id>
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
