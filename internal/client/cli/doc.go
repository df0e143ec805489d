// Package cli provides the interactive forum terminal client.
//
// It wires configuration, the local session store, the auth endpoint client
// and an interactive REPL. On start the signed-in user is restored from the
// session store, a background watcher polls server reachability, and the
// landing page is rendered.
//
// Key features:
//   - Login / Register through the auth dialog, Logout
//   - Tab navigation and topic search
//   - Online/offline indicator in the prompt
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
