// Package cli provides the interactive signbook terminal client.
//
// The client opens the same store the web server uses and exposes the
// record operations as REPL commands:
//   - list, show <id>
//   - add, update <id>, delete <id>
//   - export <id> [path] writes a stored signature to disk
//
// Prompts are printed only when stdin is a terminal, so commands can be
// piped in from a script. The REPL is started via App.Run(ctx), which
// blocks until the user exits or input ends.
package cli
