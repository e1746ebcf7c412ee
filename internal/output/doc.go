// Package output renders pclubgit command results for people and for scripts.
//
// Every command writes through a Printer. In human mode mutating commands
// print nothing on success and read-only commands print plain text (the log
// format is fixed so it stays greppable). With --json every result and every
// error is a single JSON document on stdout:
//
//	// success: {"id": "...", "parent": "...", ...}
//	// failure: {"error": "message", "code": N, "kind": "not_tracked"}
//
// Errors carry an exit code through ExitError:
//
//	output.ExitUserError   // 1: untracked file, message without marker, no repository
//	output.ExitSystemError // 2: I/O failure, corrupt history
//	output.ExitConflict    // 3: already tracked, repository locked or already committed to
//
// Styling is lipgloss based and switches off when stdout is not a terminal
// unless --color always is given.
package output
