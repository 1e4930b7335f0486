// Package workspace tracks exercise state and progress for a user workspace:
// the ordered exercise collection, the current-exercise cursor, completion
// counts, and the lifecycle operations built on top of them (advance, reset
// from backup, solution lookup, hints). Persistence and hint lookup go
// through the Settings collaborator so they can be substituted in tests.
package workspace
