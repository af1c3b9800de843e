package main

// Default limits for CLI commands.
const (
	DefaultHistoryLimit = 20
	DefaultNoteWidth    = 40
)

// Valid trait kinds for the check command.
var validCheckKinds = []string{"attribute", "numeric"}
