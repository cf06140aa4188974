package main

// Exit codes shared by all dtbib commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (no source configured, invalid paths)
	ExitDataError   = 3 // Data error (no matching entry, missing export file)
)
