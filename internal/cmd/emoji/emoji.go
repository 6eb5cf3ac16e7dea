// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
const (
	// Success represents successful completion of an operation.
	// Used for: written output files, empty changesets.
	Success = "✓"

	// Error represents failures.
	Error = "✗"

	// Warning represents non-critical issues.
	// Used for: identifiers not found, duplicate keys, skipped records.
	Warning = "!"

	// Info represents informational messages.
	// Used for: preview notices, summaries.
	Info = "i"

	// Added, Changed and Removed mark record changes in summaries.
	Added   = "+"
	Changed = "~"
	Removed = "-"
)
