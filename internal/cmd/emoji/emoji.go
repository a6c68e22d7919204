// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants give status lines a consistent look across commands.
const (
	// Success marks a completed operation or a resolved query.
	Success = "✓"

	// Error marks a failure or an unresolved query.
	Error = "✗"

	// Warning marks a non-fatal problem such as a skipped record.
	Warning = "!"

	// Info marks informational messages.
	Info = "i"
)
