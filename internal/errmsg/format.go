// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Store operations
	OpStoreOpen Op = "open play database"
	OpStoreRead Op = "read play counts"
	OpRefresh   Op = "refresh play counts"

	// Configuration
	OpConfigLoad Op = "load configuration"
	OpLogOpen    Op = "open log file"

	// Tracker
	OpTrackerStart Op = "start tracker"

	// Last.fm
	OpLastfmLink    Op = "link Last.fm account"
	OpLastfmSession Op = "load Last.fm session"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
