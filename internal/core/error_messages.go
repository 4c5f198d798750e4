// Package core provides the roster, its CSV codec and the record rules.
//
// # Error Codes Reference
//
// This file defines the user-facing error messages with codes. When an
// operation fails, the menu shows the mapped message; the code makes a
// report like "I keep getting VAL002" unambiguous.
//
// Error codes are grouped by category:
//
// # Roster Errors (REC001-REC099)
//
//	REC001 - Duplicate identifier: the ID is already taken
//	         Action: Pick a different ID, or let an import rename it
//	         Patterns: "duplicate identifier"
//
//	REC002 - Bad position: no record at that position
//	         Action: List the roster to see the current positions
//	         Patterns: "index out of range"
//
//	REC003 - Empty roster: nothing to export
//	         Action: Add or import records first
//	         Patterns: "no records to export"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Required field: ID, Name or Surname is empty
//	         Patterns: "required field"
//
//	VAL002 - Invalid date: the date did not parse
//	         Action: Use YYYY-MM-DD, for example 2004-06-15
//	         Patterns: "yyyy-mm-dd"
//
//	VAL003 - Invalid number: the grade average did not parse
//	         Patterns: "not a number"
//
//	VAL004 - Out of range: the grade average is outside 0 to 4
//	         Patterns: "must be between"
//
//	VAL005 - Invalid email: the address did not parse
//	         Patterns: "not a valid email"
//
//	VAL006 - Bad answer: a yes/no prompt got something else
//	         Patterns: "answer yes or no"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: the file exceeds the import size limit
//	          Patterns: "file too large"
//
//	FILE002 - File not found
//	          Patterns: "no such file"
//
//	FILE003 - Permission denied
//	          Patterns: "permission denied"
//
//	FILE004 - Oversized line: a single line exceeded the line cap,
//	          which usually means the file is not a roster CSV
//	          Patterns: "token too long"
//
// # Archive Errors (ARC001-ARC099)
//
//	ARC001 - Archive busy: another process holds the archive
//	         Patterns: "database is locked"
//
//	ARC002 - Archive unreachable: the archive file cannot be opened
//	         Patterns: "unable to open database"
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. The log carries the original
// technical error.
//
// # Pattern Matching
//
// Patterns are matched case-insensitively with strings.Contains against
// the full error chain. The first matching pattern wins, so more
// specific patterns come before general ones.
package core

import (
	"fmt"
	"strings"
)

// UserMessage is user-facing error information with actionable guidance.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // code to quote when reporting the problem
}

// errorPattern pairs a substring to match with its user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user
// messages. First match wins; keep specific patterns before general
// ones and keep the package documentation above in step with the list.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Roster Errors (REC001-REC003)
	// =========================================================================
	{
		pattern: "duplicate identifier",
		msg: UserMessage{
			Message: "That identifier is already taken",
			Action:  "Pick a different ID, or let an import rename it",
			Code:    "REC001",
		},
	},
	{
		pattern: "index out of range",
		msg: UserMessage{
			Message: "There is no record at that position",
			Action:  "List the roster to see the current positions",
			Code:    "REC002",
		},
	},
	{
		pattern: "no records to export",
		msg: UserMessage{
			Message: "The roster is empty, so there is nothing to export",
			Action:  "Add or import records first",
			Code:    "REC003",
		},
	},

	// =========================================================================
	// Validation Errors (VAL001-VAL006)
	// =========================================================================
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "A required field is empty",
			Action:  "ID, Name and Surname must all have values",
			Code:    "VAL001",
		},
	},
	{
		pattern: "yyyy-mm-dd",
		msg: UserMessage{
			Message: "That is not a valid date",
			Action:  "Use YYYY-MM-DD, for example 2004-06-15",
			Code:    "VAL002",
		},
	},
	{
		pattern: "not a number",
		msg: UserMessage{
			Message: "That is not a valid number",
			Action:  "Use a plain decimal, for example 3.5",
			Code:    "VAL003",
		},
	},
	{
		pattern: "must be between",
		msg: UserMessage{
			Message: "The grade average is out of range",
			Action:  "Use a value between 0 and 4",
			Code:    "VAL004",
		},
	},
	{
		pattern: "not a valid email",
		msg: UserMessage{
			Message: "That is not a valid email address",
			Action:  "Use the name@example.com form, or leave it empty",
			Code:    "VAL005",
		},
	},
	{
		pattern: "answer yes or no",
		msg: UserMessage{
			Message: "The answer was not recognised",
			Action:  "Answer yes or no",
			Code:    "VAL006",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE004)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the import size limit",
			Action:  "Split the file, or raise IMPORT_MAX_FILE_SIZE",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "The file was not found",
			Action:  "Check the path and try again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "The file cannot be accessed",
			Action:  "Check the file permissions",
			Code:    "FILE003",
		},
	},
	{
		pattern: "token too long",
		msg: UserMessage{
			Message: "A line in the file is far too long",
			Action:  "Check that the file really is a roster CSV",
			Code:    "FILE004",
		},
	},

	// =========================================================================
	// Archive Errors (ARC001-ARC002)
	// =========================================================================
	{
		pattern: "database is locked",
		msg: UserMessage{
			Message: "The archive is in use by another process",
			Action:  "Close the other copy and try again",
			Code:    "ARC001",
		},
	},
	{
		pattern: "unable to open database",
		msg: UserMessage{
			Message: "The archive file cannot be opened",
			Action:  "Check that ARCHIVE_PATH points to a writable location",
			Code:    "ARC002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000). The log
// carries the original technical error for this case.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Try again, and check the log if it keeps happening",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-facing message. It
// searches the known patterns case-insensitively and returns the first
// match, or the ERR000 fallback when nothing matches.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError renders an error for display as
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matched a specific pattern rather
// than the ERR000 fallback. Callers show the mapped message for
// user-facing errors and log the raw error for the rest.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
