package core

// # Error Codes Reference
//
// User-facing error codes, grouped by category. Patterns are matched
// case-insensitively against the technical error text; the first match wins.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Data file not found
//	          Action: Check DATA_PATH points at the CSV file
//	          Patterns: "no such file", "cannot find the file"
//
//	FILE002 - Data file not readable
//	          Action: Check file permissions for the service user
//	          Patterns: "permission denied"
//
//	FILE003 - Data file is empty
//	          Action: Provide a CSV with a header row and data rows
//	          Patterns: "empty file"
//
// # CSV Errors (CSV001-CSV099)
//
//	CSV001 - Invalid CSV structure
//	         Action: Ensure the file is comma-separated with balanced quotes
//	         Patterns: "invalid csv"
//
//	CSV002 - Required column missing
//	         Action: The header needs location, time, life_expectancy, fertility_rate
//	         Patterns: "missing required column"
//
// # Dataset Errors (DATA001-DATA099)
//
//	DATA001 - No dataset loaded
//	          Action: Check the server logs for the load error and reload
//	          Patterns: "dataset not loaded"
//
//	DATA002 - Database unavailable
//	          Action: Check DATABASE_URL and that the database is reachable
//	          Patterns: "connection refused", "failed to connect"
//
// # Chart Errors (CHART001-CHART099)
//
//	CHART001 - Unknown country
//	           Action: Pick a country from the list
//	           Patterns: "unknown country"
//
//	CHART002 - Nothing to draw
//	           Action: The selection has no rows with numeric values
//	           Patterns: "no plottable values"
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	         Patterns: "context canceled"
//
//	REQ002 - Request timed out
//	         Patterns: "context deadline exceeded"
//
//	RATE001 - Too many requests
//	          Patterns: "rate limit"
//
//	RATE002 - Export renderer busy
//	          Patterns: "too many concurrent"
//
// # Default Error (ERR000)
//
// Fallback when no specific pattern matches. Check the logs for the
// technical error.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is ordered specific before general.
var errorPatterns = []errorPattern{
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "Data file not found",
			Action:  "Check DATA_PATH points at the CSV file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "cannot find the file",
		msg: UserMessage{
			Message: "Data file not found",
			Action:  "Check DATA_PATH points at the CSV file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "Data file not readable",
			Action:  "Check file permissions for the service user",
			Code:    "FILE002",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "Data file is empty",
			Action:  "Provide a CSV with a header row and data rows",
			Code:    "FILE003",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column missing from the data file",
			Action:  "The header needs location, time, life_expectancy and fertility_rate",
			Code:    "CSV002",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "The data file is not a valid CSV",
			Action:  "Ensure the file is comma-separated with balanced quotes",
			Code:    "CSV001",
		},
	},
	{
		pattern: "dataset not loaded",
		msg: UserMessage{
			Message: "No dataset is loaded",
			Action:  "Check the server logs for the load error and reload",
			Code:    "DATA001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Database unavailable",
			Action:  "Check DATABASE_URL and that the database is reachable",
			Code:    "DATA002",
		},
	},
	{
		pattern: "failed to connect",
		msg: UserMessage{
			Message: "Database unavailable",
			Action:  "Check DATABASE_URL and that the database is reachable",
			Code:    "DATA002",
		},
	},
	{
		pattern: "unknown country",
		msg: UserMessage{
			Message: "Unknown country",
			Action:  "Pick a country from the list",
			Code:    "CHART001",
		},
	},
	{
		pattern: "no plottable values",
		msg: UserMessage{
			Message: "Nothing to draw",
			Action:  "The selection has no rows with numeric values",
			Code:    "CHART002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "too many concurrent",
		msg: UserMessage{
			Message: "Too many exports in progress",
			Action:  "Wait a few seconds and retry the download",
			Code:    "RATE002",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
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

// FormatUserError formats err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific (non-ERR000) message.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
