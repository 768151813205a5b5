package appctx

import (
	"fmt"
	"strings"
)

// UnrecognizedFormatError means the raw document matched neither known
// export shape. It is recoverable: the caller should re-prompt for a
// supported export rather than abort.
type UnrecognizedFormatError struct {
	PresentFields []string
	Suggestions   []string
}

func (e *UnrecognizedFormatError) Error() string {
	msg := "unrecognized context format"
	if len(e.PresentFields) > 0 {
		msg += fmt.Sprintf(" (top-level fields seen: %s)", strings.Join(e.PresentFields, ", "))
	}
	return withSuggestions(msg, e.Suggestions)
}

// IncompleteDataError means the document matched a known shape but is
// missing fields the engine cannot work without.
type IncompleteDataError struct {
	MissingFields []string
	Suggestions   []string
}

func (e *IncompleteDataError) Error() string {
	msg := "incomplete context data: missing " + strings.Join(e.MissingFields, ", ")
	return withSuggestions(msg, e.Suggestions)
}

// withSuggestions appends remediation suggestions to an error message,
// one bullet per line, so every surface that prints the error shows the
// guidance without translating it.
func withSuggestions(msg string, suggestions []string) string {
	for _, s := range suggestions {
		msg += "\n  - " + s
	}
	return msg
}
