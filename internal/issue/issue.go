// SPDX-License-Identifier: MPL-2.0

// Package issue provides the user-facing error wrapper for the build
// pipeline. Resolution and build failures are wrapped with the operation
// that failed, the resource involved, and suggestions for fixing the
// problem, so the CLI can render something more helpful than a bare error
// chain.
package issue

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// ActionableError is an error with context for user-facing error messages.
// It records what operation failed, what resource was involved, and hints
// for how to fix the issue.
type ActionableError struct {
	// Operation describes what was being attempted (e.g., "resolve package version").
	Operation string

	// Resource identifies the file, path, or entity involved (optional).
	Resource string

	// Suggestions provides hints on how to fix the issue (optional).
	Suggestions []string

	// Cause is the underlying error that triggered this error (optional).
	Cause error
}

// Wrap wraps an error with operation context. Returns nil for a nil error.
func Wrap(err error, operation string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{
		Operation: operation,
		Cause:     err,
	}
}

// WrapResource wraps an error with operation and resource context.
// Returns nil for a nil error.
func WrapResource(err error, operation, resource string) *ActionableError {
	if err == nil {
		return nil
	}
	return &ActionableError{
		Operation: operation,
		Resource:  resource,
		Cause:     err,
	}
}

// WithSuggestions appends suggestions, skipping duplicates, and returns the
// error for chaining.
func (e *ActionableError) WithSuggestions(sugs ...string) *ActionableError {
	for _, s := range sugs {
		if !slices.Contains(e.Suggestions, s) {
			e.Suggestions = append(e.Suggestions, s)
		}
	}
	return e
}

// Error implements the error interface.
// Returns a concise message suitable for default (non-verbose) output.
func (e *ActionableError) Error() string {
	var msg strings.Builder

	msg.WriteString("failed to ")
	msg.WriteString(e.Operation)

	if e.Resource != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Resource)
	}

	if e.Cause != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Cause.Error())
	}

	return msg.String()
}

// Unwrap returns the underlying cause for use with errors.Is/As.
func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns a formatted message with optional verbosity.
//
// When verbose is false:
//
//	failed to <operation>: <resource>: <cause message>
//	  • <suggestion 1>
//	  • <suggestion 2>
//
// When verbose is true, additionally includes the full error chain.
func (e *ActionableError) Format(verbose bool) string {
	var msg strings.Builder

	msg.WriteString(e.Error())

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		err := e.Cause
		depth := 1
		for err != nil {
			fmt.Fprintf(&msg, "\n  %d. %s", depth, err.Error())
			err = errors.Unwrap(err)
			depth++
		}
	}

	return msg.String()
}
