// SPDX-License-Identifier: MPL-2.0

// Package builder assembles build artifacts from a ResolvedBuild: the
// concatenated and minified JS bundle with its source map, the layout and
// no-layout CSS bundle variants, and the optional precompiled static theme
// stylesheet. The Orchestrator sequences resolution and fans the independent
// builds out concurrently.
package builder

import "fmt"

type (
	// Artifact is a named build output, relative to the destination
	// directory, with its final content.
	Artifact struct {
		Name    string
		Content []byte
	}

	// MinificationError indicates that the minifier rejected its input.
	// Minification failures always abort the build; output is never
	// silently degraded to the unminified form.
	MinificationError struct {
		// Context names the bundle being minified.
		Context string
		Cause   error
	}

	// CompilationError indicates a stylesheet compiler failure, with the
	// bundle or file being compiled attached for diagnostics.
	CompilationError struct {
		Context string
		Cause   error
	}
)

func (e *MinificationError) Error() string {
	return fmt.Sprintf("minification failed for %s: %v", e.Context, e.Cause)
}

func (e *MinificationError) Unwrap() error { return e.Cause }

func (e *CompilationError) Error() string {
	return fmt.Sprintf("stylesheet compilation failed for %s: %v", e.Context, e.Cause)
}

func (e *CompilationError) Unwrap() error { return e.Cause }
