// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed options_schema.cue
var optionsSchema string

// validateSchema unifies the options with the embedded CUE schema. The
// schema is the single source of truth for structural constraints; the Go
// checks in Validate exist only to produce friendlier field errors first.
func validateSchema(o Options) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(optionsSchema)
	if schema.Err() != nil {
		return fmt.Errorf("internal error: failed to compile options schema: %w", schema.Err())
	}

	root := schema.LookupPath(cue.ParsePath("#Options"))
	if root.Err() != nil {
		return fmt.Errorf("internal error: schema definition #Options not found: %w", root.Err())
	}

	unified := root.Unify(ctx.Encode(o))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ConfigurationError{Cause: err}
	}
	return nil
}
