// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"lumen-tools/pkg/semver"
)

const (
	// AppName is the application name.
	AppName = "lumen-tools"

	// VersionLocal is the requested-version sentinel meaning "use the locally
	// installed lumen-ui package". Defined here (and mirrored in
	// internal/registry) to avoid coupling config to the registry package.
	VersionLocal = "local"

	// DefaultFilename is the destination base filename for build artifacts.
	DefaultFilename = "lumen-ui"

	// DefaultCacheDir is the relative directory used to cache fetched
	// package versions across invocations.
	DefaultCacheDir = ".lumen-cache"

	// DefaultRegistry is the package registry queried for remote versions.
	DefaultRegistry = "https://registry.npmjs.org"
)

// ErrNoOptions is the sentinel wrapped by ConfigurationError when no build
// options were given at all.
var ErrNoOptions = errors.New("no build options given")

type (
	// Options pins a single build invocation: where artifacts go, which
	// package version and module subset to build, and the optional theme.
	Options struct {
		// Destination is the output directory for build artifacts. Required.
		Destination string `json:"destination" mapstructure:"destination"`
		// Filename is the destination base filename (e.g. "lumen-ui" yields
		// lumen-ui.js, lumen-ui.min.css, ...).
		Filename string `json:"filename" mapstructure:"filename"`
		// Version is the requested lumen-ui version, or VersionLocal.
		Version string `json:"version" mapstructure:"version"`
		// Modules is the requested module subset by short name (e.g.
		// "tooltip"). Empty means every module the package ships.
		Modules []string `json:"modules,omitempty" mapstructure:"modules"`
		// Cache is the directory for the on-disk package cache.
		Cache string `json:"cache" mapstructure:"cache"`
		// Registry is the package registry base URL.
		Registry string `json:"registry" mapstructure:"registry"`
		// Theme, when set, enables the precompiled static theme stylesheet.
		Theme *Theme `json:"theme,omitempty" mapstructure:"theme"`
	}

	// Theme specifies the palettes for a static theme build.
	Theme struct {
		// Primary is the primary palette name (e.g. "indigo").
		Primary string `json:"primary" mapstructure:"primary"`
		// Accent is the accent palette name.
		Accent string `json:"accent" mapstructure:"accent"`
		// Warn is the warn palette name.
		Warn string `json:"warn" mapstructure:"warn"`
		// Dark selects the dark variant of the theme.
		Dark bool `json:"dark" mapstructure:"dark"`
	}

	// ConfigurationError reports invalid or missing build options. It is
	// always raised before any resolution work begins.
	ConfigurationError struct {
		// Field names the offending option, when attributable.
		Field string
		// Cause is the underlying validation failure.
		Cause error
	}
)

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration: %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("invalid configuration: %v", e.Cause)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// ApplyDefaults returns a copy of opts with every unset field replaced by
// its default. Pure: the input is never mutated.
func ApplyDefaults(opts Options) Options {
	out := opts
	if strings.TrimSpace(out.Filename) == "" {
		out.Filename = DefaultFilename
	}
	if strings.TrimSpace(out.Version) == "" {
		out.Version = VersionLocal
	}
	if strings.TrimSpace(out.Cache) == "" {
		out.Cache = DefaultCacheDir
	}
	if strings.TrimSpace(out.Registry) == "" {
		out.Registry = DefaultRegistry
	}
	return out
}

// Validate checks opts for use by a build. It expects defaults to have been
// applied already and reports the first problem as a ConfigurationError.
func (o Options) Validate() error {
	if o.isZero() {
		return &ConfigurationError{Cause: ErrNoOptions}
	}
	if strings.TrimSpace(o.Destination) == "" {
		return &ConfigurationError{Field: "destination", Cause: errors.New("destination directory is required")}
	}
	if o.Version != VersionLocal && !semver.IsValid(o.Version) {
		return &ConfigurationError{
			Field: "version",
			Cause: fmt.Errorf("%q is neither %q nor a semantic version", o.Version, VersionLocal),
		}
	}
	for _, m := range o.Modules {
		if strings.TrimSpace(m) == "" {
			return &ConfigurationError{Field: "modules", Cause: errors.New("module names must be non-empty")}
		}
	}
	if o.Theme != nil {
		for field, val := range map[string]string{
			"theme.primary": o.Theme.Primary,
			"theme.accent":  o.Theme.Accent,
			"theme.warn":    o.Theme.Warn,
		} {
			if strings.TrimSpace(val) == "" {
				return &ConfigurationError{Field: field, Cause: errors.New("palette name is required")}
			}
		}
	}
	return validateSchema(o)
}

// isZero reports whether no option was supplied at all. Options holds a
// slice, so it cannot be compared with == directly.
func (o Options) isZero() bool {
	return o.Destination == "" && o.Filename == "" && o.Version == "" &&
		len(o.Modules) == 0 && o.Cache == "" && o.Registry == "" && o.Theme == nil
}
