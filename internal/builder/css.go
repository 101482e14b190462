// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lumen-tools/internal/config"
	"lumen-tools/internal/resolver"
	"lumen-tools/internal/transform"
	"lumen-tools/pkg/semver"
)

// layoutStylesheets is the fixed set of layout-utility stylesheets excluded
// from the no-layout bundle variant, by base filename.
var layoutStylesheets = map[string]bool{
	"layout.css":            true,
	"layout-attributes.css": true,
}

// scssDir is the package directory holding the shared SCSS partials a
// static theme compilation needs.
var scssDir = filepath.Join("modules", "scss")

// themeBaseFiles are the variable/mixin partials prepended to every static
// theme compilation, in order.
var themeBaseFiles = []string{"_variables.scss", "_mixins.scss"}

// legacyMixinsFile holds the theming mixins in releases before
// legacyMixinsUntil, which shipped them in the layout partial instead of
// _mixins.scss.
const legacyMixinsFile = "_layout.scss"

var legacyMixinsUntil = semver.MustParse("1.1.0")

type (
	// StylesheetSet is one compiled stylesheet in source and minified form.
	StylesheetSet struct {
		Source     []byte
		Compressed []byte
	}

	// CSSResult holds the two CSS bundle variants.
	CSSResult struct {
		// Layout includes every resolved style file.
		Layout StylesheetSet
		// NoLayout excludes the layout-utility stylesheets.
		NoLayout StylesheetSet
	}

	// CSSBuilder compiles resolved stylesheet sources into the CSS bundle
	// variants and the optional static theme stylesheet.
	CSSBuilder struct {
		Compiler transform.Compiler
		Minifier transform.Minifier
	}
)

// Build compiles the layout and no-layout bundle variants from the resolved
// style sources, in dependency order.
func (b *CSSBuilder) Build(resolved *resolver.ResolvedBuild) (*CSSResult, error) {
	var all, noLayout []string
	for _, path := range resolved.Files.StylePaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read style source %s: %w", path, err)
		}
		all = append(all, string(data))
		if !layoutStylesheets[filepath.Base(path)] {
			noLayout = append(noLayout, string(data))
		}
	}

	result := &CSSResult{}
	var err error
	if result.Layout, err = b.compileAndMinify(strings.Join(all, "\n"), "css bundle"); err != nil {
		return nil, err
	}
	if result.NoLayout, err = b.compileAndMinify(strings.Join(noLayout, "\n"), "no-layout css bundle"); err != nil {
		return nil, err
	}
	return result, nil
}

// BuildTheme compiles the precompiled static theme stylesheet: the base
// SCSS partials, the generated theme variables, and every resolved
// theme-definition source in module order.
func (b *CSSBuilder) BuildTheme(resolved *resolver.ResolvedBuild, theme config.Theme) (*StylesheetSet, error) {
	base := themeBaseFiles
	if resolved.Version.Before(legacyMixinsUntil) {
		base = append(append([]string{}, base...), legacyMixinsFile)
	}

	var parts []string
	for _, name := range base {
		path := filepath.Join(resolved.Root, scssDir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &CompilationError{Context: path, Cause: err}
		}
		parts = append(parts, string(data))
	}

	parts = append(parts, ThemeVariables(theme))

	for _, path := range resolved.Files.ThemePaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read theme source %s: %w", path, err)
		}
		parts = append(parts, string(data))
	}

	compiled, err := b.Compiler.Compile(strings.Join(parts, "\n"))
	if err != nil {
		return nil, &CompilationError{Context: "theme stylesheet", Cause: err}
	}

	finished := ThemeStylesheet(theme, compiled)
	compressed, err := b.Minifier.MinifyCSS(finished)
	if err != nil {
		return nil, &MinificationError{Context: "theme stylesheet", Cause: err}
	}
	return &StylesheetSet{Source: []byte(finished), Compressed: compressed}, nil
}

func (b *CSSBuilder) compileAndMinify(source, context string) (StylesheetSet, error) {
	compiled, err := b.Compiler.Compile(source)
	if err != nil {
		return StylesheetSet{}, &CompilationError{Context: context, Cause: err}
	}
	compressed, err := b.Minifier.MinifyCSS(compiled)
	if err != nil {
		return StylesheetSet{}, &MinificationError{Context: context, Cause: err}
	}
	return StylesheetSet{Source: []byte(compiled), Compressed: compressed}, nil
}
