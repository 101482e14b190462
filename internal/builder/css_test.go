// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"errors"
	"strings"
	"testing"

	"lumen-tools/internal/config"
)

var testTheme = config.Theme{Primary: "indigo", Accent: "pink", Warn: "red"}

func TestCSSBuilder_LayoutVariants(t *testing.T) {
	t.Parallel()

	root := writePackage(t)
	resolved := resolveFixture(t, root, "1.2.0")

	b := &CSSBuilder{Compiler: &fakeCompiler{}, Minifier: &fakeMinifier{}}
	result, err := b.Build(resolved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	layout := string(result.Layout.Source)
	noLayout := string(result.NoLayout.Source)

	for _, want := range []string{".lumen-core {}", ".lumen-layout-row {}", "[lumen-layout] {}", ".lumen-tooltip {}"} {
		if !strings.Contains(layout, want) {
			t.Errorf("layout bundle missing %q", want)
		}
	}
	if strings.Contains(noLayout, ".lumen-layout-row") || strings.Contains(noLayout, "[lumen-layout]") {
		t.Errorf("no-layout bundle must exclude layout stylesheets: %q", noLayout)
	}
	if !strings.Contains(noLayout, ".lumen-tooltip {}") {
		t.Errorf("no-layout bundle missing component styles: %q", noLayout)
	}

	// Theme files never leak into the CSS bundles.
	if strings.Contains(layout, "lumen-core-theme") {
		t.Errorf("layout bundle must exclude theme stylesheets: %q", layout)
	}

	if !strings.HasPrefix(string(result.Layout.Compressed), "min:") {
		t.Errorf("layout bundle not minified: %q", result.Layout.Compressed)
	}
}

func TestCSSBuilder_BuildTheme(t *testing.T) {
	t.Parallel()

	root := writePackage(t)
	resolved := resolveFixture(t, root, "1.2.0")

	b := &CSSBuilder{Compiler: &fakeCompiler{}, Minifier: &fakeMinifier{}}
	set, err := b.BuildTheme(resolved, testTheme)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(set.Source)
	for _, want := range []string{
		"--lumen-theme-primary: indigo;",
		"$lumen-base: 8px;",
		"@mixin lumen-shadow()",
		"$lumen-theme-primary: indigo;",
		".lumen-tooltip-theme {}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("theme stylesheet missing %q in:\n%s", want, out)
		}
	}

	// Theme sources must follow the generated variables so palette lookups
	// resolve.
	varsIdx := strings.Index(out, "$lumen-theme-primary: indigo;")
	themeIdx := strings.Index(out, ".lumen-core-theme")
	if varsIdx == -1 || themeIdx == -1 || varsIdx > themeIdx {
		t.Errorf("generated variables must precede theme sources (vars at %d, theme at %d)", varsIdx, themeIdx)
	}
}

func TestCSSBuilder_BuildTheme_LegacyMixinsQuirk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version    string
		wantLegacy bool
	}{
		{"1.0.9", true},
		{"1.1.0-rc.3", true},
		{"1.1.0", false},
		{"1.2.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			t.Parallel()

			root := writePackage(t)
			resolved := resolveFixture(t, root, tt.version)

			b := &CSSBuilder{Compiler: &fakeCompiler{}, Minifier: &fakeMinifier{}}
			set, err := b.BuildTheme(resolved, testTheme)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			gotLegacy := strings.Contains(string(set.Source), "legacy layout mixins")
			if gotLegacy != tt.wantLegacy {
				t.Errorf("version %s: legacy partial included = %v, want %v", tt.version, gotLegacy, tt.wantLegacy)
			}
		})
	}
}

func TestCSSBuilder_CompilationError(t *testing.T) {
	t.Parallel()

	root := writePackage(t)
	resolved := resolveFixture(t, root, "1.2.0")

	b := &CSSBuilder{Compiler: &fakeCompiler{fail: true}, Minifier: &fakeMinifier{}}
	_, err := b.Build(resolved)

	var compErr *CompilationError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *CompilationError, got %T: %v", err, err)
	}
}

func TestCSSBuilder_MinificationError(t *testing.T) {
	t.Parallel()

	root := writePackage(t)
	resolved := resolveFixture(t, root, "1.2.0")

	b := &CSSBuilder{Compiler: &fakeCompiler{}, Minifier: &fakeMinifier{failCSS: true}}
	_, err := b.Build(resolved)

	var minErr *MinificationError
	if !errors.As(err, &minErr) {
		t.Fatalf("expected *MinificationError, got %T: %v", err, err)
	}
}
