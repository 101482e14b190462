// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"fmt"
	"strings"

	"lumen-tools/internal/config"
)

// ThemeVariables renders the SCSS variable assignments a theme compilation
// consumes. The output is injected ahead of the theme-definition sources so
// their palette lookups resolve against the configured theme. Pure and
// deterministic for identical inputs.
func ThemeVariables(theme config.Theme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "$lumen-theme-primary: %s;\n", theme.Primary)
	fmt.Fprintf(&b, "$lumen-theme-accent: %s;\n", theme.Accent)
	fmt.Fprintf(&b, "$lumen-theme-warn: %s;\n", theme.Warn)
	fmt.Fprintf(&b, "$lumen-theme-dark: %t;\n", theme.Dark)
	return b.String()
}

// ThemeStylesheet finishes a static theme: it prepends the theme's CSS
// custom-property definitions to the compiled theme CSS so runtime consumers
// can read the active palettes. Pure function over its inputs; no filesystem
// access.
func ThemeStylesheet(theme config.Theme, compiledCSS string) string {
	var b strings.Builder
	b.WriteString(":root {\n")
	fmt.Fprintf(&b, "  --lumen-theme-primary: %s;\n", theme.Primary)
	fmt.Fprintf(&b, "  --lumen-theme-accent: %s;\n", theme.Accent)
	fmt.Fprintf(&b, "  --lumen-theme-warn: %s;\n", theme.Warn)
	fmt.Fprintf(&b, "  --lumen-theme-dark: %t;\n", theme.Dark)
	b.WriteString("}\n")
	b.WriteString(compiledCSS)
	return b.String()
}
