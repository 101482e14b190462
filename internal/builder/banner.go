// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"fmt"
	"strings"
	"time"

	"lumen-tools/pkg/semver"
)

const (
	productName = "Lumen UI"
	productRepo = "https://github.com/lumenui/lumen-ui"
	productLic  = "MIT"
	toolName    = "lumen-tools"
)

// Banner renders the comment banner prepended to every text artifact except
// the source map and the LICENSE copy.
func Banner(v semver.Version, modules []string, now time.Time) string {
	var b strings.Builder
	b.WriteString("/*!\n")
	fmt.Fprintf(&b, " * %s\n", productName)
	fmt.Fprintf(&b, " * %s\n", productRepo)
	fmt.Fprintf(&b, " * License: %s\n", productLic)
	fmt.Fprintf(&b, " * Version: %s\n", v)
	fmt.Fprintf(&b, " * Generated with %s\n", toolName)
	fmt.Fprintf(&b, " * Includes modules: %s\n", strings.Join(modules, ", "))
	fmt.Fprintf(&b, " * Copyright %d %s authors. All Rights Reserved.\n", now.Year(), productName)
	b.WriteString(" */\n")
	return b.String()
}
