// SPDX-License-Identifier: MPL-2.0

// Package resolver turns a materialized lumen-ui package into a ResolvedBuild:
// the ordered set of modules a build must include and the on-disk assets of
// each. Module resolution expands the requested subset to its transitive
// dependency closure (the core module is always included); asset resolution
// locates and classifies each module's JS, stylesheet and theme files,
// rejecting layouts the builders cannot consume.
package resolver

import "lumen-tools/pkg/semver"

const (
	// EntryFile is the package entry script carrying the module declarations.
	EntryFile = "lumen-ui.js"

	// CoreModule is the mandatory module every build includes first.
	CoreModule = "core"

	// modulePrefix marks first-party module ids in entry declarations.
	// Dependencies without it are third-party runtime modules and carry no
	// build assets.
	modulePrefix = "lumen."

	// componentPrefix is the id segment between the module prefix and a
	// component's short name (lumen.components.tooltip -> tooltip).
	componentPrefix = "components."
)

// ResolvedBuild is the read-only input shared by all builders: module order,
// aggregated module files, the resolved package root, and the concrete
// package version.
type ResolvedBuild struct {
	// Modules is the dependency-ordered module list (core first).
	Modules []string
	// Files holds each module's resolved assets, in Modules order.
	Files *ResolvedFiles
	// Root is the resolved package root path.
	Root string
	// Version is the concrete resolved package version.
	Version semver.Version
}
