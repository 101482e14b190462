// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// themeFileRe recognizes theme stylesheets by naming convention
	// (e.g. tooltip-default-theme.scss).
	themeFileRe = regexp.MustCompile(`-theme\.(css|scss)$`)

	// moduleDirLayouts lists the historical on-disk layouts for a module's
	// directory relative to the package root, probed newest first. Older
	// releases shipped modules directly under modules/ or components/.
	moduleDirLayouts = []string{
		filepath.Join("modules", "js"),
		"modules",
		"components",
	}
)

// minifiedMarker excludes prebuilt minified files from resolution.
const minifiedMarker = ".min."

type (
	// ModuleFiles holds one module's classified asset paths.
	ModuleFiles struct {
		// Module is the module's short name.
		Module string
		// JS is the module's single non-minified JS source.
		JS string
		// Styles are non-minified stylesheet sources, excluding theme files.
		Styles []string
		// Themes are theme-stylesheet sources.
		Themes []string
	}

	// ResolvedFiles aggregates per-module files in dependency order.
	// Builders rely on that order for correct concatenation.
	ResolvedFiles struct {
		Modules []ModuleFiles
	}

	// ModuleDirectoryNotFoundError indicates that a module's directory (or
	// the package root itself) does not exist on disk.
	ModuleDirectoryNotFoundError struct {
		// Module is empty when the package root itself is missing.
		Module string
		Path   string
	}

	// InvalidModuleLayoutError indicates a module directory whose JS file
	// count is not exactly one. Zero JS files means the module cannot be
	// bundled; more than one is ambiguous. Neither is ever silently skipped.
	InvalidModuleLayoutError struct {
		Module  string
		JSFiles []string
	}
)

func (e *ModuleDirectoryNotFoundError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("package root not found: %s", e.Path)
	}
	return fmt.Sprintf("module directory not found for %q: %s", e.Module, e.Path)
}

func (e *InvalidModuleLayoutError) Error() string {
	if len(e.JSFiles) == 0 {
		return fmt.Sprintf("invalid module layout for %q: no JS source found", e.Module)
	}
	return fmt.Sprintf("invalid module layout for %q: ambiguous JS sources %v", e.Module, e.JSFiles)
}

// JSPaths returns every module's JS source in dependency order.
func (f *ResolvedFiles) JSPaths() []string {
	out := make([]string, 0, len(f.Modules))
	for _, m := range f.Modules {
		out = append(out, m.JS)
	}
	return out
}

// StylePaths returns all stylesheet sources in dependency order.
func (f *ResolvedFiles) StylePaths() []string {
	var out []string
	for _, m := range f.Modules {
		out = append(out, m.Styles...)
	}
	return out
}

// ThemePaths returns all theme-stylesheet sources in dependency order.
func (f *ResolvedFiles) ThemePaths() []string {
	var out []string
	for _, m := range f.Modules {
		out = append(out, m.Themes...)
	}
	return out
}

// ResolveFiles locates and classifies each module's assets under the package
// root. The result preserves moduleIDs order; within a module, files appear
// in lexical filename order for reproducible output.
func ResolveFiles(moduleIDs []string, packageRoot string) (*ResolvedFiles, error) {
	if info, err := os.Stat(packageRoot); err != nil || !info.IsDir() {
		return nil, &ModuleDirectoryNotFoundError{Path: packageRoot}
	}

	resolved := &ResolvedFiles{Modules: make([]ModuleFiles, 0, len(moduleIDs))}
	for _, id := range moduleIDs {
		files, err := resolveModuleDir(id, packageRoot)
		if err != nil {
			return nil, err
		}
		resolved.Modules = append(resolved.Modules, files)
	}
	return resolved, nil
}

func resolveModuleDir(id, packageRoot string) (ModuleFiles, error) {
	dir, err := findModuleDir(id, packageRoot)
	if err != nil {
		return ModuleFiles{}, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ModuleFiles{}, &ModuleDirectoryNotFoundError{Module: id, Path: dir}
	}

	files := ModuleFiles{Module: id}
	var jsFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.Contains(name, minifiedMarker) {
			continue
		}

		path := filepath.Join(dir, name)
		switch {
		case strings.HasSuffix(name, ".js"):
			jsFiles = append(jsFiles, path)
		case themeFileRe.MatchString(name):
			files.Themes = append(files.Themes, path)
		case strings.HasSuffix(name, ".css") || strings.HasSuffix(name, ".scss"):
			files.Styles = append(files.Styles, path)
		}
	}

	if len(jsFiles) != 1 {
		return ModuleFiles{}, &InvalidModuleLayoutError{Module: id, JSFiles: jsFiles}
	}
	files.JS = jsFiles[0]
	return files, nil
}

// findModuleDir probes the historical layout candidates for a module's
// directory, newest layout first.
func findModuleDir(id, packageRoot string) (string, error) {
	probed := make([]string, 0, len(moduleDirLayouts))
	for _, layout := range moduleDirLayouts {
		dir := filepath.Join(packageRoot, layout, id)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
		probed = append(probed, dir)
	}
	return "", &ModuleDirectoryNotFoundError{Module: id, Path: strings.Join(probed, ", ")}
}
