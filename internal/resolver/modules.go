// SPDX-License-Identifier: MPL-2.0

package resolver

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"lumen-tools/internal/dag"
)

var (
	// moduleDeclRe matches one lm.module("<id>", [<deps>]) registration in
	// the package entry script.
	moduleDeclRe = regexp.MustCompile(`lm\.module\(\s*["']([\w.$-]+)["']\s*,\s*\[([^\]]*)\]`)

	// depNameRe extracts the quoted ids inside a declaration's dependency list.
	depNameRe = regexp.MustCompile(`["']([\w.$-]+)["']`)
)

// UnknownModuleError indicates a module id that does not exist in the
// package's dependency graph, either requested directly or referenced as a
// dependency.
type UnknownModuleError struct {
	Module string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("unknown module: %q is not declared by the package", e.Module)
}

// moduleDecl is one entry-script registration, reduced to short names.
type moduleDecl struct {
	name string
	deps []string
}

// ResolveModules computes the dependency-ordered module list for a build.
//
// The entry file's declarations form the full dependency graph. An empty
// requested set selects every declared module; otherwise the result is the
// transitive closure of the requested modules plus the mandatory core
// module. Every module appears after all of its dependencies, with ties
// broken by first-discovery order, so the output is stable across runs.
func ResolveModules(entryFile string, requested []string) ([]string, error) {
	decls, err := parseEntry(entryFile)
	if err != nil {
		return nil, err
	}

	declared := make(map[string][]string, len(decls))
	declOrder := make([]string, 0, len(decls))
	for _, d := range decls {
		if _, ok := declared[d.name]; ok {
			continue
		}
		declared[d.name] = d.deps
		declOrder = append(declOrder, d.name)
	}
	if _, ok := declared[CoreModule]; !ok {
		return nil, &UnknownModuleError{Module: CoreModule}
	}

	// The core module is always first in the closure seed, so it also leads
	// the final ordering.
	targets := []string{CoreModule}
	if len(requested) == 0 {
		targets = append(targets, declOrder...)
	} else {
		targets = append(targets, requested...)
	}

	closure, err := expandClosure(targets, declared)
	if err != nil {
		return nil, err
	}

	graph := dag.New()
	for _, name := range closure {
		graph.AddNode(name)
	}
	for _, name := range closure {
		for _, dep := range declared[name] {
			graph.AddEdge(dep, name)
		}
	}
	return graph.TopologicalSort()
}

// expandClosure returns the transitive dependency closure of targets in
// first-discovery order.
func expandClosure(targets []string, declared map[string][]string) ([]string, error) {
	seen := make(map[string]bool)
	var order []string

	var visit func(name string) error
	visit = func(name string) error {
		if seen[name] {
			return nil
		}
		deps, ok := declared[name]
		if !ok {
			return &UnknownModuleError{Module: name}
		}
		seen[name] = true
		order = append(order, name)
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		return nil
	}

	for _, t := range targets {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// parseEntry scans the entry script for module declarations. Only ids with
// the first-party prefix participate; third-party runtime dependencies are
// dropped from dependency lists.
func parseEntry(path string) ([]moduleDecl, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read package entry file %s: %w", path, err)
	}

	matches := moduleDeclRe.FindAllStringSubmatch(string(data), -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no module declarations found in entry file %s", path)
	}

	decls := make([]moduleDecl, 0, len(matches))
	for _, m := range matches {
		id, depList := m[1], m[2]
		if !strings.HasPrefix(id, modulePrefix) {
			continue
		}

		var deps []string
		for _, dm := range depNameRe.FindAllStringSubmatch(depList, -1) {
			if strings.HasPrefix(dm[1], modulePrefix) {
				deps = append(deps, shortName(dm[1]))
			}
		}
		decls = append(decls, moduleDecl{name: shortName(id), deps: deps})
	}
	return decls, nil
}

// shortName reduces a declared module id to the name callers use:
// lumen.core -> core, lumen.components.tooltip -> tooltip.
func shortName(id string) string {
	name := strings.TrimPrefix(id, modulePrefix)
	return strings.TrimPrefix(name, componentPrefix)
}
