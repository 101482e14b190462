// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"lumen-tools/internal/config"
	"lumen-tools/internal/registry"
	"lumen-tools/internal/resolver"
	"lumen-tools/internal/transform"
	"lumen-tools/pkg/semver"
)

type (
	// Orchestrator runs a full build: resolution, artifact assembly, and
	// destination writes.
	Orchestrator struct {
		registry *registry.Resolver
		compiler transform.Compiler
		minifier transform.Minifier
		logger   *log.Logger
	}

	// Result reports a completed build.
	Result struct {
		// Version is the concrete resolved package version.
		Version semver.Version
		// Modules are the included module ids in dependency order.
		Modules []string
		// Artifacts are the written outputs, content as on disk.
		Artifacts []Artifact
	}
)

// New creates an Orchestrator. A nil logger falls back to the default.
func New(reg *registry.Resolver, compiler transform.Compiler, minifier transform.Minifier, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	return &Orchestrator{
		registry: reg,
		compiler: compiler,
		minifier: minifier,
		logger:   logger,
	}
}

// Build runs the pipeline for opts and writes every artifact under the
// destination directory.
//
// Resolution is strictly sequential (each step needs the previous one's
// output); the JS, CSS and theme builds have no data dependency on each
// other and run concurrently. Any failure aborts the whole build.
// Destination writes are best-effort, not transactional: artifacts written
// before a later failure remain on disk.
func (o *Orchestrator) Build(ctx context.Context, opts config.Options) (*Result, error) {
	opts = config.ApplyDefaults(opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	root, version, err := o.registry.Resolve(ctx, opts.Version, opts.Cache)
	if err != nil {
		return nil, err
	}
	o.logger.Info("resolved package", "version", version.String(), "root", root)

	modules, err := resolver.ResolveModules(filepath.Join(root, resolver.EntryFile), opts.Modules)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("resolved module closure", "modules", modules)

	files, err := resolver.ResolveFiles(modules, root)
	if err != nil {
		return nil, err
	}

	resolved := &resolver.ResolvedBuild{
		Modules: modules,
		Files:   files,
		Root:    root,
		Version: version,
	}

	base := opts.Filename
	minifiedJSName := base + ".min.js"

	var (
		jsSource, jsMin, jsMap []byte
		cssResult              *CSSResult
		themeResult            *StylesheetSet
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		jsBuilder := &JSBuilder{Minifier: o.minifier}
		var err error
		jsSource, jsMin, jsMap, err = jsBuilder.Build(resolved, minifiedJSName)
		return err
	})
	g.Go(func() error {
		cssBuilder := &CSSBuilder{Compiler: o.compiler, Minifier: o.minifier}
		var err error
		cssResult, err = cssBuilder.Build(resolved)
		return err
	})
	if opts.Theme != nil {
		g.Go(func() error {
			cssBuilder := &CSSBuilder{Compiler: o.compiler, Minifier: o.minifier}
			var err error
			themeResult, err = cssBuilder.BuildTheme(resolved, *opts.Theme)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	banner := []byte(Banner(version, modules, time.Now()))
	withBanner := func(content []byte) []byte {
		return append(append([]byte{}, banner...), content...)
	}

	artifacts := []Artifact{
		{Name: base + ".js", Content: withBanner(jsSource)},
		{Name: minifiedJSName, Content: withBanner(jsMin)},
		// The source map stays banner-free: a comment would corrupt the JSON.
		{Name: minifiedJSName + ".map", Content: jsMap},
		{Name: base + ".css", Content: withBanner(cssResult.Layout.Source)},
		{Name: base + ".min.css", Content: withBanner(cssResult.Layout.Compressed)},
		{Name: base + "-no-layout.css", Content: withBanner(cssResult.NoLayout.Source)},
		{Name: base + "-no-layout.min.css", Content: withBanner(cssResult.NoLayout.Compressed)},
	}
	if themeResult != nil {
		artifacts = append(artifacts,
			Artifact{Name: base + "-theme.css", Content: withBanner(themeResult.Source)},
			Artifact{Name: base + "-theme.min.css", Content: withBanner(themeResult.Compressed)},
		)
	}

	if license, err := os.ReadFile(filepath.Join(root, "LICENSE")); err == nil {
		artifacts = append(artifacts, Artifact{Name: "LICENSE", Content: license})
	} else {
		o.logger.Warn("package ships no LICENSE file, skipping copy", "root", root)
	}

	if err := writeArtifacts(opts.Destination, artifacts); err != nil {
		return nil, err
	}
	o.logger.Info("build complete", "version", version.String(), "artifacts", len(artifacts), "destination", opts.Destination)

	return &Result{Version: version, Modules: modules, Artifacts: artifacts}, nil
}

func writeArtifacts(destination string, artifacts []Artifact) error {
	if err := os.MkdirAll(destination, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	for _, a := range artifacts {
		path := filepath.Join(destination, a.Name)
		if err := os.WriteFile(path, a.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write artifact %s: %w", a.Name, err)
		}
	}
	return nil
}
