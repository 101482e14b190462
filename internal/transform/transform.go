// SPDX-License-Identifier: MPL-2.0

// Package transform defines the external transformation primitives the
// builders consume: JS/CSS minification and SCSS compilation. The contract
// is pure text-in/text-out; implementations never touch the filesystem.
//
// Production builds use esbuild for minification and dart-sass for
// compilation. Builders depend only on the interfaces, so tests substitute
// lightweight fakes.
package transform

import (
	"fmt"
	"strings"

	"github.com/bep/godartsass/v2"
	"github.com/evanw/esbuild/pkg/api"
)

type (
	// Minifier compresses JS and CSS text.
	Minifier interface {
		// MinifyJS minifies JS source and returns the minified code plus an
		// external source map. sourceFile names the input in the map's
		// sources list.
		MinifyJS(source, sourceFile string) (code, sourceMap []byte, err error)

		// MinifyCSS minifies compiled CSS text.
		MinifyCSS(source string) ([]byte, error)
	}

	// Compiler compiles SCSS source text to CSS text.
	Compiler interface {
		Compile(source string) (string, error)
	}
)

// EsbuildMinifier implements Minifier on top of esbuild's transform API.
type EsbuildMinifier struct{}

// MinifyJS implements Minifier.
func (EsbuildMinifier) MinifyJS(source, sourceFile string) ([]byte, []byte, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:            api.LoaderJS,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
		MinifySyntax:      true,
		Sourcemap:         api.SourceMapExternal,
		Sourcefile:        sourceFile,
	})
	if len(result.Errors) > 0 {
		return nil, nil, transformError(result.Errors)
	}
	return result.Code, result.Map, nil
}

// MinifyCSS implements Minifier.
func (EsbuildMinifier) MinifyCSS(source string) ([]byte, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:           api.LoaderCSS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
	})
	if len(result.Errors) > 0 {
		return nil, transformError(result.Errors)
	}
	return result.Code, nil
}

func transformError(msgs []api.Message) error {
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Location != nil {
			lines = append(lines, fmt.Sprintf("%d:%d: %s", m.Location.Line, m.Location.Column, m.Text))
			continue
		}
		lines = append(lines, m.Text)
	}
	return fmt.Errorf("minify: %s", strings.Join(lines, "; "))
}

// DartSassCompiler implements Compiler using the embedded dart-sass
// protocol. Start one per process and Close it when done; the underlying
// transpiler is safe for concurrent Execute calls.
type DartSassCompiler struct {
	transpiler *godartsass.Transpiler
}

// NewDartSassCompiler starts a dart-sass transpiler process.
func NewDartSassCompiler() (*DartSassCompiler, error) {
	transpiler, err := godartsass.Start(godartsass.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to start sass compiler: %w", err)
	}
	return &DartSassCompiler{transpiler: transpiler}, nil
}

// Compile implements Compiler.
func (c *DartSassCompiler) Compile(source string) (string, error) {
	result, err := c.transpiler.Execute(godartsass.Args{
		Source:      source,
		OutputStyle: godartsass.OutputStyleExpanded,
	})
	if err != nil {
		return "", err
	}
	return result.CSS, nil
}

// Close shuts the transpiler process down.
func (c *DartSassCompiler) Close() error {
	return c.transpiler.Close()
}
