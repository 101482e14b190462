// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lumen-tools/internal/resolver"
	"lumen-tools/pkg/semver"
)

// fakeMinifier is a deterministic Minifier stand-in: it tags output instead
// of compressing so tests can assert on content flow.
type fakeMinifier struct {
	failJS  bool
	failCSS bool
}

func (f *fakeMinifier) MinifyJS(source, sourceFile string) ([]byte, []byte, error) {
	if f.failJS {
		return nil, nil, errors.New("unexpected token")
	}
	srcMap := []byte(`{"version":3,"sources":["` + sourceFile + `"],"mappings":""}`)
	return []byte("min:" + source), srcMap, nil
}

func (f *fakeMinifier) MinifyCSS(source string) ([]byte, error) {
	if f.failCSS {
		return nil, errors.New("unexpected token")
	}
	return []byte("min:" + source), nil
}

// fakeCompiler passes SCSS through with a marker prefix.
type fakeCompiler struct {
	fail bool
}

func (f *fakeCompiler) Compile(source string) (string, error) {
	if f.fail {
		return "", errors.New("undefined mixin")
	}
	return "/*compiled*/\n" + source, nil
}

// fixtureFiles is the on-disk content of the test package, keyed by path
// relative to the package root.
var fixtureFiles = map[string]string{
	"package.json": `{"name": "lumen-ui", "version": "1.2.0"}`,
	"LICENSE":      "The MIT License\n",
	"lumen-ui.js": `lm.module("lumen.core", []);
lm.module("lumen.components.tooltip", ["lumen.core"]);`,
	"modules/js/core/core.js":                       "// core module source\n",
	"modules/js/core/core.css":                      ".lumen-core {}\n",
	"modules/js/core/layout.css":                    ".lumen-layout-row {}\n",
	"modules/js/core/layout-attributes.css":         "[lumen-layout] {}\n",
	"modules/js/core/core-default-theme.scss":       ".lumen-core-theme { color: $lumen-theme-primary; }\n",
	"modules/js/tooltip/tooltip.js":                 "// tooltip module source\n",
	"modules/js/tooltip/tooltip.css":                ".lumen-tooltip {}\n",
	"modules/js/tooltip/tooltip-default-theme.scss": ".lumen-tooltip-theme {}\n",
	"modules/scss/_variables.scss":                  "$lumen-base: 8px;\n",
	"modules/scss/_mixins.scss":                     "@mixin lumen-shadow() {}\n",
	"modules/scss/_layout.scss":                     "/* legacy layout mixins */\n",
}

// writePackage materializes the fixture package and returns its root.
func writePackage(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range fixtureFiles {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// resolveFixture resolves the fixture package into a ResolvedBuild.
func resolveFixture(t *testing.T, root, version string) *resolver.ResolvedBuild {
	t.Helper()
	modules, err := resolver.ResolveModules(filepath.Join(root, resolver.EntryFile), nil)
	if err != nil {
		t.Fatal(err)
	}
	files, err := resolver.ResolveFiles(modules, root)
	if err != nil {
		t.Fatal(err)
	}
	return &resolver.ResolvedBuild{
		Modules: modules,
		Files:   files,
		Root:    root,
		Version: semver.MustParse(version),
	}
}
