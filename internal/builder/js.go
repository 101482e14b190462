// SPDX-License-Identifier: MPL-2.0

package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"lumen-tools/internal/resolver"
	"lumen-tools/internal/transform"
)

// JSBuilder produces the concatenated JS bundle, its minified form, and the
// source map for the minified output.
type JSBuilder struct {
	Minifier transform.Minifier
}

// Build concatenates each module's JS source in dependency order, with no
// reordering or deduplication beyond the resolved ordering, and minifies
// the result. The returned source map references the minified file by
// minifiedName.
func (b *JSBuilder) Build(resolved *resolver.ResolvedBuild, minifiedName string) (source, compressed, sourceMap []byte, err error) {
	var parts []string
	for _, path := range resolved.Files.JSPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read JS source %s: %w", path, err)
		}
		parts = append(parts, string(data))
	}
	concatenated := strings.Join(parts, "\n")

	sourceName := strings.TrimSuffix(minifiedName, ".min.js") + ".js"
	compressed, rawMap, err := b.Minifier.MinifyJS(concatenated, sourceName)
	if err != nil {
		return nil, nil, nil, &MinificationError{Context: sourceName, Cause: err}
	}

	sourceMap, err = setSourceMapFile(rawMap, minifiedName)
	if err != nil {
		return nil, nil, nil, &MinificationError{Context: sourceName, Cause: err}
	}
	return []byte(concatenated), compressed, sourceMap, nil
}

// setSourceMapFile keys the map to the minified output name via its "file"
// field, which the minifier leaves unset for external maps.
func setSourceMapFile(rawMap []byte, minifiedName string) ([]byte, error) {
	var m map[string]any
	if err := json.Unmarshal(rawMap, &m); err != nil {
		return nil, fmt.Errorf("invalid source map: %w", err)
	}
	m["file"] = minifiedName
	return json.Marshal(m)
}
