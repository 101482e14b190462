// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	got := ApplyDefaults(Options{Destination: "dist"})
	if got.Filename != DefaultFilename {
		t.Errorf("Filename = %q, want %q", got.Filename, DefaultFilename)
	}
	if got.Version != VersionLocal {
		t.Errorf("Version = %q, want %q", got.Version, VersionLocal)
	}
	if got.Cache != DefaultCacheDir {
		t.Errorf("Cache = %q, want %q", got.Cache, DefaultCacheDir)
	}
	if got.Registry != DefaultRegistry {
		t.Errorf("Registry = %q, want %q", got.Registry, DefaultRegistry)
	}
	if got.Destination != "dist" {
		t.Errorf("Destination = %q, want dist", got.Destination)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	t.Parallel()

	in := Options{
		Destination: "out",
		Filename:    "custom",
		Version:     "1.2.0",
		Cache:       "/tmp/cache",
		Registry:    "https://registry.example.com",
	}
	got := ApplyDefaults(in)
	if got.Filename != in.Filename || got.Version != in.Version ||
		got.Cache != in.Cache || got.Registry != in.Registry {
		t.Errorf("explicit values must survive defaulting: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      Options
		wantField string
		wantOK    bool
	}{
		{
			name:   "valid minimal",
			opts:   ApplyDefaults(Options{Destination: "dist"}),
			wantOK: true,
		},
		{
			name:   "valid pinned version",
			opts:   ApplyDefaults(Options{Destination: "dist", Version: "1.1.0-rc.2"}),
			wantOK: true,
		},
		{
			name: "valid with theme",
			opts: ApplyDefaults(Options{
				Destination: "dist",
				Theme:       &Theme{Primary: "indigo", Accent: "pink", Warn: "red"},
			}),
			wantOK: true,
		},
		{
			name:      "missing destination",
			opts:      ApplyDefaults(Options{Version: "1.2.0"}),
			wantField: "destination",
		},
		{
			name:      "bad version",
			opts:      ApplyDefaults(Options{Destination: "dist", Version: "latest"}),
			wantField: "version",
		},
		{
			name:      "blank module name",
			opts:      ApplyDefaults(Options{Destination: "dist", Modules: []string{"tooltip", " "}}),
			wantField: "modules",
		},
		{
			name:      "theme missing accent",
			opts:      ApplyDefaults(Options{Destination: "dist", Theme: &Theme{Primary: "indigo", Warn: "red"}}),
			wantField: "theme.accent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.opts.Validate()
			if tt.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidate_NoOptions(t *testing.T) {
	t.Parallel()

	err := Options{}.Validate()
	if !errors.Is(err, ErrNoOptions) {
		t.Errorf("expected ErrNoOptions, got %v", err)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigurationError, got %T: %v", err, err)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "lumen-tools.yaml")
	content := "destination: dist\nversion: 1.2.0\nmodules:\n  - tooltip\ntheme:\n  primary: indigo\n  accent: pink\n  warn: red\n  dark: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Destination != "dist" || opts.Version != "1.2.0" {
		t.Errorf("unexpected options: %+v", opts)
	}
	if len(opts.Modules) != 1 || opts.Modules[0] != "tooltip" {
		t.Errorf("Modules = %v, want [tooltip]", opts.Modules)
	}
	if opts.Theme == nil || !opts.Theme.Dark || opts.Theme.Primary != "indigo" {
		t.Errorf("Theme = %+v", opts.Theme)
	}
}
