// SPDX-License-Identifier: MPL-2.0

// Package registry resolves a requested lumen-ui version to a package root
// on disk. The "local" sentinel resolves against the caller's node_modules
// installation; concrete versions are served from a per-version cache
// directory, fetched from the package registry on first use.
//
// Cache layout: <cacheDir>/<version>/ holds the extracted package and is
// trusted as-is once present. Contents are not re-validated per build; a
// manually corrupted cache entry must be deleted by hand. Population is
// atomic (extract to a temp sibling, rename into place), so concurrent
// builds for the same version cannot observe a half-written entry.
package registry

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"lumen-tools/pkg/semver"
)

const (
	// PackageName is the npm package name of the component library.
	PackageName = "lumen-ui"

	// LocalVersion is the requested-version sentinel for "use the locally
	// installed package" (mirrored by internal/config to avoid coupling).
	LocalVersion = "local"

	// fetchTimeout bounds a single registry download.
	fetchTimeout = 2 * time.Minute
)

type (
	// Resolver locates and materializes lumen-ui package versions.
	Resolver struct {
		// Registry is the package registry base URL.
		Registry string
		// WorkDir is the starting directory for local-install discovery.
		// Empty means the process working directory.
		WorkDir string
		// Client is the HTTP client for registry fetches. Nil gets a
		// client with fetchTimeout applied.
		Client *http.Client

		logger *log.Logger
	}

	// VersionNotFoundError indicates that the requested version could not be
	// located, fetched, or read.
	VersionNotFoundError struct {
		// Version is the requested version string (or LocalVersion).
		Version string
		// Cause is the underlying failure.
		Cause error
	}

	// packageManifest is the subset of package.json the resolver reads.
	packageManifest struct {
		Version string `json:"version"`
	}
)

func (e *VersionNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("version %q not found: %v", e.Version, e.Cause)
	}
	return fmt.Sprintf("version %q not found", e.Version)
}

func (e *VersionNotFoundError) Unwrap() error {
	return e.Cause
}

// New creates a Resolver against the given registry base URL.
func New(registryURL string, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	return &Resolver{
		Registry: strings.TrimRight(registryURL, "/"),
		logger:   logger,
	}
}

// Resolve returns the package root and concrete version for the requested
// version string. LocalVersion (or "") resolves the locally installed
// package; anything else must be a semantic version and is served from
// cacheDir, fetched on first use.
func (r *Resolver) Resolve(ctx context.Context, requested, cacheDir string) (string, semver.Version, error) {
	if requested == "" || requested == LocalVersion {
		return r.resolveLocal()
	}

	v, err := semver.Parse(requested)
	if err != nil {
		return "", semver.Version{}, &VersionNotFoundError{Version: requested, Cause: err}
	}

	target := filepath.Join(cacheDir, v.String())
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		r.logger.Debug("package version served from cache", "version", v.String(), "path", target)
		return target, v, nil
	}

	if err := r.fetch(ctx, v, cacheDir, target); err != nil {
		return "", semver.Version{}, &VersionNotFoundError{Version: requested, Cause: err}
	}
	return target, v, nil
}

// resolveLocal walks up from WorkDir looking for node_modules/lumen-ui and
// reports its manifest version.
func (r *Resolver) resolveLocal() (string, semver.Version, error) {
	dir := r.WorkDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", semver.Version{}, &VersionNotFoundError{Version: LocalVersion, Cause: err}
		}
		dir = wd
	}

	for {
		root := filepath.Join(dir, "node_modules", PackageName)
		if info, err := os.Stat(root); err == nil && info.IsDir() {
			v, err := readManifestVersion(filepath.Join(root, "package.json"))
			if err != nil {
				return "", semver.Version{}, &VersionNotFoundError{Version: LocalVersion, Cause: err}
			}
			r.logger.Debug("resolved local install", "version", v.String(), "path", root)
			return root, v, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", semver.Version{}, &VersionNotFoundError{
		Version: LocalVersion,
		Cause:   fmt.Errorf("no node_modules/%s installation found", PackageName),
	}
}

func readManifestVersion(path string) (semver.Version, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return semver.Version{}, fmt.Errorf("failed to read package manifest: %w", err)
	}
	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return semver.Version{}, fmt.Errorf("failed to parse package manifest: %w", err)
	}
	return semver.Parse(manifest.Version)
}

// fetch downloads and extracts the version tarball, publishing it into the
// cache with an atomic rename.
func (r *Resolver) fetch(ctx context.Context, v semver.Version, cacheDir, target string) error {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	url := fmt.Sprintf("%s/%s/-/%s-%s.tgz", r.Registry, PackageName, PackageName, v.String())
	r.logger.Debug("fetching package", "version", v.String(), "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	client := r.Client
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %s", resp.Status)
	}

	// Extract into a temp sibling of the target so the final rename stays on
	// one filesystem.
	tmpDir, err := os.MkdirTemp(cacheDir, ".fetch-"+v.String()+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := extractTarball(resp.Body, tmpDir); err != nil {
		return fmt.Errorf("failed to extract package: %w", err)
	}

	if err := os.Rename(tmpDir, target); err != nil {
		// A concurrent build may have published the same version first;
		// last-writer-loses is fine as long as a complete copy exists.
		if info, statErr := os.Stat(target); statErr == nil && info.IsDir() {
			return nil
		}
		return fmt.Errorf("failed to publish cache entry: %w", err)
	}
	r.logger.Info("cached package version", "version", v.String(), "path", target)
	return nil
}

// extractTarball unpacks a gzipped npm tarball, stripping the leading
// "package/" path component the registry adds.
func extractTarball(src io.Reader, dest string) error {
	gz, err := gzip.NewReader(src)
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		name := strings.TrimPrefix(filepath.ToSlash(hdr.Name), "package/")
		if name == "" {
			continue
		}

		path, err := securePath(dest, name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		default:
			// Symlinks and the like are not part of a published package.
		}
	}
}

// securePath joins name onto dest, rejecting entries that escape it.
func securePath(dest, name string) (string, error) {
	path := filepath.Join(dest, filepath.FromSlash(name))
	if !strings.HasPrefix(path, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("tarball entry escapes destination: %s", name)
	}
	return path, nil
}
