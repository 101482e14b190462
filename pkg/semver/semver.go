// SPDX-License-Identifier: MPL-2.0

// Package semver provides the structured semantic version type used to pin
// lumen-ui releases and to gate version-dependent build behavior.
package semver

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Version represents a parsed semantic version.
//
// Release candidates are expressed through Prerelease (e.g. "rc.1") and sort
// below the corresponding final release: 1.1.0-rc.1 < 1.1.0 < 1.2.0.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Original   string
}

// versionRegex matches semantic version strings, with an optional leading "v".
var versionRegex = regexp.MustCompile(`^v?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z\-\.]+))?(?:\+([0-9A-Za-z\-\.]+))?$`)

// Parse parses a version string into a Version.
func Parse(s string) (Version, error) {
	matches := versionRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return Version{}, fmt.Errorf("invalid version format: %q", s)
	}

	v := Version{Original: s}

	var err error
	v.Major, err = strconv.Atoi(matches[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version: %w", err)
	}
	v.Minor, err = strconv.Atoi(matches[2])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version: %w", err)
	}
	v.Patch, err = strconv.Atoi(matches[3])
	if err != nil {
		return Version{}, fmt.Errorf("invalid patch version: %w", err)
	}
	v.Prerelease = matches[4]

	return v, nil
}

// MustParse parses a version string and panics on failure. Intended for
// constants and tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsValid reports whether s parses as a semantic version.
func IsValid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String returns the version as a string.
func (v Version) String() string {
	if v.Original != "" {
		return v.Original
	}
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare compares two versions.
// Returns -1 if v < other, 0 if v == other, 1 if v > other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return compareInt(v.Patch, other.Patch)
	}

	// A prerelease sorts below the corresponding final release.
	if v.Prerelease == "" && other.Prerelease != "" {
		return 1
	}
	if v.Prerelease != "" && other.Prerelease == "" {
		return -1
	}
	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// Before reports whether v sorts strictly below other.
func (v Version) Before(other Version) bool {
	return v.Compare(other) < 0
}

// AtLeast reports whether v sorts at or above other.
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

func compareInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// comparePrerelease compares dot-separated prerelease identifiers per semver
// precedence: numeric identifiers compare numerically (so rc.9 < rc.10 and
// rc.100 stays well above rc.2), numeric sorts below alphanumeric, and a
// shorter identifier list sorts below a longer one when all shared
// identifiers are equal.
func comparePrerelease(a, b string) int {
	if a == b {
		return 0
	}

	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")

	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, aNum := parseIdentifier(as[i])
		bi, bNum := parseIdentifier(bs[i])

		switch {
		case aNum && bNum:
			if c := compareInt(ai, bi); c != 0 {
				return c
			}
		case aNum && !bNum:
			return -1
		case !aNum && bNum:
			return 1
		default:
			if as[i] != bs[i] {
				if as[i] < bs[i] {
					return -1
				}
				return 1
			}
		}
	}

	return compareInt(len(as), len(bs))
}

func parseIdentifier(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
