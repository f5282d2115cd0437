package version

import (
	"fmt"
	"regexp"

	"github.com/coreos/go-semver/semver"
)

// Kind represents which semantic version component to increment
type Kind string

const (
	KindPatch Kind = "patch"
	KindMinor Kind = "minor"
	KindMajor Kind = "major"
)

// explicit targets are plain three-part dotted versions, no "v" prefix,
// no prerelease
var explicitPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Target represents the parsed form of the single version argument:
// either an explicit semantic version or a bump kind
type Target struct {
	Explicit string
	Kind     Kind
}

// ParseTarget parses the cli version argument into a Target
func ParseTarget(arg string) (*Target, error) {
	if explicitPattern.MatchString(arg) {
		if _, err := semver.NewVersion(arg); err != nil {
			return nil, fmt.Errorf("invalid version %q: %w", arg, err)
		}

		return &Target{Explicit: arg}, nil
	}

	switch Kind(arg) {
	case KindPatch, KindMinor, KindMajor:
		return &Target{Kind: Kind(arg)}, nil
	}

	return nil, fmt.Errorf(
		"invalid argument %q: expected patch, minor, major, or an explicit version like 1.2.3",
		arg,
	)
}

// IsExplicit returns true when the target names an exact version rather
// than a bump kind
func (t *Target) IsExplicit() bool {
	return t.Explicit != ""
}

// Bump computes the version that incrementing current by kind produces
func Bump(current string, kind Kind) (string, error) {
	v, err := semver.NewVersion(current)

	if err != nil {
		return "", fmt.Errorf("invalid current version %q: %w", current, err)
	}

	switch kind {
	case KindPatch:
		v.BumpPatch()
	case KindMinor:
		v.BumpMinor()
	case KindMajor:
		v.BumpMajor()
	default:
		return "", fmt.Errorf("unknown bump kind %q", kind)
	}

	return v.String(), nil
}

// TagName returns the vcs tag name for a version
func TagName(version string) string {
	return "v" + version
}
