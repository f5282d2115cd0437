package manifest

import (
	"context"

	"github.com/relkit/release/internal/version"
)

//go:generate mockgen -destination=../mock/manifest/mock_manifest.go -package=mock_manifest . Store

// Store interface for reading and updating the version field of a
// project manifest
type Store interface {
	// Version returns the current version recorded in the manifest
	Version() (string, error)
	// Bump rewrites the manifest version in place by kind and returns
	// the new version
	Bump(ctx context.Context, kind version.Kind) (string, error)
	// Apply rewrites the manifest version in place to an explicit value
	Apply(ctx context.Context, newVersion string) error
	// Files returns the manifest related paths to stage when committing
	Files() []string
}
