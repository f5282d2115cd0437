package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/relkit/release/internal/version"
)

// NPM represents an implementation of the Store interface backed by a
// package.json manifest and the npm cli. Version rewrites delegate to
// "npm version" with tagging disabled so git state stays untouched.
type NPM struct {
	manifestPath string
	workDir      string
}

// NewNPM returns a new instance of NPM for the given package.json path
func NewNPM(manifestPath string) *NPM {
	return &NPM{
		manifestPath: manifestPath,
		workDir:      filepath.Dir(manifestPath),
	}
}

// Version returns the version field from package.json
func (n *NPM) Version() (string, error) {
	raw, err := os.ReadFile(n.manifestPath)

	if err != nil {
		return "", err
	}

	var manifest struct {
		Version string `json:"version"`
	}

	if err := json.Unmarshal(raw, &manifest); err != nil {
		return "", fmt.Errorf("parsing %s: %w", n.manifestPath, err)
	}

	if manifest.Version == "" {
		return "", errors.New("manifest has no version field")
	}

	return manifest.Version, nil
}

// Bump runs "npm version <kind>" without tagging and returns the new
// version npm reports
func (n *NPM) Bump(ctx context.Context, kind version.Kind) (string, error) {
	out, err := n.npmVersion(ctx, string(kind))

	if err != nil {
		return "", err
	}

	// npm prints the new version with a leading "v" on its last line
	lines := strings.Split(out, "\n")
	newVersion := strings.TrimSpace(lines[len(lines)-1])

	return strings.TrimPrefix(newVersion, "v"), nil
}

// Apply runs "npm version <newVersion>" without tagging
func (n *NPM) Apply(ctx context.Context, newVersion string) error {
	_, err := n.npmVersion(ctx, newVersion)

	return err
}

// Files returns the manifest and its lock file
func (n *NPM) Files() []string {
	return []string{
		filepath.Base(n.manifestPath),
		"package-lock.json",
	}
}

func (n *NPM) npmVersion(ctx context.Context, target string) (string, error) {
	cmd := exec.CommandContext(
		ctx,
		"npm",
		"version",
		target,
		"--no-git-tag-version",
		"--allow-same-version",
	)

	cmd.Dir = n.workDir

	out, err := cmd.CombinedOutput()

	if err != nil {
		return "", fmt.Errorf("npm version %s: %w: %s", target, err, strings.TrimSpace(string(out)))
	}

	return strings.TrimSpace(string(out)), nil
}
