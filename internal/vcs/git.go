package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Git represents an implementation of the VersionControl interface using
// the git cli. All commands run against an explicit working directory
// rather than whatever directory the process happens to be in.
type Git struct {
	workDir string
}

// NewGit returns a new instance of Git rooted at workDir
func NewGit(workDir string) *Git {
	return &Git{workDir: workDir}
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.workDir

	out, err := cmd.CombinedOutput()

	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(out)))
	}

	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether the working directory is inside a git work tree
func (g *Git) IsRepo(ctx context.Context) bool {
	out, err := g.run(ctx, "rev-parse", "--is-inside-work-tree")

	return err == nil && out == "true"
}

// Status returns the short-form status listing; empty output means a
// clean tree
func (g *Git) Status(ctx context.Context) (string, error) {
	return g.run(ctx, "status", "--porcelain")
}

// Add stages the given paths
func (g *Git) Add(ctx context.Context, paths ...string) error {
	args := append([]string{"add"}, paths...)

	_, err := g.run(ctx, args...)

	return err
}

// Commit commits staged changes with the given message
func (g *Git) Commit(ctx context.Context, message string) error {
	_, err := g.run(ctx, "commit", "-m", message)

	return err
}

// Tag creates an annotated tag
func (g *Git) Tag(ctx context.Context, name, message string) error {
	_, err := g.run(ctx, "tag", "-a", name, "-m", message)

	return err
}

// Push pushes a single ref to the given remote
func (g *Git) Push(ctx context.Context, remote, ref string) error {
	_, err := g.run(ctx, "push", remote, ref)

	return err
}

// CurrentBranch returns the checked out branch name
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	return g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// RemoteURL returns the configured url for the given remote
func (g *Git) RemoteURL(ctx context.Context, remote string) (string, error) {
	return g.run(ctx, "remote", "get-url", remote)
}

// matches the owner/repo path in ssh and https style remote urls
var remotePathPattern = regexp.MustCompile(
	`^(?:https?://[^/]+/|(?:ssh://)?git@[^:/]+[:/])([^/]+/[^/]+?)(?:\.git)?$`,
)

// OwnerRepo extracts the "owner/repo" path from a remote url
func OwnerRepo(remoteURL string) (string, error) {
	match := remotePathPattern.FindStringSubmatch(strings.TrimSpace(remoteURL))

	if match == nil {
		return "", fmt.Errorf("unrecognized remote url %q", remoteURL)
	}

	return match[1], nil
}

// ActionsURL returns the CI actions page for a remote url
func ActionsURL(remoteURL string) (string, error) {
	path, err := OwnerRepo(remoteURL)

	if err != nil {
		return "", err
	}

	return fmt.Sprintf("https://github.com/%s/actions", path), nil
}
