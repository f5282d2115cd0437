package vcs

import "context"

//go:generate mockgen -destination=../mock/vcs/mock_vcs.go -package=mock_vcs . VersionControl

// VersionControl interface for interacting with version control systems
type VersionControl interface {
	IsRepo(ctx context.Context) bool
	Status(ctx context.Context) (string, error)
	Add(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) error
	Tag(ctx context.Context, name, message string) error
	Push(ctx context.Context, remote, ref string) error
	CurrentBranch(ctx context.Context) (string, error)
	RemoteURL(ctx context.Context, remote string) (string, error)
}
