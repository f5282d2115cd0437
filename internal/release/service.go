package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/relkit/release/internal/config"
	"github.com/relkit/release/internal/exception"
	"github.com/relkit/release/internal/history"
	"github.com/relkit/release/internal/logger"
	"github.com/relkit/release/internal/manifest"
	"github.com/relkit/release/internal/vcs"
	"github.com/relkit/release/internal/version"
	"gorm.io/datatypes"
)

// Request represents a single release invocation
type Request struct {
	Target *version.Target
	DryRun bool
}

// Service sequences the release workflow: preflight checks, version
// resolution, confirmation, then commit, tag and push. Each step is
// fail-fast; a failing git or npm command aborts the remaining steps
// with no rollback.
type Service struct {
	conf     config.Config
	vcs      vcs.VersionControl
	manifest manifest.Store
	history  history.Service
	prompter Prompter
	out      io.Writer
	log      logger.Logger
}

// NewService returns a new release Service
func NewService(
	conf config.Config,
	versionControl vcs.VersionControl,
	manifestStore manifest.Store,
	historyService history.Service,
	prompter Prompter,
	out io.Writer,
) *Service {
	return &Service{
		conf:     conf,
		vcs:      versionControl,
		manifest: manifestStore,
		history:  historyService,
		prompter: prompter,
		out:      out,
		log:      logger.New(),
	}
}

// Run executes the release workflow. A declined confirmation returns
// nil; every validation or command failure returns an error.
func (s *Service) Run(ctx context.Context, req Request) error {
	if err := s.preflight(ctx); err != nil {
		return err
	}

	current, err := s.manifest.Version()

	if err != nil {
		return err
	}

	next, err := s.resolve(ctx, current, req)

	if err != nil {
		return err
	}

	tag := version.TagName(next)

	s.printPlan(current, next, tag)

	if req.DryRun {
		fmt.Fprintln(s.out, "Dry run - nothing was changed")
		return nil
	}

	confirmed, err := s.prompter.Confirm("Proceed with release? (y/N) ")

	if err != nil {
		return err
	}

	if !confirmed {
		fmt.Fprintln(s.out, "Release cancelled")
		return nil
	}

	return s.execute(ctx, req, current, next, tag)
}

// preflight ensures we are inside a repository with a clean work tree
// before anything is mutated
func (s *Service) preflight(ctx context.Context) error {
	if !s.vcs.IsRepo(ctx) {
		return exception.ErrNotARepository
	}

	status, err := s.vcs.Status(ctx)

	if err != nil {
		return err
	}

	if status != "" {
		fmt.Fprintln(s.out, "Uncommitted changes:")
		fmt.Fprintln(s.out, status)

		return exception.ErrDirtyWorkTree
	}

	return nil
}

// resolve determines the new version. Bump kinds delegate to the
// manifest tool which rewrites the manifest in place as a side effect;
// explicit targets leave the manifest untouched until after the
// confirmation gate. Dry runs compute the bump locally so nothing is
// written.
func (s *Service) resolve(ctx context.Context, current string, req Request) (string, error) {
	if req.Target.IsExplicit() {
		return req.Target.Explicit, nil
	}

	if req.DryRun {
		return version.Bump(current, req.Target.Kind)
	}

	return s.manifest.Bump(ctx, req.Target.Kind)
}

func (s *Service) printPlan(current, next, tag string) {
	fmt.Fprintf(s.out, "Current version: %s\n", current)
	fmt.Fprintf(s.out, "New version:     %s\n", next)
	fmt.Fprintf(s.out, "Tag:             %s\n\n", tag)

	fmt.Fprintln(s.out, "This will:")
	fmt.Fprintf(s.out, "  1. Update %s to %s\n", s.conf.Manifest, next)
	fmt.Fprintf(s.out, "  2. Commit the version change\n")
	fmt.Fprintf(s.out, "  3. Create annotated tag %s\n", tag)
	fmt.Fprintf(s.out, "  4. Push the branch and tag to %s\n", s.conf.Remote)
	fmt.Fprintf(s.out, "  5. Trigger the publish workflow on CI\n\n")
}

func (s *Service) execute(ctx context.Context, req Request, current, next, tag string) error {
	if req.Target.IsExplicit() {
		if err := s.manifest.Apply(ctx, next); err != nil {
			return err
		}
	}

	files := s.manifest.Files()

	if err := s.vcs.Add(ctx, files...); err != nil {
		return err
	}

	commitMessage := fmt.Sprintf(s.conf.Messages.Commit, next)

	if err := s.vcs.Commit(ctx, commitMessage); err != nil {
		return err
	}

	tagMessage := fmt.Sprintf(s.conf.Messages.Tag, next)

	if err := s.vcs.Tag(ctx, tag, tagMessage); err != nil {
		return err
	}

	branch := s.conf.Branch

	if branch == "" {
		checkedOut, err := s.vcs.CurrentBranch(ctx)

		if err != nil {
			return err
		}

		branch = checkedOut
	}

	if err := s.vcs.Push(ctx, s.conf.Remote, branch); err != nil {
		return err
	}

	if err := s.vcs.Push(ctx, s.conf.Remote, tag); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Released %s\n", tag)

	if remoteURL, err := s.vcs.RemoteURL(ctx, s.conf.Remote); err == nil {
		if actionsURL, err := vcs.ActionsURL(remoteURL); err == nil {
			fmt.Fprintf(s.out, "Watch the publish workflow: %s\n", actionsURL)
		}
	}

	fmt.Fprintln(s.out, "Publishing happens automatically once CI passes")

	s.record(current, next, tag, branch, files)

	return nil
}

// record appends the release to the local history cache. Cache failures
// never fail a release that already pushed.
func (s *Service) record(current, next, tag, branch string, files []string) {
	filesBytes, err := json.Marshal(files)

	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode release files")
		return
	}

	err = s.history.Record(&history.Release{
		PreviousVersion: current,
		Version:         next,
		Tag:             tag,
		Branch:          branch,
		Remote:          s.conf.Remote,
		Files:           datatypes.JSON(filesBytes),
	})

	if err != nil {
		s.log.Warn().Err(err).Msg("failed to record release history")
	}
}
