package release_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/relkit/release/internal/config"
	"github.com/relkit/release/internal/exception"
	mock_history "github.com/relkit/release/internal/mock/history"
	mock_manifest "github.com/relkit/release/internal/mock/manifest"
	mock_release "github.com/relkit/release/internal/mock/release"
	mock_vcs "github.com/relkit/release/internal/mock/vcs"
	"github.com/relkit/release/internal/release"
	"github.com/relkit/release/internal/version"
	"github.com/stretchr/testify/assert"
)

func TestReleaseService(t *testing.T) {
	ctrl := gomock.NewController(t)

	defer ctrl.Finish()

	mockVCS := mock_vcs.NewMockVersionControl(ctrl)
	mockManifest := mock_manifest.NewMockStore(ctrl)
	mockHistory := mock_history.NewMockService(ctrl)
	mockPrompter := mock_release.NewMockPrompter(ctrl)

	conf := *config.Default()

	newService := func(out *bytes.Buffer) *release.Service {
		return release.NewService(
			conf,
			mockVCS,
			mockManifest,
			mockHistory,
			mockPrompter,
			out,
		)
	}

	ctx := context.Background()

	patchTarget, err := version.ParseTarget("patch")
	assert.NoError(t, err)

	explicitTarget, err := version.ParseTarget("4.5.6")
	assert.NoError(t, err)

	t.Run("errors when not inside a repository", func(st *testing.T) {
		out := &bytes.Buffer{}

		mockVCS.EXPECT().IsRepo(ctx).Return(false)

		err := newService(out).Run(ctx, release.Request{Target: patchTarget})

		assert.Error(st, err)
		assert.Equal(st, exception.ErrNotARepository, err)
	})

	t.Run("errors and prints status for a dirty work tree", func(st *testing.T) {
		out := &bytes.Buffer{}

		mockVCS.EXPECT().IsRepo(ctx).Return(true)
		mockVCS.EXPECT().Status(ctx).Return(" M package.json\n?? notes.txt", nil)

		err := newService(out).Run(ctx, release.Request{Target: patchTarget})

		assert.Error(st, err)
		assert.Equal(st, exception.ErrDirtyWorkTree, err)
		assert.Contains(st, out.String(), " M package.json")
	})

	t.Run("declined confirmation cancels without mutating", func(st *testing.T) {
		out := &bytes.Buffer{}

		mockVCS.EXPECT().IsRepo(ctx).Return(true)
		mockVCS.EXPECT().Status(ctx).Return("", nil)
		mockManifest.EXPECT().Version().Return("1.2.3", nil)
		mockPrompter.EXPECT().Confirm(gomock.Any()).Return(false, nil)

		err := newService(out).Run(ctx, release.Request{Target: explicitTarget})

		assert.NoError(st, err)
		assert.Contains(st, out.String(), "Release cancelled")
	})

	t.Run("releases a patch bump", func(st *testing.T) {
		out := &bytes.Buffer{}

		mockVCS.EXPECT().IsRepo(ctx).Return(true)
		mockVCS.EXPECT().Status(ctx).Return("", nil)
		mockManifest.EXPECT().Version().Return("1.2.3", nil)
		mockManifest.EXPECT().Bump(ctx, version.KindPatch).Return("1.2.4", nil)
		mockPrompter.EXPECT().Confirm(gomock.Any()).Return(true, nil)
		mockManifest.EXPECT().Files().Return([]string{"package.json", "package-lock.json"})
		mockVCS.EXPECT().CurrentBranch(ctx).Return("main", nil)
		mockVCS.EXPECT().RemoteURL(ctx, "origin").Return("git@github.com:acme/widgets.git", nil)
		mockHistory.EXPECT().Record(gomock.Any()).Return(nil)

		gomock.InOrder(
			mockVCS.EXPECT().Add(ctx, "package.json", "package-lock.json").Return(nil),
			mockVCS.EXPECT().Commit(ctx, "chore: bump version to 1.2.4").Return(nil),
			mockVCS.EXPECT().Tag(ctx, "v1.2.4", "Release v1.2.4").Return(nil),
			mockVCS.EXPECT().Push(ctx, "origin", "main").Return(nil),
			mockVCS.EXPECT().Push(ctx, "origin", "v1.2.4").Return(nil),
		)

		err := newService(out).Run(ctx, release.Request{Target: patchTarget})

		assert.NoError(st, err)
		assert.Contains(st, out.String(), "Current version: 1.2.3")
		assert.Contains(st, out.String(), "New version:     1.2.4")
		assert.Contains(st, out.String(), "Released v1.2.4")
		assert.Contains(st, out.String(), "https://github.com/acme/widgets/actions")
	})

	t.Run("releases an explicit version verbatim", func(st *testing.T) {
		out := &bytes.Buffer{}

		mockVCS.EXPECT().IsRepo(ctx).Return(true)
		mockVCS.EXPECT().Status(ctx).Return("", nil)
		mockManifest.EXPECT().Version().Return("1.2.3", nil)
		mockPrompter.EXPECT().Confirm(gomock.Any()).Return(true, nil)
		mockManifest.EXPECT().Files().Return([]string{"package.json", "package-lock.json"})
		mockVCS.EXPECT().CurrentBranch(ctx).Return("main", nil)
		mockVCS.EXPECT().RemoteURL(ctx, "origin").Return("git@github.com:acme/widgets.git", nil)
		mockHistory.EXPECT().Record(gomock.Any()).Return(nil)

		gomock.InOrder(
			// explicit targets touch the manifest only after confirmation
			mockManifest.EXPECT().Apply(ctx, "4.5.6").Return(nil),
			mockVCS.EXPECT().Add(ctx, "package.json", "package-lock.json").Return(nil),
			mockVCS.EXPECT().Commit(ctx, "chore: bump version to 4.5.6").Return(nil),
			mockVCS.EXPECT().Tag(ctx, "v4.5.6", "Release v4.5.6").Return(nil),
			mockVCS.EXPECT().Push(ctx, "origin", "main").Return(nil),
			mockVCS.EXPECT().Push(ctx, "origin", "v4.5.6").Return(nil),
		)

		err := newService(out).Run(ctx, release.Request{Target: explicitTarget})

		assert.NoError(st, err)
		assert.Contains(st, out.String(), "Released v4.5.6")
	})

	t.Run("pushes the configured branch instead of the checked out one", func(st *testing.T) {
		out := &bytes.Buffer{}

		branchConf := conf
		branchConf.Branch = "release-train"

		service := release.NewService(
			branchConf,
			mockVCS,
			mockManifest,
			mockHistory,
			mockPrompter,
			out,
		)

		mockVCS.EXPECT().IsRepo(ctx).Return(true)
		mockVCS.EXPECT().Status(ctx).Return("", nil)
		mockManifest.EXPECT().Version().Return("1.2.3", nil)
		mockManifest.EXPECT().Bump(ctx, version.KindPatch).Return("1.2.4", nil)
		mockPrompter.EXPECT().Confirm(gomock.Any()).Return(true, nil)
		mockManifest.EXPECT().Files().Return([]string{"package.json", "package-lock.json"})
		mockVCS.EXPECT().RemoteURL(ctx, "origin").Return("git@github.com:acme/widgets.git", nil)
		mockHistory.EXPECT().Record(gomock.Any()).Return(nil)

		// no CurrentBranch call: the configured branch wins
		gomock.InOrder(
			mockVCS.EXPECT().Add(ctx, "package.json", "package-lock.json").Return(nil),
			mockVCS.EXPECT().Commit(ctx, "chore: bump version to 1.2.4").Return(nil),
			mockVCS.EXPECT().Tag(ctx, "v1.2.4", "Release v1.2.4").Return(nil),
			mockVCS.EXPECT().Push(ctx, "origin", "release-train").Return(nil),
			mockVCS.EXPECT().Push(ctx, "origin", "v1.2.4").Return(nil),
		)

		err := service.Run(ctx, release.Request{Target: patchTarget})

		assert.NoError(st, err)
	})

	t.Run("dry run computes the bump without mutating", func(st *testing.T) {
		out := &bytes.Buffer{}

		mockVCS.EXPECT().IsRepo(ctx).Return(true)
		mockVCS.EXPECT().Status(ctx).Return("", nil)
		mockManifest.EXPECT().Version().Return("1.2.3", nil)

		err := newService(out).Run(ctx, release.Request{Target: patchTarget, DryRun: true})

		assert.NoError(st, err)
		assert.Contains(st, out.String(), "New version:     1.2.4")
		assert.Contains(st, out.String(), "Dry run - nothing was changed")
	})

	t.Run("stops at the first failing step", func(st *testing.T) {
		out := &bytes.Buffer{}

		mockVCS.EXPECT().IsRepo(ctx).Return(true)
		mockVCS.EXPECT().Status(ctx).Return("", nil)
		mockManifest.EXPECT().Version().Return("1.2.3", nil)
		mockManifest.EXPECT().Bump(ctx, version.KindPatch).Return("1.2.4", nil)
		mockPrompter.EXPECT().Confirm(gomock.Any()).Return(true, nil)
		mockManifest.EXPECT().Files().Return([]string{"package.json", "package-lock.json"})
		mockVCS.EXPECT().Add(ctx, "package.json", "package-lock.json").Return(nil)
		mockVCS.EXPECT().Commit(ctx, "chore: bump version to 1.2.4").
			Return(assert.AnError)

		err := newService(out).Run(ctx, release.Request{Target: patchTarget})

		assert.Error(st, err)
		assert.Equal(st, assert.AnError, err)
	})
}

func TestStdinPrompter(t *testing.T) {
	t.Run("confirms on y", func(st *testing.T) {
		for _, input := range []string{"y\n", "Y\n"} {
			out := &bytes.Buffer{}
			prompter := release.NewStdinPrompter(bytes.NewBufferString(input), out)

			confirmed, err := prompter.Confirm("Proceed? (y/N) ")

			assert.NoError(st, err)
			assert.True(st, confirmed)
			assert.Equal(st, "Proceed? (y/N) ", out.String())
		}
	})

	t.Run("declines on anything else", func(st *testing.T) {
		for _, input := range []string{"n\n", "yes\n", "\n", ""} {
			out := &bytes.Buffer{}
			prompter := release.NewStdinPrompter(bytes.NewBufferString(input), out)

			confirmed, err := prompter.Confirm("Proceed? (y/N) ")

			assert.NoError(st, err)
			assert.False(st, confirmed)
		}
	})

	t.Run("propagates read failures", func(st *testing.T) {
		out := &bytes.Buffer{}
		prompter := release.NewStdinPrompter(failingReader{}, out)

		confirmed, err := prompter.Confirm("Proceed? (y/N) ")

		assert.Error(st, err)
		assert.False(st, confirmed)
	})
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("input stream closed")
}
