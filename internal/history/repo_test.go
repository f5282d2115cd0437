package history_test

import (
	"path"
	"testing"

	"github.com/relkit/release/internal/exception"
	"github.com/relkit/release/internal/history"
	"github.com/relkit/release/internal/test_util"
	"github.com/stretchr/testify/assert"
)

func TestHistorySqliteRepo(t *testing.T) {
	testDBFile := path.Join(t.TempDir(), "release.db")

	db, err := test_util.GetDBConnection(testDBFile)

	if err != nil {
		t.Logf("failed to create test db: %s", err.Error())
		t.FailNow()
	}

	if err := test_util.Migrate(db, history.Release{}); err != nil {
		t.Logf("failed to migrate test db: %s", err.Error())
		t.FailNow()
	}

	repo := history.NewSqliteRepo(db)

	newRelease := &history.Release{
		PreviousVersion: "1.2.3",
		Version:         "1.2.4",
		Tag:             "v1.2.4",
		Branch:          "main",
		Remote:          "origin",
	}

	t.Run("Latest returns record not found error", func(st *testing.T) {
		_, err := repo.Latest()

		assert.Error(st, err)
		assert.Equal(st, exception.ErrRecordNotFound, err)
	})

	t.Run("rejects release without a version", func(st *testing.T) {
		_, err := repo.Add(&history.Release{Tag: "v0.0.0"})

		assert.Error(st, err)
	})

	t.Run("adds release", func(st *testing.T) {
		created, err := repo.Add(newRelease)

		assert.NoError(st, err)
		assert.Equal(st, newRelease, created)
	})

	t.Run("gets latest release", func(st *testing.T) {
		latest, err := repo.Latest()

		assert.NoError(st, err)
		assert.Equal(st, "1.2.4", latest.Version)
		assert.Equal(st, "v1.2.4", latest.Tag)
	})

	t.Run("gets all releases", func(st *testing.T) {
		releases, err := repo.GetAll()

		assert.NoError(st, err)
		assert.Equal(st, 1, len(releases))
		assert.Equal(st, "1.2.4", releases[0].Version)
	})
}
