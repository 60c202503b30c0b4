// Package repositorytest opens throwaway SQLite catalogs for tests.
package repositorytest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"droscher.com/CookBook/configs"
	"droscher.com/CookBook/pkg/repository"
)

// Open creates a migrated SQLite database in a temporary directory. It is closed when the
// test finishes.
func Open(t *testing.T) *repository.Repository {
	t.Helper()

	conf := &configs.Config{DB: configs.DB{
		Driver: configs.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "cookbook.db"),
	}}

	repo, err := repository.Open(conf, zaptest.NewLogger(t))
	require.NoError(t, err)

	t.Cleanup(repo.Close)

	require.NoError(t, repo.Migrate(context.Background()))

	return repo
}
