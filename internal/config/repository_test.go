package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"manuscript-tracker/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRepository_Production(t *testing.T) {
	cfg := NewConfig()
	cfg.Database.Dir = filepath.Join(t.TempDir(), "nested", "dir")

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.CreateChapter(context.Background(), &sqlite.Chapter{Ordinal: 1, Title: "Intro", Status: "not_started"}))

	_, err = os.Stat(cfg.GetDatabasePath())
	assert.NoError(t, err, "database file is created under the configured directory")
}

func TestCreateRepository_Testing(t *testing.T) {
	cfg := NewConfig()
	cfg.Application.Env = EnvTesting
	cfg.Database.Dir = filepath.Join(t.TempDir(), "unused")

	repo, err := CreateRepository(cfg)
	require.NoError(t, err)
	defer repo.Close()

	chapters, err := repo.ListChapters(context.Background())
	require.NoError(t, err)
	assert.Empty(t, chapters)

	_, err = os.Stat(cfg.Database.Dir)
	assert.True(t, os.IsNotExist(err), "testing env must not touch the filesystem")
}

func TestCreateTestRepository(t *testing.T) {
	repo, err := CreateTestRepository()
	require.NoError(t, err)
	defer repo.Close()

	_, err = repo.GetChapter(context.Background(), 1)
	assert.Error(t, err)
}
