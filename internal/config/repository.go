package config

import (
	"fmt"
	"os"

	"manuscript-tracker/internal/repository/sqlite"
)

// CreateRepository opens the repository selected by Application.Env:
// testing uses an in-memory database, development ./mt.db, and production
// the configured database path.
func CreateRepository(config *Config) (sqlite.Repository, error) {
	switch config.Application.Env {
	case EnvTesting:
		return CreateTestRepository()
	case EnvDevelopment:
		return openRepository("./mt.db", config)
	}

	if err := os.MkdirAll(config.Database.Dir, os.FileMode(config.Database.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return openRepository(config.GetDatabasePath(), config)
}

func openRepository(dbPath string, config *Config) (sqlite.Repository, error) {
	repo, err := sqlite.New(dbPath, sqlite.WithQueryTimeout(config.GetQueryTimeout()))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return repo, nil
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}
