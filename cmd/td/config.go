package main

import (
	"fmt"
	"os"

	"taskdash/internal/config"
	"taskdash/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// StoreFactory creates session store repositories based on environment
type StoreFactory struct {
	env Environment
}

// NewStoreFactory creates a new store factory for the given environment
func NewStoreFactory(env Environment) *StoreFactory {
	return &StoreFactory{env: env}
}

// CreateRepository creates a session repository for the current environment
func (sf *StoreFactory) CreateRepository(cfg *config.Config) (sqlite.Repository, error) {
	switch sf.env {
	case Development:
		return sf.createDevelopmentRepository()
	case Testing:
		return sf.createTestingRepository()
	default:
		return sf.createProductionRepository(cfg)
	}
}

// createDevelopmentRepository uses a session store file in the working
// directory
func (sf *StoreFactory) createDevelopmentRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New("session.db")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize development session store: %w", err)
	}
	return repo, nil
}

// createTestingRepository uses an in-memory session store
func (sf *StoreFactory) createTestingRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize testing session store: %w", err)
	}
	return repo, nil
}

// createProductionRepository uses the configured session store location
func (sf *StoreFactory) createProductionRepository(cfg *config.Config) (sqlite.Repository, error) {
	if err := os.MkdirAll(cfg.Session.Dir, os.FileMode(cfg.Session.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	repo, err := sqlite.New(cfg.GetSessionStorePath())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	return repo, nil
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("TD_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	case "production":
		return Production
	default:
		// Default to production for safety
		return Production
	}
}
