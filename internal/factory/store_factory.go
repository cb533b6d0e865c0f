package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/spam-bench/internal/adapters/store"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates run history stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateResultStore creates a result store based on the configuration
func (f *StoreFactory) CreateResultStore() (core.ResultStore, error) {
	storeCfg := f.cfg.GetStore()
	timeout, err := f.cfg.GetDuration("store.timeout")
	if err != nil {
		return nil, fmt.Errorf("invalid store timeout: %w", err)
	}

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		// Ensure directory exists
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, timeout, f.logger)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, timeout, f.logger)
	case "postgres":
		return store.NewPostgresStore(storeCfg.PostgresDSN, timeout, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}
