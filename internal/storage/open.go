// Package storage selects the storage backend and builds the queries and
// write operations the API and CLI share on top of types.Engine.
package storage

import (
	"fmt"

	"github.com/juju/loggo/v2"

	"github.com/mesh-intelligence/hbnb/internal/dbstore"
	"github.com/mesh-intelligence/hbnb/internal/filestore"
	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var logger = loggo.GetLogger("hbnb.storage")

// Open builds the backend named by cfg.Storage and loads its state. When
// cfg.ResetSchema is set in the test environment, a relational backend drops
// its tables first.
func Open(cfg types.Config) (types.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage config: %w", err)
	}

	engine, err := build(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.ResetSchema {
		if err := Reset(cfg, engine); err != nil {
			engine.Close()
			return nil, err
		}
	}

	if err := engine.Reload(); err != nil {
		engine.Close()
		return nil, fmt.Errorf("loading %s storage: %w", cfg.Storage, err)
	}
	logger.Debugf("storage loaded")
	return engine, nil
}

func build(cfg types.Config) (types.Engine, error) {
	switch cfg.Storage {
	case types.StorageFile:
		path := FilePath(cfg)
		logger.Infof("using file storage at %s", path)
		return filestore.New(path), nil
	case types.StorageDB:
		s, err := dbstore.New(cfg.DB, cfg.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Infof("using %s database storage", s.Driver())
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrStorageUnknown, cfg.Storage)
	}
}

// FilePath returns the flat-store file for cfg.
func FilePath(cfg types.Config) string {
	return paths.StoreFile(cfg.DataDir, cfg.FileName, paths.DefaultStoreFile)
}

// Reset drops every table of a relational engine. It is refused outside the
// test environment. Engines without a schema are left alone.
func Reset(cfg types.Config, engine types.Engine) error {
	if !cfg.TestMode() {
		return types.ErrResetNotAllowed
	}
	r, ok := engine.(types.Resetter)
	if !ok {
		logger.Debugf("%s storage has no schema to reset", cfg.Storage)
		return nil
	}
	if err := r.DropAll(); err != nil {
		return fmt.Errorf("resetting schema: %w", err)
	}
	logger.Warningf("dropped all tables")
	return nil
}
