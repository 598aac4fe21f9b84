package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the relational schema (HBNB_ENV=test only)",
	Long: `Reset drops every table of the relational backend and recreates them
empty. It refuses to run unless HBNB_ENV is "test". The flat-file backend
has no schema and is left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := openEngineFor("reset")
		if err != nil {
			return err
		}
		defer engine.Close()

		if err := storage.Reset(cfg, engine); err != nil {
			code := exitSysError
			if isConfigError(err) {
				code = exitUserError
			}
			return failure(code, "reset", err)
		}
		if err := engine.Reload(); err != nil {
			return failure(exitSysError, "reset", err)
		}

		if cfg.Storage != types.StorageDB {
			fmt.Println("Nothing to reset for", cfg.Storage, "storage")
			return nil
		}
		logger.Infof("schema reset")
		fmt.Println("Schema reset")
		return nil
	},
}
