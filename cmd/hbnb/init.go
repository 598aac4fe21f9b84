package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize hbnb configuration and storage",
	Long: `Init writes a default config.yaml when none exists and creates the
backing store: an empty flat file, or the relational schema.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := openEngineFor("init")
		if err != nil {
			return err
		}
		defer engine.Close()

		if err := engine.Save(); err != nil {
			return failure(exitSysError, "init", err)
		}

		fmt.Println("hbnb initialized successfully")
		fmt.Println("  config: ", settings.configDir)
		fmt.Println("  data:   ", cfg.DataDir)
		if cfg.Storage == types.StorageFile {
			fmt.Println("  file:   ", storage.FilePath(cfg))
		}
		fmt.Println("  storage:", cfg.Storage)
		return nil
	},
}
