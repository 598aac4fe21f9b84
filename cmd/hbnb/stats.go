package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print entity counts per resource",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, _, err := openEngineFor("stats")
		if err != nil {
			return err
		}
		defer engine.Close()

		counts := make(map[string]int, len(types.Kinds))
		for _, kind := range types.Kinds {
			n, err := storage.Count(engine, kind)
			if err != nil {
				return failure(exitSysError, "stats", err)
			}
			counts[kind.Resource()] = n
		}

		if flagJSON {
			return printJSON(counts)
		}
		for _, kind := range types.Kinds {
			fmt.Printf("%-10s %d\n", kind.Resource()+":", counts[kind.Resource()])
		}
		return nil
	},
}
