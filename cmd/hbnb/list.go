package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var listCmd = &cobra.Command{
	Use:   "list [kind]",
	Short: "List entities, optionally of one kind",
	Long: `List prints every stored entity, or only those of the given kind,
ordered by creation time.

Kinds may be given by name or resource name, in any case.

Example:
  hbnb list
  hbnb list State
  hbnb list places --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	kinds := types.Kinds
	if len(args) == 1 {
		kind, err := parseKind("list", args[0])
		if err != nil {
			return err
		}
		kinds = []types.Kind{kind}
	}

	engine, _, err := openEngineFor("list")
	if err != nil {
		return err
	}
	defer engine.Close()

	var entities []types.Entity
	for _, kind := range kinds {
		es, err := storage.List(engine, kind)
		if err != nil {
			return failure(exitSysError, "list", err)
		}
		entities = append(entities, es...)
	}

	if flagJSON {
		out := make([]map[string]any, len(entities))
		for i, e := range entities {
			out[i] = e.ToMap(false)
		}
		return printJSON(out)
	}
	for _, e := range entities {
		fmt.Println(formatEntity(e))
	}
	return nil
}
