package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/storage"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <kind> <id>",
	Short: "Delete an entity and its dependents",
	Long: `Delete removes an entity. Dependents go with it: a state's cities, a
city's places, a place's reviews, a user's places and reviews. A deleted
amenity is unlinked from every place.

Example:
  hbnb delete State 0190c1b2-...`,
	Args: cobra.ExactArgs(2),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	kind, err := parseKind("delete", args[0])
	if err != nil {
		return err
	}

	engine, _, err := openEngineFor("delete")
	if err != nil {
		return err
	}
	defer engine.Close()

	e, err := getEntity("delete", engine, kind, args[1])
	if err != nil {
		return err
	}
	if err := storage.DeleteEntity(engine, e); err != nil {
		return failure(exitSysError, "delete", err)
	}

	if flagJSON {
		return printJSON(map[string]string{"deleted": args[1], "kind": string(kind)})
	}
	fmt.Printf("Deleted %s: %s\n", kind, args[1])
	return nil
}
