package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var createCmd = &cobra.Command{
	Use:   "create <kind> [key=value...]",
	Short: "Create an entity",
	Long: `Create stores a new entity built from key=value pairs. Values that
parse as JSON keep their type (numbers, lists); anything else is a string.
A user's password is hashed before it is stored.

References between entities are not checked here; the REST API checks them.

Example:
  hbnb create State name=California
  hbnb create Place city_id=... user_id=... name=Loft number_rooms=3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	kind, err := parseKind("create", args[0])
	if err != nil {
		return err
	}
	fields, err := parseAssignments(args[1:])
	if err != nil {
		return failure(exitUserError, "create", err)
	}
	for _, k := range []string{"id", "created_at", "updated_at", types.ClassField} {
		delete(fields, k)
	}
	if err := hashPasswordField(kind, fields); err != nil {
		return failure(exitUserError, "create", err)
	}
	e, err := types.New(kind, fields)
	if err != nil {
		return failure(exitUserError, "create", err)
	}

	engine, _, err := openEngineFor("create")
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := storage.SaveEntity(engine, e); err != nil {
		return failure(exitSysError, "create", err)
	}

	if flagJSON {
		return printJSON(e.ToMap(false))
	}
	fmt.Printf("Created %s: %s\n", kind, e.Base().ID)
	return nil
}
