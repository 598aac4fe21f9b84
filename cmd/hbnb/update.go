package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hbnb/internal/storage"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

var updateCmd = &cobra.Command{
	Use:   "update <kind> <id> key=value...",
	Short: "Update entity fields",
	Long: `Update overlays key=value pairs onto an existing entity and saves it.
The id and timestamps cannot be changed. Nothing is changed when any value
does not fit its field.

Example:
  hbnb update State 0190c1b2-... name=Nevada`,
	Args: cobra.MinimumNArgs(2),
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	kind, err := parseKind("update", args[0])
	if err != nil {
		return err
	}
	fields, err := parseAssignments(args[2:])
	if err != nil {
		return failure(exitUserError, "update", err)
	}
	if len(fields) == 0 {
		return failure(exitUserError, "update", errors.New("at least one key=value must be provided"))
	}
	if err := hashPasswordField(kind, fields); err != nil {
		return failure(exitUserError, "update", err)
	}

	engine, _, err := openEngineFor("update")
	if err != nil {
		return err
	}
	defer engine.Close()

	e, err := getEntity("update", engine, kind, args[1])
	if err != nil {
		return err
	}
	if err := types.Apply(e, fields); err != nil {
		return failure(exitUserError, "update", err)
	}
	if err := storage.SaveEntity(engine, e); err != nil {
		return failure(exitSysError, "update", err)
	}

	if flagJSON {
		return printJSON(e.ToMap(false))
	}
	fmt.Printf("Updated %s: %s\n", kind, e.Base().ID)
	return nil
}
