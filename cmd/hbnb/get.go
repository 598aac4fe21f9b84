package main

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <kind> <id>",
	Short: "Get an entity by ID",
	Long: `Get prints one entity as JSON.

Example:
  hbnb get State 0190c1b2-...
  hbnb get users 0190c1b2-...`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	kind, err := parseKind("get", args[0])
	if err != nil {
		return err
	}

	engine, _, err := openEngineFor("get")
	if err != nil {
		return err
	}
	defer engine.Close()

	e, err := getEntity("get", engine, kind, args[1])
	if err != nil {
		return err
	}
	return printJSON(e.ToMap(false))
}
