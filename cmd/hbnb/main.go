// Package main provides the hbnb binary: the REST API server plus
// administrative commands over the same storage engine.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/hbnb/internal/config"
)

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var ce *cmdError
	if !errors.As(err, &ce) {
		config.Exitf("Error: %v", err)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(exitCode(err))
}
