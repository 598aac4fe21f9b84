//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Stats builds hbnb and prints the entity counts of the store configured for
// the current directory.
func Stats() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binaryDir, binaryName), "stats")
}
