//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// unitPkgs are the packages with in-process tests.
var unitPkgs = []string{"./pkg/...", "./internal/...", "./cmd/..."}

// storagePkgs hold the two backends and the layer that picks between them.
var storagePkgs = []string{"./internal/filestore", "./internal/dbstore", "./internal/storage"}

const coverProfile = "cover.out"

// Test groups the test targets.
type Test mg.Namespace

// All runs the unit tests, then the CLI integration tests.
func (Test) All() {
	mg.SerialDeps(Test.Unit, Test.Integration)
}

// Unit runs every package test except the CLI integration suite.
func (Test) Unit() error {
	return goTest(unitPkgs...)
}

// Storage runs the backend tests with the race detector. Both backends are
// exercised on temp files and in-process SQLite.
func (Test) Storage() error {
	return goTest(append([]string{"-race"}, storagePkgs...)...)
}

// Integration runs the CLI suite. It builds its own hbnb binary, so results
// are never cached.
func (Test) Integration() error {
	return goTest("-count=1", "./tests/integration/...")
}

// Cover writes a coverage profile for the unit tests to bin/ and prints the
// per-function summary.
func (Test) Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, coverProfile)
	if err := goTest(append([]string{"-coverprofile=" + profile}, unitPkgs...)...); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+profile)
}

func goTest(args ...string) error {
	return sh.RunV(binGo, append([]string{"test"}, args...)...)
}
