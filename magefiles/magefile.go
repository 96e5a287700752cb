//go:build mage

// Package main contains Mage build targets for the NewsNex API.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const binDir = "bin"

// binaries maps each output name to its main package.
var binaries = map[string]string{
	"newsnex-api": "./cmd/api",
	"newsnex":     "./cmd/newsnex",
}

// Default target runs the tests and builds every binary.
var Default = All

// All runs the tests then builds.
func All() {
	mg.SerialDeps(Test, Build)
}

// Build compiles the API server and CLI into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	for name, pkg := range binaries {
		out := filepath.Join(binDir, name)
		if err := sh.RunV("go", "build", "-o", out, pkg); err != nil {
			return fmt.Errorf("go build %s: %w", pkg, err)
		}
		fmt.Printf("Built %s\n", out)
	}
	return nil
}

// Lib builds the C shared library for FFI consumers.
func Lib() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, "libnewsnex.so")
	env := map[string]string{"CGO_ENABLED": "1"}
	return sh.RunWithV(env, "go", "build", "-buildmode=c-shared", "-o", out, "./newsnex-lib/capi")
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Cover writes a coverage profile to coverage.out.
func Cover() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Run starts the API server with the default configuration.
func Run() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, "newsnex-api"))
}

// Clean removes build output.
func Clean() error {
	if err := sh.Rm(binDir); err != nil {
		return err
	}
	return sh.Rm("coverage.out")
}
