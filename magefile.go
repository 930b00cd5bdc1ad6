//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

var Default = Test

// Test runs the full test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint vets the module.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// Build compiles the wheel helper binary into bin/.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/build-manylinux-wheels", "./cmd/build-manylinux-wheels")
}

// All lints, tests and builds.
func All() {
	mg.SerialDeps(Lint, Test, Build)
}
