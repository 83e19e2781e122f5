//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Inspect builds the gpustate-inspect debugging binary.
func (Build) Inspect() error {
	if _, err := executeCmd("go", withArgs("build", "-o", "bin/gpustate-inspect", "./cmd/gpustate-inspect"), withStream()); err != nil {
		return err
	}
	return nil
}
