//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Inspect runs gpustate-inspect against the register dump at dumpPath
// (e.g. mage run:inspect capture.bin). Only -dump is passed; no other
// flags are forwarded.
func (Run) Inspect(dumpPath string) error {
	fmt.Println("Running gpustate-inspect...")
	if _, err := executeCmd("go", withArgs("run", "./cmd/gpustate-inspect", "-dump", dumpPath), withStream()); err != nil {
		return err
	}
	return nil
}

// Tests runs the full test suite.
func (Run) Tests() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}
