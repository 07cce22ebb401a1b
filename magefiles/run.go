//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the demo named by $DEMO (cube by default) on the desktop renderer.
func (Run) Demo() error {
	mg.Deps(Build.Shaders)
	demo := os.Getenv("DEMO")
	if demo == "" {
		demo = "cube"
	}
	fmt.Printf("Run %s demo...\n", demo)
	_, err := executeCmd("go", withArgs("run", ".", "-demo", demo), withStream())
	return err
}

// Runs every demo for a few frames without a window.
func (Run) Headless() error {
	for _, demo := range []string{"cube", "hexagon", "square"} {
		if _, err := executeCmd("go",
			withArgs("run", ".", "-demo", demo, "-renderer", "headless", "-frames", "120"),
			withStream(),
		); err != nil {
			return err
		}
	}
	return nil
}

// Runs the test suite.
func (Run) Tests() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}
