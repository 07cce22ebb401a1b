//go:build mage

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

const (
	shaderRoot = "engine/assets/shaders"
	webDir     = "web"
)

type Build mg.Namespace

// Validates every embedded shader with glslangValidator.
func (Build) Shaders() error {
	return filepath.WalkDir(shaderRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		switch filepath.Ext(path) {
		case ".vert", ".frag":
		default:
			return nil
		}
		rel, err := filepath.Rel(shaderRoot, path)
		if err != nil {
			return err
		}
		// Diagnostics then name the shader as <dialect>/<file>.
		if _, err := executeCmd("glslangValidator", withArgs(rel), withDir(shaderRoot)); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

// Builds the desktop binary.
func (Build) Native() error {
	mg.Deps(Build.Shaders)
	_, err := executeCmd("go", withArgs("build", "-o", "bin/primitives", "."), withStream())
	return err
}

// Builds the WebAssembly module into web/ next to the Go wasm loader.
func (Build) Wasm() error {
	mg.Deps(Build.Shaders)
	if _, err := executeCmd("go",
		withArgs("build", "-o", filepath.Join(webDir, "primitives.wasm"), "."),
		withEnv("GOOS=js", "GOARCH=wasm"),
		withStream(),
	); err != nil {
		return err
	}
	return copyWasmExec()
}

func copyWasmExec() error {
	root, err := executeCmd("go", withArgs("env", "GOROOT"))
	if err != nil {
		return err
	}
	// The loader moved from misc/wasm to lib/wasm in Go 1.24.
	for _, dir := range []string{"lib/wasm", "misc/wasm"} {
		data, err := os.ReadFile(filepath.Join(strings.TrimSpace(root), dir, "wasm_exec.js"))
		if err != nil {
			continue
		}
		return os.WriteFile(filepath.Join(webDir, "wasm_exec.js"), data, 0o644)
	}
	return fmt.Errorf("wasm_exec.js not found under %s", root)
}
