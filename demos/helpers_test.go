package demos

import (
	"os"
	"path/filepath"
)

func writeShader(dir, dialect, name, vertex, fragment string) error {
	base := filepath.Join(dir, dialect)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(base, name+".vert"), []byte(vertex), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(base, name+".frag"), []byte(fragment), 0o644)
}
