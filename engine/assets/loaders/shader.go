package loaders

import (
	"fmt"
	"io/fs"
	"path"

	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

const (
	VertexExtension   = ".vert"
	FragmentExtension = ".frag"
)

// ShaderLoader reads `<dialect>/<name>.vert` and `<dialect>/<name>.frag`
// from FS, which is either the embedded tree or a directory on disk.
type ShaderLoader struct {
	FS fs.FS
}

func ShaderPath(name string, dialect metadata.ShaderDialect, ext string) string {
	return path.Join(string(dialect), name+ext)
}

func (sl *ShaderLoader) Load(name string, dialect metadata.ShaderDialect) (*metadata.ShaderSource, error) {
	vertex, err := fs.ReadFile(sl.FS, ShaderPath(name, dialect, VertexExtension))
	if err != nil {
		return nil, fmt.Errorf("loading vertex shader %q: %w", name, err)
	}
	fragment, err := fs.ReadFile(sl.FS, ShaderPath(name, dialect, FragmentExtension))
	if err != nil {
		return nil, fmt.Errorf("loading fragment shader %q: %w", name, err)
	}
	return &metadata.ShaderSource{
		Name:     name,
		Dialect:  dialect,
		Vertex:   string(vertex),
		Fragment: string(fragment),
	}, nil
}
