package assets

import (
	"embed"
	"io/fs"
)

//go:embed shaders
var embedded embed.FS

// EmbeddedShaders is the built-in shader tree, rooted at the dialect directories.
func EmbeddedShaders() fs.FS {
	sub, err := fs.Sub(embedded, "shaders")
	if err != nil {
		panic(err)
	}
	return sub
}
