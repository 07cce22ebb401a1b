package assets

import "github.com/spaghettifunk/primitives/engine/renderer/metadata"

type Loader interface {
	// Load returns the vertex/fragment pair called name written in dialect.
	Load(name string, dialect metadata.ShaderDialect) (*metadata.ShaderSource, error)
}
