// Package demos holds the games the engine can run: a spinning cube and two
// flat primitives.
package demos

import (
	"fmt"
	"slices"

	"github.com/spaghettifunk/primitives/engine"
	"github.com/spaghettifunk/primitives/engine/core"
	"golang.org/x/exp/maps"
)

type Constructor func(config *engine.ApplicationConfig) (*engine.Game, error)

var registry = map[string]Constructor{
	"cube":    NewCube,
	"hexagon": NewHexagon,
	"square":  NewSquare,
}

// New builds the demo registered under name.
func New(name string, config *engine.ApplicationConfig) (*engine.Game, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", core.ErrUnknownDemo, name, Names())
	}
	if config == nil {
		config = engine.DefaultApplicationConfig()
	}
	return fn(config)
}

func Names() []string {
	names := maps.Keys(registry)
	slices.Sort(names)
	return names
}
