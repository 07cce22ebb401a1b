package demos

import (
	"github.com/spaghettifunk/primitives/engine"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/math"
)

// SquareDemo recolours the square with a random colour on every click.
type SquareDemo struct {
	*flatDemo
	colors *math.ColorSource
}

func NewSquare(config *engine.ApplicationConfig) (*engine.Game, error) {
	d := &SquareDemo{
		flatDemo: newFlatDemo(config, "square", config.Square, geometry.Square),
		colors:   math.NewColorSource(config.Square.Seed),
	}
	d.FnOnClick = d.OnClick
	return d.Game, nil
}

func (d *SquareDemo) OnClick(state engine.FrameState, event core.EventContext) (engine.FrameState, error) {
	color := geometry.Color(d.colors.Next())
	if err := d.Renderer.UpdateGeometry(d.geometry, geometry.Square(d.config.Size, color)); err != nil {
		return state, err
	}
	core.LogDebug("square colour is now %v", color)
	state.Color = color
	return state, nil
}
