package engine

import (
	"time"

	"github.com/spaghettifunk/primitives/engine/assets"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/math"
	"github.com/spaghettifunk/primitives/engine/renderer"
)

// FrameState is the per-frame value threaded through the game callbacks.
// Callbacks receive the previous state and return the next one.
type FrameState struct {
	// Frame is the number of frames completed before this one.
	Frame uint64
	// Now is the time elapsed since the loop started.
	Now       time.Duration
	Transform math.TransformState
	// Color is the tint of flat primitives.
	Color geometry.Color
}

type Game struct {
	ApplicationConfig *ApplicationConfig
	// Set by the engine before FnInitialize is called.
	Renderer *renderer.Renderer
	Assets   *assets.AssetManager

	FnInitialize   Initialize
	FnUpdate       Update
	FnRender       Render
	FnOnResize     OnResize
	FnOnClick      OnClick
	FnReloadShader ReloadShader
	FnShutdown     Shutdown
}

type Initialize func() (FrameState, error)
type Update func(state FrameState, now time.Duration) (FrameState, error)
type Render func(state FrameState, packet *renderer.RenderPacket) error
type OnResize func(state FrameState, width uint32, height uint32) (FrameState, error)
type OnClick func(state FrameState, event core.EventContext) (FrameState, error)
type ReloadShader func(names []string) error
type Shutdown func() error
