//go:build !js

package engine

import (
	"fmt"

	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/platform"
	"github.com/spaghettifunk/primitives/engine/renderer"
	"github.com/spaghettifunk/primitives/engine/renderer/headless"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
	"github.com/spaghettifunk/primitives/engine/renderer/opengl"
	"github.com/spaghettifunk/primitives/engine/renderer/software"
)

func DefaultRendererType() metadata.RendererType {
	return metadata.OpenGL
}

func newHost(rt metadata.RendererType, bus *core.EventBus) (platform.Platform, renderer.RendererBackend, error) {
	switch rt {
	case metadata.OpenGL:
		p := platform.NewGLFW(bus)
		return p, opengl.New(p.SwapBuffers), nil
	case metadata.Software:
		p := platform.NewEbiten(bus)
		b := software.New()
		p.OnDraw = b.SetTarget
		return p, b, nil
	case metadata.Headless:
		return platform.NewHeadless(bus), headless.New(metadata.ShaderDialectGLES), nil
	}
	return nil, nil, fmt.Errorf("%w: %s is not available on this platform", core.ErrUnknownRenderer, rt)
}
