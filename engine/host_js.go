//go:build js && wasm

package engine

import (
	"fmt"

	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/platform"
	"github.com/spaghettifunk/primitives/engine/renderer"
	"github.com/spaghettifunk/primitives/engine/renderer/headless"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
	"github.com/spaghettifunk/primitives/engine/renderer/software"
	"github.com/spaghettifunk/primitives/engine/renderer/webgl"
)

func DefaultRendererType() metadata.RendererType {
	return metadata.WebGL
}

func newHost(rt metadata.RendererType, bus *core.EventBus) (platform.Platform, renderer.RendererBackend, error) {
	switch rt {
	case metadata.WebGL:
		return platform.NewBrowser(bus), webgl.New(), nil
	case metadata.Software:
		p := platform.NewEbiten(bus)
		b := software.New()
		p.OnDraw = b.SetTarget
		return p, b, nil
	case metadata.Headless:
		return platform.NewHeadless(bus), headless.New(metadata.ShaderDialectGLES), nil
	}
	return nil, nil, fmt.Errorf("%w: %s is not available in the browser", core.ErrUnknownRenderer, rt)
}
