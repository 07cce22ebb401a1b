package metadata

import (
	"fmt"
	"strings"
)

type RendererType uint8

const (
	OpenGL RendererType = iota
	WebGL
	Software
	Headless
)

func (t RendererType) String() string {
	switch t {
	case OpenGL:
		return "opengl"
	case WebGL:
		return "webgl"
	case Software:
		return "software"
	case Headless:
		return "headless"
	}
	return fmt.Sprintf("RendererType(%d)", t)
}

func ParseRendererType(name string) (RendererType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "opengl", "gl":
		return OpenGL, true
	case "webgl":
		return WebGL, true
	case "software", "ebiten":
		return Software, true
	case "headless":
		return Headless, true
	}
	return 0, false
}

/**
 * @brief Everything a backend needs to acquire its drawing surface.
 */
type RendererBackendConfig struct {
	/** @brief The name of the application */
	ApplicationName string
	/** @brief Initial surface size in pixels. */
	Width, Height uint32
	/** @brief The id of the canvas element (browser only). */
	CanvasID string
}
