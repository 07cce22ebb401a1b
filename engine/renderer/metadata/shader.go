package metadata

import "fmt"

/**
 * @brief The GLSL flavour a backend compiles.
 */
type ShaderDialect string

const (
	/** @brief GLSL ES 1.00, as accepted by WebGL 1. */
	ShaderDialectGLES ShaderDialect = "gles"
	/** @brief GLSL 4.10 core profile. */
	ShaderDialectGLCore ShaderDialect = "glcore"
)

/**
 * @brief Represents the current state of a given program.
 */
type ShaderState int

const (
	/** @brief The program has not yet gone through the creation process, and is unusable.*/
	SHADER_STATE_NOT_CREATED ShaderState = iota
	/** @brief Compilation or linking failed. The program is kept but draws are undefined.*/
	SHADER_STATE_FAILED
	/** @brief The program is compiled, linked and ready for use.*/
	SHADER_STATE_LINKED
)

func (s ShaderState) String() string {
	switch s {
	case SHADER_STATE_NOT_CREATED:
		return "not-created"
	case SHADER_STATE_FAILED:
		return "failed"
	case SHADER_STATE_LINKED:
		return "linked"
	}
	return fmt.Sprintf("ShaderState(%d)", int(s))
}

/**
 * @brief The vertex and fragment source of one program.
 */
type ShaderSource struct {
	Name     string
	Dialect  ShaderDialect
	Vertex   string
	Fragment string
}

/**
 * @brief Represents a linked shader program on the frontend.
 */
type Program struct {
	Name string
	/** @brief The internal identifier used by the backend. */
	InternalID uint32
	State      ShaderState
	/** @brief The compile/link diagnostics, empty on success. */
	InfoLog string
	/** @brief Backend private data (uniform locations, js handles...). */
	InternalData interface{}
}

func (p *Program) Linked() bool {
	return p != nil && p.State == SHADER_STATE_LINKED
}

// Uniform slot names shared by all shaders.
const (
	UniformWorld      = "mWorld"
	UniformView       = "mView"
	UniformProjection = "mProj"

	AttributePosition = "vertPosition"
	AttributeColor    = "vertColor"
)
