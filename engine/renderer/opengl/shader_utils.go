//go:build !js

package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

/**
 * @brief Uniform locations resolved once after linking.
 */
type opengl_program_data struct {
	Uniforms map[string]int32
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", core.ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func stageName(shaderType uint32) string {
	if shaderType == gl.VERTEX_SHADER {
		return "vertex"
	}
	return "fragment"
}

func (b *OpenGLRenderer) CreateProgram(source *metadata.ShaderSource) (*metadata.Program, error) {
	program := &metadata.Program{Name: source.Name, State: metadata.SHADER_STATE_NOT_CREATED}

	stages := []struct {
		kind uint32
		text string
	}{
		{gl.VERTEX_SHADER, source.Vertex},
		{gl.FRAGMENT_SHADER, source.Fragment},
	}
	shaders := make([]uint32, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()

	for _, stage := range stages {
		shader, err := compileShader(stage.text, stage.kind)
		if err != nil {
			program.State = metadata.SHADER_STATE_FAILED
			program.InfoLog = err.Error()
			return program, fmt.Errorf("%s shader of %q: %w", stageName(stage.kind), source.Name, err)
		}
		shaders = append(shaders, shader)
	}

	handle := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(handle, s)
	}
	gl.LinkProgram(handle)
	program.InternalID = handle

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(log))
		program.State = metadata.SHADER_STATE_FAILED
		program.InfoLog = strings.TrimRight(log, "\x00")
		return program, fmt.Errorf("%w: %q: %s", core.ErrProgramLink, source.Name, program.InfoLog)
	}

	data := &opengl_program_data{Uniforms: map[string]int32{}}
	for _, name := range []string{metadata.UniformWorld, metadata.UniformView, metadata.UniformProjection} {
		data.Uniforms[name] = gl.GetUniformLocation(handle, gl.Str(name+"\x00"))
	}
	program.InternalData = data
	program.State = metadata.SHADER_STATE_LINKED
	return program, nil
}

func (b *OpenGLRenderer) DestroyProgram(program *metadata.Program) {
	if program.InternalID != 0 {
		gl.DeleteProgram(program.InternalID)
	}
	program.InternalID = 0
	program.State = metadata.SHADER_STATE_NOT_CREATED
}

func (b *OpenGLRenderer) UseProgram(program *metadata.Program) {
	// A failed program still gets selected; GL draws nothing with it.
	gl.UseProgram(program.InternalID)
}

func (b *OpenGLRenderer) SetUniformMatrix(program *metadata.Program, name string, value mgl32.Mat4) {
	data, ok := program.InternalData.(*opengl_program_data)
	if !ok {
		return
	}
	location, ok := data.Uniforms[name]
	if !ok {
		location = gl.GetUniformLocation(program.InternalID, gl.Str(name+"\x00"))
		data.Uniforms[name] = location
	}
	if location < 0 {
		return
	}
	gl.UniformMatrix4fv(location, 1, false, &value[0])
}
