//go:build js && wasm

// Package webgl is the browser renderer backend. It draws through a WebGL 1
// context obtained from a canvas element of the hosting page.
package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
)

type glConsts struct {
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	floatType          int
	unsignedShort      int
	triangles          int
	triangleFan        int
	colorBufferBit     int
	depthBufferBit     int
	depthTest          int
	cullFace           int
	front              int
	back               int
	frontAndBack       int
	ccw                int
	less               int
	compileStatus      int
	linkStatus         int
	vertexShader       int
	fragmentShader     int
}

type webgl_geometry_data struct {
	vbo          js.Value
	ebo          js.Value
	elementCount int
	mode         int
	indexed      bool
	// attribute pointers recorded by BindAttributes
	pointers []webgl_attribute_pointer
}

type webgl_attribute_pointer struct {
	location   int
	components int32
	stride     int32
	offset     int32
}

type webgl_program_data struct {
	handle   js.Value
	uniforms map[string]js.Value
}

type WebGLRenderer struct {
	FrameNumber uint64

	canvas js.Value
	gl     js.Value
	consts glConsts

	width, height  uint32
	nextID         uint32
	programs       map[uint32]*webgl_program_data
	geometries     map[uint32]*webgl_geometry_data
	currentProgram *webgl_program_data
}

func New() *WebGLRenderer {
	return &WebGLRenderer{
		programs:   make(map[uint32]*webgl_program_data),
		geometries: make(map[uint32]*webgl_geometry_data),
	}
}

func (r *WebGLRenderer) Initialize(config *metadata.RendererBackendConfig) error {
	canvas := js.Global().Get("document").Call("getElementById", config.CanvasID)
	if canvas.IsNull() || canvas.IsUndefined() {
		return fmt.Errorf("%w: canvas %q not found", core.ErrNoGraphicsBackend, config.CanvasID)
	}
	gl := canvas.Call("getContext", "webgl")
	if gl.IsNull() || gl.IsUndefined() {
		gl = canvas.Call("getContext", "experimental-webgl")
	}
	if gl.IsNull() || gl.IsUndefined() {
		return fmt.Errorf("%w: WebGL is not supported by this browser", core.ErrNoGraphicsBackend)
	}
	r.canvas = canvas
	r.gl = gl
	r.loadConsts()

	r.width = uint32(canvas.Get("width").Int())
	r.height = uint32(canvas.Get("height").Int())
	if r.width == 0 || r.height == 0 {
		r.width, r.height = config.Width, config.Height
	}
	r.gl.Call("viewport", 0, 0, r.width, r.height)
	r.gl.Call("frontFace", r.consts.ccw)
	return nil
}

func (r *WebGLRenderer) loadConsts() {
	r.consts = glConsts{
		arrayBuffer:        r.gl.Get("ARRAY_BUFFER").Int(),
		elementArrayBuffer: r.gl.Get("ELEMENT_ARRAY_BUFFER").Int(),
		staticDraw:         r.gl.Get("STATIC_DRAW").Int(),
		floatType:          r.gl.Get("FLOAT").Int(),
		unsignedShort:      r.gl.Get("UNSIGNED_SHORT").Int(),
		triangles:          r.gl.Get("TRIANGLES").Int(),
		triangleFan:        r.gl.Get("TRIANGLE_FAN").Int(),
		colorBufferBit:     r.gl.Get("COLOR_BUFFER_BIT").Int(),
		depthBufferBit:     r.gl.Get("DEPTH_BUFFER_BIT").Int(),
		depthTest:          r.gl.Get("DEPTH_TEST").Int(),
		cullFace:           r.gl.Get("CULL_FACE").Int(),
		front:              r.gl.Get("FRONT").Int(),
		back:               r.gl.Get("BACK").Int(),
		frontAndBack:       r.gl.Get("FRONT_AND_BACK").Int(),
		ccw:                r.gl.Get("CCW").Int(),
		less:               r.gl.Get("LESS").Int(),
		compileStatus:      r.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:         r.gl.Get("LINK_STATUS").Int(),
		vertexShader:       r.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:     r.gl.Get("FRAGMENT_SHADER").Int(),
	}
}

func (r *WebGLRenderer) Shutdown() error {
	for id, g := range r.geometries {
		r.gl.Call("deleteBuffer", g.vbo)
		if g.indexed {
			r.gl.Call("deleteBuffer", g.ebo)
		}
		delete(r.geometries, id)
	}
	for id, p := range r.programs {
		r.gl.Call("deleteProgram", p.handle)
		delete(r.programs, id)
	}
	return nil
}

func (r *WebGLRenderer) Dialect() metadata.ShaderDialect {
	return metadata.ShaderDialectGLES
}

func (r *WebGLRenderer) SurfaceSize() (uint32, uint32) {
	return r.width, r.height
}

func (r *WebGLRenderer) Resized(width, height uint32) error {
	r.width, r.height = width, height
	r.canvas.Set("width", width)
	r.canvas.Set("height", height)
	r.gl.Call("viewport", 0, 0, width, height)
	return nil
}

func (r *WebGLRenderer) compileShader(shaderType int, source string) (js.Value, error) {
	shader := r.gl.Call("createShader", shaderType)
	r.gl.Call("shaderSource", shader, source)
	r.gl.Call("compileShader", shader)
	if !r.gl.Call("getShaderParameter", shader, r.consts.compileStatus).Bool() {
		log := r.gl.Call("getShaderInfoLog", shader).String()
		r.gl.Call("deleteShader", shader)
		return js.Null(), fmt.Errorf("%w: %s", core.ErrShaderCompile, log)
	}
	return shader, nil
}

func (r *WebGLRenderer) CreateProgram(source *metadata.ShaderSource) (*metadata.Program, error) {
	program := &metadata.Program{Name: source.Name}

	vertexShader, err := r.compileShader(r.consts.vertexShader, source.Vertex)
	if err != nil {
		program.State = metadata.SHADER_STATE_FAILED
		program.InfoLog = err.Error()
		return program, fmt.Errorf("vertex shader of %q: %w", source.Name, err)
	}
	defer r.gl.Call("deleteShader", vertexShader)

	fragmentShader, err := r.compileShader(r.consts.fragmentShader, source.Fragment)
	if err != nil {
		program.State = metadata.SHADER_STATE_FAILED
		program.InfoLog = err.Error()
		return program, fmt.Errorf("fragment shader of %q: %w", source.Name, err)
	}
	defer r.gl.Call("deleteShader", fragmentShader)

	handle := r.gl.Call("createProgram")
	r.gl.Call("attachShader", handle, vertexShader)
	r.gl.Call("attachShader", handle, fragmentShader)
	r.gl.Call("linkProgram", handle)

	r.nextID++
	data := &webgl_program_data{handle: handle, uniforms: map[string]js.Value{}}
	r.programs[r.nextID] = data
	program.InternalID = r.nextID
	program.InternalData = data

	if !r.gl.Call("getProgramParameter", handle, r.consts.linkStatus).Bool() {
		program.State = metadata.SHADER_STATE_FAILED
		program.InfoLog = r.gl.Call("getProgramInfoLog", handle).String()
		return program, fmt.Errorf("%w: %q: %s", core.ErrProgramLink, source.Name, program.InfoLog)
	}
	program.State = metadata.SHADER_STATE_LINKED
	return program, nil
}

func (r *WebGLRenderer) DestroyProgram(program *metadata.Program) {
	data, ok := program.InternalData.(*webgl_program_data)
	if !ok {
		return
	}
	r.gl.Call("deleteProgram", data.handle)
	delete(r.programs, program.InternalID)
	if r.currentProgram == data {
		r.currentProgram = nil
	}
	program.InternalData = nil
	program.State = metadata.SHADER_STATE_NOT_CREATED
}

func (r *WebGLRenderer) UseProgram(program *metadata.Program) {
	data, ok := program.InternalData.(*webgl_program_data)
	if !ok {
		return
	}
	r.gl.Call("useProgram", data.handle)
	r.currentProgram = data
}

func (r *WebGLRenderer) SetUniformMatrix(program *metadata.Program, name string, value mgl32.Mat4) {
	data, ok := program.InternalData.(*webgl_program_data)
	if !ok || !program.Linked() {
		return
	}
	location, ok := data.uniforms[name]
	if !ok {
		location = r.gl.Call("getUniformLocation", data.handle, name)
		data.uniforms[name] = location
	}
	if location.IsNull() {
		return
	}
	r.gl.Call("uniformMatrix4fv", location, false, float32Array(value[:]))
}

func (r *WebGLRenderer) CreateGeometry(g *metadata.Geometry) error {
	if len(g.Mesh.Vertices) == 0 {
		return fmt.Errorf("geometry %q has no vertices", g.Name)
	}
	data := &webgl_geometry_data{
		vbo:          r.gl.Call("createBuffer"),
		elementCount: g.Mesh.ElementCount(),
		mode:         r.consts.triangles,
	}
	if g.Mesh.Topology == geometry.TopologyTriangleFan {
		data.mode = r.consts.triangleFan
	}
	r.gl.Call("bindBuffer", r.consts.arrayBuffer, data.vbo)
	r.gl.Call("bufferData", r.consts.arrayBuffer, float32Array(g.Mesh.Vertices), r.consts.staticDraw)

	if len(g.Mesh.Indices) > 0 {
		data.indexed = true
		data.ebo = r.gl.Call("createBuffer")
		r.gl.Call("bindBuffer", r.consts.elementArrayBuffer, data.ebo)
		r.gl.Call("bufferData", r.consts.elementArrayBuffer, uint16Array(g.Mesh.Indices), r.consts.staticDraw)
	}

	r.nextID++
	g.InternalID = r.nextID
	g.InternalData = data
	r.geometries[g.InternalID] = data
	return nil
}

func (r *WebGLRenderer) UpdateGeometry(g *metadata.Geometry) error {
	data, ok := g.InternalData.(*webgl_geometry_data)
	if !ok {
		return fmt.Errorf("geometry %q was never uploaded", g.Name)
	}
	r.gl.Call("bindBuffer", r.consts.arrayBuffer, data.vbo)
	r.gl.Call("bufferData", r.consts.arrayBuffer, float32Array(g.Mesh.Vertices), r.consts.staticDraw)
	data.elementCount = g.Mesh.ElementCount()
	return nil
}

func (r *WebGLRenderer) DestroyGeometry(g *metadata.Geometry) {
	data, ok := g.InternalData.(*webgl_geometry_data)
	if !ok {
		return
	}
	r.gl.Call("deleteBuffer", data.vbo)
	if data.indexed {
		r.gl.Call("deleteBuffer", data.ebo)
	}
	delete(r.geometries, g.InternalID)
	g.InternalData = nil
}

// BindAttributes resolves the attribute locations once. WebGL 1 has no vertex
// array objects, so DrawGeometry re-applies the pointers before every draw.
func (r *WebGLRenderer) BindAttributes(program *metadata.Program, g *metadata.Geometry) error {
	pdata, ok := program.InternalData.(*webgl_program_data)
	if !ok {
		return fmt.Errorf("program %q was never created", program.Name)
	}
	gdata, ok := g.InternalData.(*webgl_geometry_data)
	if !ok {
		return fmt.Errorf("geometry %q was never uploaded", g.Name)
	}
	pointers := make([]webgl_attribute_pointer, 0, len(g.Attributes))
	for _, a := range g.Attributes {
		location := r.gl.Call("getAttribLocation", pdata.handle, a.Name).Int()
		if location < 0 {
			return fmt.Errorf("attribute %q not found in program %q", a.Name, program.Name)
		}
		pointers = append(pointers, webgl_attribute_pointer{location: location, components: a.Components, stride: a.Stride, offset: a.Offset})
	}
	gdata.pointers = pointers
	r.applyPointers(gdata)
	return nil
}

func (r *WebGLRenderer) applyPointers(data *webgl_geometry_data) {
	r.gl.Call("bindBuffer", r.consts.arrayBuffer, data.vbo)
	for _, p := range data.pointers {
		r.gl.Call("vertexAttribPointer", p.location, p.components, r.consts.floatType, false, p.stride, p.offset)
		r.gl.Call("enableVertexAttribArray", p.location)
	}
	if data.indexed {
		r.gl.Call("bindBuffer", r.consts.elementArrayBuffer, data.ebo)
	}
}

func (r *WebGLRenderer) BeginFrame(state *metadata.RenderState) error {
	if state == nil {
		state = &metadata.RenderState{}
	}
	c := state.ClearColor
	r.gl.Call("clearColor", c[0], c[1], c[2], c[3])

	mask := r.consts.colorBufferBit
	if state.DepthTest {
		r.gl.Call("enable", r.consts.depthTest)
		r.gl.Call("depthFunc", r.consts.less)
		mask |= r.consts.depthBufferBit
	} else {
		r.gl.Call("disable", r.consts.depthTest)
	}

	switch state.CullMode {
	case metadata.FaceCullModeNone:
		r.gl.Call("disable", r.consts.cullFace)
	case metadata.FaceCullModeFront:
		r.gl.Call("enable", r.consts.cullFace)
		r.gl.Call("cullFace", r.consts.front)
	case metadata.FaceCullModeBack:
		r.gl.Call("enable", r.consts.cullFace)
		r.gl.Call("cullFace", r.consts.back)
	case metadata.FaceCullModeFrontAndBack:
		r.gl.Call("enable", r.consts.cullFace)
		r.gl.Call("cullFace", r.consts.frontAndBack)
	}

	r.gl.Call("clear", mask)
	return nil
}

func (r *WebGLRenderer) DrawGeometry(g *metadata.Geometry) {
	data, ok := g.InternalData.(*webgl_geometry_data)
	if !ok {
		return
	}
	r.applyPointers(data)
	if data.indexed {
		r.gl.Call("drawElements", data.mode, data.elementCount, r.consts.unsignedShort, 0)
		return
	}
	r.gl.Call("drawArrays", data.mode, 0, data.elementCount)
}

// EndFrame is a no-op: the browser composites the canvas once the animation
// frame callback returns.
func (r *WebGLRenderer) EndFrame() error {
	r.FrameNumber++
	return nil
}
