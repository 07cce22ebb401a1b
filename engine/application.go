package engine

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"github.com/pelletier/go-toml/v2/unstable"
	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/spaghettifunk/primitives/engine/geometry"
	"github.com/spaghettifunk/primitives/engine/math"
	"github.com/spaghettifunk/primitives/engine/renderer/metadata"
	"golang.org/x/image/colornames"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX int32 `toml:"start_pos_x"`
	// Window starting position y axis, if applicable.
	StartPosY int32 `toml:"start_pos_y"`
	// Window starting width, if applicable.
	StartWidth uint32 `toml:"start_width"`
	// Window starting height, if applicable.
	StartHeight uint32 `toml:"start_height"`
	// The application name used in windowing, if applicable.
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`

	// Which demo to run: cube, hexagon or square.
	Demo string `toml:"demo"`
	// Renderer backend: opengl, webgl, software or headless. Empty picks the
	// default of the build target.
	Renderer string `toml:"renderer"`

	CanvasID string `toml:"canvas_id"`
	ButtonID string `toml:"button_id"`

	// Directory overriding the embedded shaders, laid out as <dialect>/<name>.vert|.frag.
	ShaderDir string `toml:"shader_dir"`
	HotReload bool   `toml:"hot_reload"`

	Headless HeadlessConfig `toml:"headless"`
	Camera   CameraConfig   `toml:"camera"`
	Rotation RotationConfig `toml:"rotation"`
	Cube     CubeConfig     `toml:"cube"`
	Hexagon  FlatConfig     `toml:"hexagon"`
	Square   FlatConfig     `toml:"square"`
}

type HeadlessConfig struct {
	Hz     int    `toml:"hz"`
	Frames uint64 `toml:"frames"`
}

type CameraConfig struct {
	Eye    Vec3    `toml:"eye"`
	Target Vec3    `toml:"target"`
	Up     Vec3    `toml:"up"`
	FovY   float32 `toml:"fov"`
	Near   float32 `toml:"near"`
	Far    float32 `toml:"far"`
}

type RotationConfig struct {
	Period Duration `toml:"period"`
	Axis   Vec3     `toml:"axis"`
}

type CubeConfig struct {
	EdgeLength float32     `toml:"edge_length"`
	FaceColors [6]ColorRGB `toml:"face_colors"`
	ClearColor ColorRGBA   `toml:"clear_color"`
}

// FlatConfig configures the hexagon (Size is the radius) and the square
// (Size is the half extent).
type FlatConfig struct {
	Size       float32   `toml:"size"`
	Color      ColorRGB  `toml:"color"`
	ClearColor ColorRGBA `toml:"clear_color"`
	// Seed of the click colour generator; zero seeds from the clock.
	Seed uint64 `toml:"seed"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	camera := math.NewDefaultCamera()
	rotation := math.NewDefaultRotation()
	return &ApplicationConfig{
		StartPosX:   100,
		StartPosY:   100,
		StartWidth:  800,
		StartHeight: 600,
		Name:        "Primitives",
		LogLevel:    "info",
		Demo:        "cube",
		CanvasID:    "main-canvas",
		ButtonID:    "colorButton",
		Headless: HeadlessConfig{
			Hz: 60,
		},
		Camera: CameraConfig{
			Eye:    Vec3(camera.Eye),
			Target: Vec3(camera.Target),
			Up:     Vec3(camera.Up),
			FovY:   camera.FovY,
			Near:   camera.Near,
			Far:    camera.Far,
		},
		Rotation: RotationConfig{
			Period: Duration(rotation.Period),
			Axis:   Vec3(rotation.Axis),
		},
		Cube: CubeConfig{
			EdgeLength: 2,
			FaceColors: [6]ColorRGB{
				{1, 0.5, 0.5},
				{1, 0.8, 0.8},
				{1, 0.7, 0.7},
				{1, 0.9, 0.9},
				{1, 0.6, 0.6},
				{1, 0.95, 0.95},
			},
			ClearColor: ColorRGBA{0.5, 0.4, 0.7, 1},
		},
		Hexagon: FlatConfig{
			Size:       0.5,
			Color:      ColorRGB{1, 1, 1},
			ClearColor: ColorRGBA{0.5, 0.5, 0.9, 1},
		},
		Square: FlatConfig{
			Size:       0.5,
			Color:      ColorRGB{1, 1, 0},
			ClearColor: ColorRGBA{0.5, 0.5, 0.9, 1},
		},
	}
}

// LoadApplicationConfig decodes the TOML file at path over the defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseApplicationConfig(data)
}

func ParseApplicationConfig(data []byte) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().EnableUnmarshalerInterface()
	if err := dec.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *ApplicationConfig) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", core.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.StartWidth == 0 || c.StartHeight == 0 {
		return invalid("window size must be positive, got %dx%d", c.StartWidth, c.StartHeight)
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Renderer != "" {
		if _, ok := metadata.ParseRendererType(c.Renderer); !ok {
			return fmt.Errorf("%w: %q", core.ErrUnknownRenderer, c.Renderer)
		}
	}
	if c.Headless.Hz < 0 {
		return invalid("headless hz must not be negative")
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return invalid("camera fov must be in (0, 180), got %v", c.Camera.FovY)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera planes must satisfy 0 < near < far, got %v/%v", c.Camera.Near, c.Camera.Far)
	}
	if mgl32.Vec3(c.Camera.Eye).Sub(mgl32.Vec3(c.Camera.Target)).Len() == 0 {
		return invalid("camera eye and target must differ")
	}
	if c.Rotation.Period <= 0 {
		return invalid("rotation period must be positive, got %s", time.Duration(c.Rotation.Period))
	}
	if c.Cube.EdgeLength <= 0 {
		return invalid("cube edge length must be positive, got %v", c.Cube.EdgeLength)
	}
	if c.Hexagon.Size <= 0 || c.Square.Size <= 0 {
		return invalid("flat primitive sizes must be positive")
	}

	colors := map[string][]float32{
		"hexagon.color":       c.Hexagon.Color[:],
		"hexagon.clear_color": c.Hexagon.ClearColor[:],
		"square.color":        c.Square.Color[:],
		"square.clear_color":  c.Square.ClearColor[:],
		"cube.clear_color":    c.Cube.ClearColor[:],
	}
	for i := range c.Cube.FaceColors {
		colors[fmt.Sprintf("cube.face_colors[%d]", i)] = c.Cube.FaceColors[i][:]
	}
	for key, channels := range colors {
		for _, v := range channels {
			if v < 0 || v > 1 {
				return invalid("%s channels must be in [0, 1], got %v", key, channels)
			}
		}
	}
	return nil
}

func (c *ApplicationConfig) CameraSettings() math.Camera {
	return math.Camera{
		Eye:    mgl32.Vec3(c.Camera.Eye),
		Target: mgl32.Vec3(c.Camera.Target),
		Up:     mgl32.Vec3(c.Camera.Up),
		FovY:   c.Camera.FovY,
		Near:   c.Camera.Near,
		Far:    c.Camera.Far,
	}
}

func (c *ApplicationConfig) RotationSettings() math.Rotation {
	return math.Rotation{
		Period: time.Duration(c.Rotation.Period),
		Axis:   mgl32.Vec3(c.Rotation.Axis),
	}
}

func (c *ApplicationConfig) CubeFaceColors() geometry.FaceColors {
	var colors geometry.FaceColors
	for i, fc := range c.Cube.FaceColors {
		colors[i] = geometry.Color(fc)
	}
	return colors
}

// Vec3 is a TOML array of three numbers.
type Vec3 [3]float32

func (v *Vec3) UnmarshalTOML(node *unstable.Node) error {
	values, err := numbers(node)
	if err != nil {
		return err
	}
	if len(values) != 3 {
		return fmt.Errorf("expected 3 numbers, got %d", len(values))
	}
	copy(v[:], values)
	return nil
}

// Duration accepts Go duration strings such as "8s" or "1m30s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// ColorRGB is either an array of three channels in [0, 1] or a CSS colour name.
type ColorRGB [3]float32

func (c *ColorRGB) UnmarshalTOML(node *unstable.Node) error {
	rgba, n, err := color(node)
	if err != nil {
		return err
	}
	if n == 4 {
		return fmt.Errorf("expected an RGB colour, got 4 channels")
	}
	copy(c[:], rgba[:3])
	return nil
}

// ColorRGBA is an array of three or four channels in [0, 1] or a CSS colour
// name. Alpha defaults to 1.
type ColorRGBA [4]float32

func (c *ColorRGBA) UnmarshalTOML(node *unstable.Node) error {
	rgba, _, err := color(node)
	if err != nil {
		return err
	}
	*c = ColorRGBA(rgba)
	return nil
}

func color(node *unstable.Node) ([4]float32, int, error) {
	if node.Kind == unstable.String {
		name := strings.ToLower(strings.TrimSpace(string(node.Data)))
		named, ok := colornames.Map[name]
		if !ok {
			return [4]float32{}, 0, fmt.Errorf("unknown colour name %q", name)
		}
		return [4]float32{
			float32(named.R) / 255,
			float32(named.G) / 255,
			float32(named.B) / 255,
			float32(named.A) / 255,
		}, 3, nil
	}

	values, err := numbers(node)
	if err != nil {
		return [4]float32{}, 0, err
	}
	if len(values) != 3 && len(values) != 4 {
		return [4]float32{}, 0, fmt.Errorf("expected 3 or 4 channels, got %d", len(values))
	}
	rgba := [4]float32{0, 0, 0, 1}
	copy(rgba[:], values)
	return rgba, len(values), nil
}

func numbers(node *unstable.Node) ([]float32, error) {
	if node.Kind != unstable.Array {
		return nil, fmt.Errorf("expected an array, got %s", node.Kind)
	}
	var values []float32
	it := node.Children()
	for it.Next() {
		n := it.Node()
		if n.Kind != unstable.Float && n.Kind != unstable.Integer {
			return nil, fmt.Errorf("expected a number, got %s", n.Kind)
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(string(n.Data), "_", ""), 32)
		if err != nil {
			return nil, err
		}
		values = append(values, float32(f))
	}
	return values, nil
}
