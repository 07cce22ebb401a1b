package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/primitives/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultApplicationConfig_IsValid(t *testing.T) {
	config := DefaultApplicationConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, "cube", config.Demo)
	assert.Equal(t, ColorRGBA{0.5, 0.4, 0.7, 1}, config.Cube.ClearColor)
	assert.Equal(t, 8*time.Second, time.Duration(config.Rotation.Period))
}

func TestParseApplicationConfig(t *testing.T) {
	config, err := ParseApplicationConfig([]byte(`
name = "Squares"
demo = "square"
renderer = "headless"
log_level = "debug"

[headless]
hz = 0
frames = 10

[rotation]
period = "4s"
axis = [0, 1, 0]

[square]
size = 0.25
color = "red"
clear_color = [0.1, 0.2, 0.3]
seed = 7

[cube]
face_colors = [
  [1, 0, 0], [0, 1, 0], [0, 0, 1],
  "white", "yellow", [0.5, 0.5, 0.5],
]
`))
	require.NoError(t, err)

	assert.Equal(t, "Squares", config.Name)
	assert.Equal(t, "square", config.Demo)
	assert.Equal(t, "headless", config.Renderer)
	assert.EqualValues(t, 10, config.Headless.Frames)
	assert.Equal(t, 4*time.Second, time.Duration(config.Rotation.Period))
	assert.Equal(t, Vec3{0, 1, 0}, config.Rotation.Axis)

	assert.Equal(t, ColorRGB{1, 0, 0}, config.Square.Color)
	assert.Equal(t, ColorRGBA{0.1, 0.2, 0.3, 1}, config.Square.ClearColor)
	assert.EqualValues(t, 7, config.Square.Seed)

	faces := config.CubeFaceColors()
	assert.Equal(t, [3]float32{0, 0, 1}, [3]float32(faces[2]))
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32(faces[3]))

	// Untouched sections keep their defaults.
	assert.EqualValues(t, 800, config.StartWidth)
	assert.Equal(t, float32(2), config.Cube.EdgeLength)
}

func TestParseApplicationConfig_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown key":          `colour = "red"`,
		"unknown colour name":  "[square]\ncolor = \"not-a-colour\"",
		"short colour":         "[square]\ncolor = [1, 0]",
		"alpha on rgb":         "[square]\ncolor = [1, 0, 0, 1]",
		"channel out of range": "[hexagon]\ncolor = [2, 0, 0]",
		"bad duration":         "[rotation]\nperiod = \"soon\"",
		"zero period":          "[rotation]\nperiod = \"0s\"",
		"bad log level":        `log_level = "loud"`,
		"zero width":           `start_width = 0`,
		"near behind far":      "[camera]\nnear = 10.0\nfar = 1.0",
		"eye on target":        "[camera]\neye = [0, 0, 0]",
		"negative hz":          "[headless]\nhz = -1",
		"string axis":          "[rotation]\naxis = \"up\"",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseApplicationConfig([]byte(data))
			assert.ErrorIs(t, err, core.ErrInvalidConfig)
		})
	}

	_, err := ParseApplicationConfig([]byte(`renderer = "vulkan"`))
	assert.ErrorIs(t, err, core.ErrUnknownRenderer)
}

func TestLoadApplicationConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.toml")
	require.NoError(t, os.WriteFile(path, []byte("demo = \"hexagon\"\n"), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "hexagon", config.Demo)

	_, err = LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
