/*
Runs one of the demos on the renderer picked by the configuration file or
the command line.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/primitives/demos"
	"github.com/spaghettifunk/primitives/engine"
	"github.com/spaghettifunk/primitives/engine/core"
)

func main() {
	var (
		configPath string
		demo       string
		rendererID string
		shaderDir  string
		logLevel   string
		hotReload  bool
		frames     uint64
		hz         int
	)
	flag.StringVar(&configPath, "config", "", "TOML configuration file.")
	flag.StringVar(&demo, "demo", "", "Demo to run: cube, hexagon or square.")
	flag.StringVar(&rendererID, "renderer", "", "Renderer backend: opengl, webgl, software or headless.")
	flag.StringVar(&shaderDir, "shaders", "", "Directory overriding the embedded shaders.")
	flag.StringVar(&logLevel, "log-level", "", "debug, info, warn or error.")
	flag.BoolVar(&hotReload, "hot-reload", false, "Rebuild shader programs when files under -shaders change.")
	flag.Uint64Var(&frames, "frames", 0, "Stop after N frames with the headless renderer (0 = run forever).")
	flag.IntVar(&hz, "hz", 0, "Frame rate of the headless renderer.")
	flag.Parse()

	if err := run(configPath, func(c *engine.ApplicationConfig) {
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "demo":
				c.Demo = demo
			case "renderer":
				c.Renderer = rendererID
			case "shaders":
				c.ShaderDir = shaderDir
			case "log-level":
				c.LogLevel = logLevel
			case "hot-reload":
				c.HotReload = hotReload
			case "frames":
				c.Headless.Frames = frames
			case "hz":
				c.Headless.Hz = hz
			}
		})
	}); err != nil {
		core.LogError("%s", err)
		if errors.Is(err, core.ErrNoGraphicsBackend) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(configPath string, override func(*engine.ApplicationConfig)) error {
	config := engine.DefaultApplicationConfig()
	if configPath != "" {
		loaded, err := engine.LoadApplicationConfig(configPath)
		if err != nil {
			return err
		}
		config = loaded
	}
	override(config)
	if err := config.Validate(); err != nil {
		return err
	}

	game, err := demos.New(config.Demo, config)
	if err != nil {
		return err
	}

	e, err := engine.New(game)
	if err != nil {
		return err
	}
	if err := e.Initialize(); err != nil {
		return err
	}

	// capture sigterm and other system calls here
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runErr := e.Run(ctx)
	return errors.Join(runErr, e.Shutdown())
}
