// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"
)

const defaultConfigName = "koru.hcl"

func init() {
	runtime.LockOSThread()
}

// StaticResources holds the bundled default configuration
var StaticResources = packr.NewBox("./resources")

var (
	configPath = flag.String("config", "", "HCL configuration file used instead of the bundled one")
	debug      = flag.Bool("vkdbg", false, "Load Vulkan validation layers")
	title      = flag.String("title", "", "Window title")
	width      = flag.Uint("width", 0, "Initial window width")
	height     = flag.Uint("height", 0, "Initial window height")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err == nil {
		envy.Reload()
	}
	if err := core.ConfigureLogging(os.Stderr); err != nil {
		log.Fatal(err)
	}

	cfg, err := loadConfiguration()
	if err != nil {
		log.Fatal(err)
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func loadConfiguration() (core.Configuration, error) {
	var (
		cfg core.Configuration
		err error
	)
	if *configPath != "" {
		cfg, err = core.LoadConfigurationFile(*configPath)
	} else {
		var src []byte
		if src, err = StaticResources.Find(defaultConfigName); err != nil {
			return cfg, err
		}
		cfg, err = core.LoadConfiguration(src, defaultConfigName)
	}
	if err != nil {
		return cfg, err
	}

	if err := core.ApplyEnvironment(&cfg); err != nil {
		return cfg, err
	}
	if *debug {
		cfg.Validation.Enabled = true
	}
	if *title != "" {
		cfg.Renderer.Title = *title
	}
	if *width != 0 {
		cfg.Renderer.ScreenWidth = uint32(*width)
	}
	if *height != 0 {
		cfg.Renderer.ScreenHeight = uint32(*height)
	}
	return cfg, nil
}

func newWindow(cfg core.RendererConfiguration) (*sdl.Window, error) {
	return sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN|sdl.WINDOW_RESIZABLE)
}

func run(cfg core.Configuration) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return err
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := newWindow(cfg.Renderer)
	if err != nil {
		return err
	}
	defer window.Destroy()

	validation, err := core.NewValidation(cfg.Validation, core.LogMessage)
	if err != nil {
		return err
	}

	ctx, err := core.Bootstrap(device.NewVulkan(sdl.VulkanGetVkGetInstanceProcAddr()), core.BootstrapOptions{
		Application:        cfg.Application,
		Validation:         validation,
		PlatformExtensions: window.VulkanGetInstanceExtensions(),
		Surface:            window.VulkanCreateSurface,
		DeviceExtensions:   cfg.Renderer.DeviceExtensions,
	})
	if err != nil {
		return err
	}

	eventLoop(ctx, core.NewTime(cfg.Time))
	return nil
}

// eventLoop renders on every frame tick until the window is closed,
// then destroys the context while the window still exists.
func eventLoop(ctx *core.Context, timeService core.Time) {
	defer timeService.Stop()

	destroying := false
	for !destroying {
		select {
		case <-timeService.FpsTicker().C:
			if err := ctx.Render(); err != nil {
				log.WithError(err).Error("Render failed")
			}
		case <-timeService.EventTicker().C:
			for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
				switch et := event.(type) {
				case *sdl.KeyboardEvent:
					if et.Keysym.Sym == sdl.K_ESCAPE {
						destroying = true
					}
				case *sdl.QuitEvent:
					destroying = true
				}
			}
		}
	}

	log.Info("Event loop exited")
	ctx.Destroy()
}
