// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import "github.com/devblok/vkboot/device"

// Configuration defines a global engine configuration setting
type Configuration struct {
	Application ApplicationConfiguration
	Validation  ValidationConfiguration
	Renderer    RendererConfiguration
	Time        TimeConfiguration
}

// ApplicationConfiguration describes the application to the driver
type ApplicationConfiguration struct {
	Name          string
	Version       device.Version
	EngineName    string
	EngineVersion device.Version

	// APIVersion is the Vulkan version the application targets
	APIVersion device.Version
}

// ValidationConfiguration is the static validation policy
type ValidationConfiguration struct {
	Enabled bool
	Layer   string

	// Severities lists the forwarded message categories by name:
	// error, warning, performance, information, debug
	Severities []string
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out
	// To unlimit, set to 0
	FramesPerSecond int

	// EventPollDelay is the delay between window event polls in milliseconds
	EventPollDelay int
}

// RendererConfiguration is used to configure the window and device
type RendererConfiguration struct {
	Title            string
	DeviceExtensions []string

	ScreenWidth  uint32
	ScreenHeight uint32
}

// DefaultConfiguration is used for everything a configuration file leaves out
func DefaultConfiguration() Configuration {
	return Configuration{
		Application: ApplicationConfiguration{
			Name:          "Koru3D",
			Version:       device.Version{Major: 1},
			EngineName:    "Koru3D",
			EngineVersion: device.Version{Major: 1},
			APIVersion:    device.Version{Major: 1},
		},
		Validation: ValidationConfiguration{
			Enabled:    false,
			Layer:      device.ValidationLayer,
			Severities: []string{"error", "warning", "performance"},
		},
		Renderer: RendererConfiguration{
			Title:            "Koru3D",
			DeviceExtensions: []string{device.SwapchainExtension},
			ScreenWidth:      1024,
			ScreenHeight:     768,
		},
		Time: TimeConfiguration{
			FramesPerSecond: 60,
			EventPollDelay:  10,
		},
	}
}
