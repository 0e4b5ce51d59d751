// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

// NewInstance loads the driver and creates the instance. The platform
// extensions come from the windowing library; validation adds its
// layer and the debug report extension.
func NewInstance(drv device.Driver, app ApplicationConfiguration, platformExtensions []string, v Validation) error {
	if err := drv.Load(); err != nil {
		return &InitializationError{Op: "vk.Init()", Err: err}
	}

	layers := mergeNames(v.layers())
	if len(layers) > 0 {
		available, err := drv.InstanceLayers()
		if err != nil {
			return &InitializationError{Op: "vk.EnumerateInstanceLayerProperties()", Err: err}
		}
		if missing := missingNames(layers, available); len(missing) > 0 {
			return &InitializationError{
				Op:  "vk.EnumerateInstanceLayerProperties()",
				Err: fmt.Errorf("validation layer %q not found", missing[0]),
			}
		}
	}

	info := device.InstanceInfo{
		ApplicationName:    app.Name,
		ApplicationVersion: app.Version,
		EngineName:         app.EngineName,
		EngineVersion:      app.EngineVersion,
		APIVersion:         app.APIVersion,
		Extensions:         mergeNames(platformExtensions, v.extensions()),
		Layers:             layers,
	}

	log.WithFields(log.Fields{
		"extensions": info.Extensions,
		"layers":     info.Layers,
	}).Debug("Creating instance")

	if err := drv.CreateInstance(info); err != nil {
		return &InitializationError{Op: "vk.CreateInstance()", Err: err}
	}
	return nil
}

// CreateSurface binds the instance to the window.
func CreateSurface(drv device.Driver, bind device.SurfaceBinder) error {
	if bind == nil {
		return &InitializationError{Op: "core.CreateSurface()", Err: fmt.Errorf("no window to bind")}
	}
	if err := drv.CreateSurface(bind); err != nil {
		return &InitializationError{Op: "vk.CreateSurface()", Err: err}
	}
	return nil
}

// mergeNames concatenates lists, dropping C terminators, empty names
// and duplicates while keeping first-seen order.
func mergeNames(lists ...[]string) []string {
	var (
		merged []string
		seen   = make(map[string]struct{})
	)
	for _, list := range lists {
		for _, name := range list {
			name = device.TrimName(name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}

// missingNames returns the wanted names absent from available.
func missingNames(wanted, available []string) []string {
	have := make(map[string]struct{}, len(available))
	for _, name := range available {
		have[device.TrimName(name)] = struct{}{}
	}
	var missing []string
	for _, name := range wanted {
		if _, ok := have[device.TrimName(name)]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
