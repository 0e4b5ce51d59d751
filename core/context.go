// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

// BootstrapOptions is the input of the bootstrap sequence.
type BootstrapOptions struct {
	Application ApplicationConfiguration
	Validation  Validation

	// PlatformExtensions are the instance extensions the window needs
	PlatformExtensions []string

	// Surface binds the instance to the window
	Surface device.SurfaceBinder

	// DeviceExtensions must all be supported by the selected adapter
	DeviceExtensions []string
}

// Context owns everything the bootstrap sequence created. It is torn
// down by a single call to Destroy.
type Context struct {
	driver    device.Driver
	messenger *DebugMessenger

	Adapter     device.AdapterID
	AdapterInfo device.PhysicalDeviceInfo
	Device      LogicalDevice
}

// stage is the last bootstrap step that completed.
type stage int

const (
	stageInstance stage = iota + 1
	stageSurface
	stageDevice
)

// Bootstrap creates the instance, the debug messenger when validation
// is enabled, the surface, selects an adapter and provisions the
// logical device. If a step fails, whatever was created before it is
// destroyed in reverse order and the error is returned.
func Bootstrap(drv device.Driver, opts BootstrapOptions) (*Context, error) {
	if opts.Validation == nil {
		opts.Validation = ValidationDisabled{}
	}

	if err := NewInstance(drv, opts.Application, opts.PlatformExtensions, opts.Validation); err != nil {
		return nil, err
	}
	log.WithField("application", opts.Application.Name).Info("Instance created")

	c := &Context{driver: drv}

	messenger, err := AttachDebugMessenger(drv, opts.Validation)
	if err != nil {
		c.teardown(stageInstance)
		return nil, err
	}
	c.messenger = messenger

	if err := CreateSurface(drv, opts.Surface); err != nil {
		c.teardown(stageInstance)
		return nil, err
	}

	adapter, indices, err := SelectPhysicalDevice(drv, opts.DeviceExtensions)
	if err != nil {
		c.teardown(stageSurface)
		return nil, err
	}
	c.Adapter = adapter
	c.AdapterInfo = drv.Describe(adapter)
	log.WithFields(log.Fields{
		"adapter":  adapter,
		"name":     c.AdapterInfo.Name,
		"graphics": indices.Graphics,
		"present":  indices.Present,
	}).Info("Physical device selected")

	logical, err := ProvisionDevice(drv, adapter, indices, opts.DeviceExtensions, opts.Validation)
	if err != nil {
		c.teardown(stageSurface)
		return nil, err
	}
	c.Device = logical
	log.WithField("families", indices.Unique()).Info("Logical device created")

	return c, nil
}

// ValidationEnabled reports whether a debug messenger is attached.
func (c *Context) ValidationEnabled() bool {
	return c.messenger != nil
}

// Render renders one frame. There is no pipeline yet.
func (c *Context) Render() error {
	return nil
}

// Destroy tears the context down: device, debug messenger, surface,
// instance. It must be called exactly once, before the window is
// destroyed.
func (c *Context) Destroy() {
	c.teardown(stageDevice)
	log.Debug("Context destroyed")
}

// teardown destroys everything created up to reached, newest first.
func (c *Context) teardown(reached stage) {
	if reached >= stageDevice {
		c.driver.DestroyDevice()
	}
	if c.messenger != nil {
		c.driver.DestroyDebugMessenger()
	}
	if reached >= stageSurface {
		c.driver.DestroySurface()
	}
	c.driver.DestroyInstance()
}
