// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package device is the boundary between the bootstrap sequence and the
// graphics driver. Everything above it speaks in adapter ids, queue family
// descriptors and names; only the Vulkan implementation touches raw handles.
package device

import (
	"unsafe"

	vk "github.com/devblok/vulkan"
)

// Extension and layer names used by the bootstrap sequence.
const (
	SwapchainExtension   = "VK_KHR_swapchain"
	DebugReportExtension = "VK_EXT_debug_report"
	ValidationLayer      = "VK_LAYER_KHRONOS_validation"
)

// AdapterID identifies a physical adapter by its position in the
// driver's enumeration order. It is only valid for the instance
// that enumerated it and is never destroyed.
type AdapterID int

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint
}

// QueueFamily describes one queue family of an adapter.
type QueueFamily struct {
	Index    uint32
	Count    uint32
	Graphics bool
	Compute  bool
	Transfer bool
}

// Queue is a queue retrieved from a logical device. The handle
// is owned by the device and becomes invalid when it is destroyed.
type Queue struct {
	Family uint32
	Index  uint32
	Handle vk.Queue
}

// Version is used to specify versions of components
type Version struct {
	Major int
	Minor int
	Patch int
}

// Packed returns the Vulkan packed representation of the version.
func (v Version) Packed() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

// InstanceInfo carries everything needed to create an instance.
type InstanceInfo struct {
	ApplicationName    string
	ApplicationVersion Version
	EngineName         string
	EngineVersion      Version
	APIVersion         Version

	Extensions []string
	Layers     []string
}

// QueueRequest asks for queues of one family at device creation.
type QueueRequest struct {
	Family     uint32
	Priorities []float32
}

// DeviceInfo carries everything needed to create a logical device.
type DeviceInfo struct {
	Queues     []QueueRequest
	Extensions []string
	Layers     []string
}

// SurfaceBinder binds the given instance to a platform window and
// returns the raw surface handle. The instance argument is the
// driver's native instance handle.
type SurfaceBinder func(instance interface{}) (unsafe.Pointer, error)

// Driver is the graphics API boundary. Every call blocks until the
// driver answers. A Driver exclusively owns the handles it creates;
// the caller decides when each of them is destroyed.
type Driver interface {
	// Load resolves the API entry points.
	Load() error

	// InstanceLayers lists the layers the loader can enable.
	InstanceLayers() ([]string, error)

	// CreateInstance creates the instance.
	CreateInstance(InstanceInfo) error

	// CreateDebugMessenger registers fn for every message whose
	// severity is in mask.
	CreateDebugMessenger(mask Severity, fn MessageFunc) error

	// CreateSurface binds the instance to a window.
	CreateSurface(SurfaceBinder) error

	// PhysicalDevices enumerates adapters in driver-reported order.
	PhysicalDevices() ([]AdapterID, error)

	// Describe queries the adapter's properties.
	Describe(AdapterID) PhysicalDeviceInfo

	// QueueFamilies lists the adapter's queue families.
	QueueFamilies(AdapterID) ([]QueueFamily, error)

	// SurfaceSupport reports whether family can present to the surface.
	SurfaceSupport(id AdapterID, family uint32) (bool, error)

	// DeviceExtensions lists the extensions the adapter supports.
	DeviceExtensions(AdapterID) ([]string, error)

	// CreateDevice creates the logical device on the adapter.
	CreateDevice(AdapterID, DeviceInfo) error

	// DeviceQueue retrieves a queue of the logical device.
	DeviceQueue(family, index uint32) Queue

	DestroyDevice()
	DestroyDebugMessenger()
	DestroySurface()
	DestroyInstance()
}
