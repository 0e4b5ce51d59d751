// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"unsafe"

	"github.com/devblok/vkboot/device"
)

// fakeAdapter is one adapter as seen by fakeDriver.
type fakeAdapter struct {
	name       string
	families   []device.QueueFamily
	present    map[uint32]bool
	extensions []string
}

// fakeDriver records every call in trace and fails the calls named in errs.
type fakeDriver struct {
	adapters []fakeAdapter
	layers   []string
	errs     map[string]error

	trace []string

	instanceInfo device.InstanceInfo
	deviceInfo   device.DeviceInfo
	deviceOn     device.AdapterID
	severity     device.Severity
	sink         device.MessageFunc
}

var _ device.Driver = (*fakeDriver)(nil)

func newFakeDriver(adapters ...fakeAdapter) *fakeDriver {
	return &fakeDriver{
		adapters: adapters,
		layers:   []string{device.ValidationLayer},
		errs:     make(map[string]error),
	}
}

func (f *fakeDriver) call(name string) error {
	f.trace = append(f.trace, name)
	return f.errs[name]
}

func (f *fakeDriver) Load() error { return f.call("Load") }

func (f *fakeDriver) InstanceLayers() ([]string, error) {
	if err := f.call("InstanceLayers"); err != nil {
		return nil, err
	}
	return f.layers, nil
}

func (f *fakeDriver) CreateInstance(info device.InstanceInfo) error {
	f.instanceInfo = info
	return f.call("CreateInstance")
}

func (f *fakeDriver) CreateDebugMessenger(mask device.Severity, fn device.MessageFunc) error {
	f.severity = mask
	f.sink = fn
	return f.call("CreateDebugMessenger")
}

func (f *fakeDriver) CreateSurface(bind device.SurfaceBinder) error {
	if err := f.call("CreateSurface"); err != nil {
		return err
	}
	_, err := bind("instance")
	return err
}

func (f *fakeDriver) PhysicalDevices() ([]device.AdapterID, error) {
	if err := f.call("PhysicalDevices"); err != nil {
		return nil, err
	}
	ids := make([]device.AdapterID, len(f.adapters))
	for i := range ids {
		ids[i] = device.AdapterID(i)
	}
	return ids, nil
}

func (f *fakeDriver) Describe(id device.AdapterID) device.PhysicalDeviceInfo {
	a := f.adapters[id]
	return device.PhysicalDeviceInfo{ID: int(id), Name: a.name, Extensions: a.extensions}
}

func (f *fakeDriver) QueueFamilies(id device.AdapterID) ([]device.QueueFamily, error) {
	if err := f.call("QueueFamilies"); err != nil {
		return nil, err
	}
	return f.adapters[id].families, nil
}

func (f *fakeDriver) SurfaceSupport(id device.AdapterID, family uint32) (bool, error) {
	if err := f.errs["SurfaceSupport"]; err != nil {
		return false, err
	}
	return f.adapters[id].present[family], nil
}

func (f *fakeDriver) DeviceExtensions(id device.AdapterID) ([]string, error) {
	if err := f.errs["DeviceExtensions"]; err != nil {
		return nil, err
	}
	return f.adapters[id].extensions, nil
}

func (f *fakeDriver) CreateDevice(id device.AdapterID, info device.DeviceInfo) error {
	f.deviceOn = id
	f.deviceInfo = info
	return f.call("CreateDevice")
}

func (f *fakeDriver) DeviceQueue(family, index uint32) device.Queue {
	return device.Queue{Family: family, Index: index}
}

func (f *fakeDriver) DestroyDevice() { f.call("DestroyDevice") }
func (f *fakeDriver) DestroyDebugMessenger() { f.call("DestroyDebugMessenger") }
func (f *fakeDriver) DestroySurface() { f.call("DestroySurface") }
func (f *fakeDriver) DestroyInstance() { f.call("DestroyInstance") }

// destroyed returns the destruction calls in the order they happened.
func (f *fakeDriver) destroyed() []string {
	var out []string
	for _, c := range f.trace {
		switch c {
		case "DestroyDevice", "DestroyDebugMessenger", "DestroySurface", "DestroyInstance":
			out = append(out, c)
		}
	}
	return out
}

func bindWindow(instance interface{}) (unsafe.Pointer, error) {
	var surface int
	return unsafe.Pointer(&surface), nil
}

// gpu is a suitable adapter with a single graphics and present family.
func gpu(name string) fakeAdapter {
	return fakeAdapter{
		name:       name,
		families:   []device.QueueFamily{{Index: 0, Count: 16, Graphics: true, Compute: true, Transfer: true}},
		present:    map[uint32]bool{0: true},
		extensions: []string{device.SwapchainExtension},
	}
}
