// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"errors"
	"fmt"
	"unsafe"

	vk "github.com/devblok/vulkan"
)

var _ Driver = (*Vulkan)(nil)

// NewVulkan creates a Vulkan driver. procAddr is the loader's
// vkGetInstanceProcAddr as handed out by the windowing library;
// when nil the default system loader is used.
func NewVulkan(procAddr unsafe.Pointer) *Vulkan {
	return &Vulkan{
		procAddr: procAddr,
		surface:  vk.NullSurface,
	}
}

// Vulkan implements Driver on top of the Vulkan API. It is the sole
// owner of the instance, debug callback, surface and device handles.
type Vulkan struct {
	procAddr unsafe.Pointer

	instance         vk.Instance
	debugCallback    vk.DebugReportCallback
	surface          vk.Surface
	availableDevices []vk.PhysicalDevice
	device           vk.Device
}

// Load implements interface
func (v *Vulkan) Load() error {
	if v.procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return fmt.Errorf("vk.SetDefaultGetInstanceProcAddr(): %s", err)
		}
	} else {
		vk.SetGetInstanceProcAddr(v.procAddr)
	}
	if err := vk.Init(); err != nil {
		return fmt.Errorf("vk.Init(): %s", err)
	}
	return nil
}

// InstanceLayers implements interface
func (v *Vulkan) InstanceLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, err
	}
	layers := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, layers)); err != nil {
		return nil, err
	}
	names := make([]string, 0, count)
	for _, layer := range layers {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// CreateInstance implements interface
func (v *Vulkan) CreateInstance(info InstanceInfo) error {
	appInfo := vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         info.APIVersion.Packed(),
		ApplicationVersion: info.ApplicationVersion.Packed(),
		EngineVersion:      info.EngineVersion.Packed(),
		PApplicationName:   safeString(info.ApplicationName),
		PEngineName:        safeString(info.EngineName),
	}

	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
	}

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return err
	}
	if err := vk.InitInstance(instance); err != nil {
		vk.DestroyInstance(instance, nil)
		return fmt.Errorf("vk.InitInstance(): %s", err)
	}
	v.instance = instance
	return nil
}

// debugReportCallback adapts fn to the binding's callback type. The
// triggering call is never aborted.
func debugReportCallback(fn MessageFunc) vk.DebugReportCallbackFunc {
	return func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
		object uint, location uint, messageCode int32, layerPrefix string,
		message string, userData unsafe.Pointer) vk.Bool32 {
		fn(Message{
			Severity: Severity(flags),
			Layer:    layerPrefix,
			Code:     messageCode,
			Text:     message,
		})
		return vk.False
	}
}

// CreateDebugMessenger implements interface. The binding keeps the first
// callback it is given, so only one messenger per process is supported.
func (v *Vulkan) CreateDebugMessenger(mask Severity, fn MessageFunc) error {
	createInfo := vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(mask),
		PfnCallback: debugReportCallback(fn),
	}

	var callback vk.DebugReportCallback
	if err := vk.Error(vk.CreateDebugReportCallback(v.instance, &createInfo, nil, &callback)); err != nil {
		return err
	}
	v.debugCallback = callback
	return nil
}

// CreateSurface implements interface
func (v *Vulkan) CreateSurface(bind SurfaceBinder) error {
	ptr, err := bind(v.instance)
	if err != nil {
		return err
	}
	if ptr == nil {
		return errors.New("window returned a null surface")
	}
	v.surface = vk.SurfaceFromPointer(uintptr(ptr))
	return nil
}

// PhysicalDevices implements interface
func (v *Vulkan) PhysicalDevices() ([]AdapterID, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return nil, err
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, availableDevices)); err != nil {
		return nil, err
	}
	v.availableDevices = availableDevices[:deviceCount]

	ids := make([]AdapterID, len(v.availableDevices))
	for i := range ids {
		ids[i] = AdapterID(i)
	}
	return ids, nil
}

func (v *Vulkan) physicalDevice(id AdapterID) (vk.PhysicalDevice, error) {
	if int(id) < 0 || int(id) >= len(v.availableDevices) {
		return nil, fmt.Errorf("adapter %d was not enumerated by this instance", id)
	}
	return v.availableDevices[id], nil
}

// Describe implements interface
func (v *Vulkan) Describe(id AdapterID) PhysicalDeviceInfo {
	var pdi PhysicalDeviceInfo
	pd, err := v.physicalDevice(id)
	if err != nil {
		pdi.Invalid = true
		return pdi
	}

	if extensions, err := v.DeviceExtensions(id); err != nil {
		pdi.Invalid = true
	} else {
		pdi.Extensions = extensions
	}

	var numDeviceLayers uint32
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, nil)); err != nil {
		pdi.Invalid = true
	}
	deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
	if err := vk.Error(vk.EnumerateDeviceLayerProperties(pd, &numDeviceLayers, deviceLayers)); err != nil {
		pdi.Invalid = true
	}
	for _, layer := range deviceLayers {
		layer.Deref()
		pdi.Layers = append(pdi.Layers, vk.ToString(layer.LayerName[:]))
	}

	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(pd, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		pdi.Memory += uint(memoryProperties.MemoryHeaps[iMem].Size)
	}

	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &properties)
	properties.Deref()
	pdi.ID = int(properties.DeviceID)
	pdi.VendorID = int(properties.VendorID)
	pdi.Name = vk.ToString(properties.DeviceName[:])
	pdi.DriverVersion = int(properties.DriverVersion)
	return pdi
}

// QueueFamilies implements interface
func (v *Vulkan) QueueFamilies(id AdapterID) ([]QueueFamily, error) {
	pd, err := v.physicalDevice(id)
	if err != nil {
		return nil, err
	}

	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &queueFamilyCount, nil)
	properties := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(pd, &queueFamilyCount, properties)

	families := make([]QueueFamily, 0, queueFamilyCount)
	for i := uint32(0); i < queueFamilyCount; i++ {
		properties[i].Deref()
		flags := properties[i].QueueFlags
		families = append(families, QueueFamily{
			Index:    i,
			Count:    properties[i].QueueCount,
			Graphics: flags&vk.QueueFlags(vk.QueueGraphicsBit) != 0,
			Compute:  flags&vk.QueueFlags(vk.QueueComputeBit) != 0,
			Transfer: flags&vk.QueueFlags(vk.QueueTransferBit) != 0,
		})
	}
	return families, nil
}

// SurfaceSupport implements interface
func (v *Vulkan) SurfaceSupport(id AdapterID, family uint32) (bool, error) {
	pd, err := v.physicalDevice(id)
	if err != nil {
		return false, err
	}
	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(pd, family, v.surface, &supported)); err != nil {
		return false, err
	}
	return supported.B(), nil
}

// DeviceExtensions implements interface
func (v *Vulkan) DeviceExtensions(id AdapterID) ([]string, error) {
	pd, err := v.physicalDevice(id)
	if err != nil {
		return nil, err
	}
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, nil)); err != nil {
		return nil, err
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, deviceExt)); err != nil {
		return nil, err
	}
	names := make([]string, 0, numDeviceExtensions)
	for _, ext := range deviceExt {
		ext.Deref()
		names = append(names, vk.ToString(ext.ExtensionName[:]))
	}
	return names, nil
}

// CreateDevice implements interface
func (v *Vulkan) CreateDevice(id AdapterID, info DeviceInfo) error {
	pd, err := v.physicalDevice(id)
	if err != nil {
		return err
	}

	queueInfos := make([]vk.DeviceQueueCreateInfo, len(info.Queues))
	for i, q := range info.Queues {
		queueInfos[i] = vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: q.Family,
			QueueCount:       uint32(len(q.Priorities)),
			PQueuePriorities: q.Priorities,
		}
	}

	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(info.Extensions)),
		PpEnabledExtensionNames: safeStrings(info.Extensions),
		EnabledLayerCount:       uint32(len(info.Layers)),
		PpEnabledLayerNames:     safeStrings(info.Layers),
	}

	var device vk.Device
	if err := vk.Error(vk.CreateDevice(pd, &dci, nil, &device)); err != nil {
		return err
	}
	v.device = device
	return nil
}

// DeviceQueue implements interface
func (v *Vulkan) DeviceQueue(family, index uint32) Queue {
	var queue vk.Queue
	vk.GetDeviceQueue(v.device, family, index, &queue)
	return Queue{
		Family: family,
		Index:  index,
		Handle: queue,
	}
}

// DestroyDevice implements interface
func (v *Vulkan) DestroyDevice() {
	vk.DestroyDevice(v.device, nil)
	v.device = nil
}

// DestroyDebugMessenger implements interface
func (v *Vulkan) DestroyDebugMessenger() {
	vk.DestroyDebugReportCallback(v.instance, v.debugCallback, nil)
	v.debugCallback = nil
}

// DestroySurface implements interface
func (v *Vulkan) DestroySurface() {
	vk.DestroySurface(v.instance, v.surface, nil)
	v.surface = vk.NullSurface
}

// DestroyInstance implements interface
func (v *Vulkan) DestroyInstance() {
	v.availableDevices = nil
	vk.DestroyInstance(v.instance, nil)
	v.instance = nil
}
