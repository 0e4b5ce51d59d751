// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strings"

	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

// QueueFamilyIndices are the families used for graphics submission
// and for presentation. They may be the same family.
type QueueFamilyIndices struct {
	Graphics uint32
	Present  uint32
}

// Unique returns each distinct family once, graphics first.
func (q QueueFamilyIndices) Unique() []uint32 {
	if q.Graphics == q.Present {
		return []uint32{q.Graphics}
	}
	return []uint32{q.Graphics, q.Present}
}

// SelectPhysicalDevice returns the first adapter, in enumeration
// order, that has a graphics queue family, a family able to present
// to the surface, and every required extension. Adapters are not
// ranked against each other.
func SelectPhysicalDevice(drv device.Driver, requiredExtensions []string) (device.AdapterID, QueueFamilyIndices, error) {
	adapters, err := drv.PhysicalDevices()
	if err != nil {
		return 0, QueueFamilyIndices{}, &EnumerationError{Op: "vk.EnumeratePhysicalDevices()", Adapter: -1, Err: err}
	}

	var rejections []Rejection
	for _, id := range adapters {
		indices, reason, err := evaluateAdapter(drv, id, requiredExtensions)
		if err != nil {
			return 0, QueueFamilyIndices{}, err
		}
		if reason != "" {
			info := drv.Describe(id)
			log.WithFields(log.Fields{
				"adapter": id,
				"name":    info.Name,
				"reason":  reason,
			}).Debug("Physical device rejected")
			rejections = append(rejections, Rejection{Adapter: id, Name: info.Name, Reason: reason})
			continue
		}
		return id, indices, nil
	}
	return 0, QueueFamilyIndices{}, &NoSuitableDeviceError{Rejections: rejections}
}

// evaluateAdapter resolves the queue families of one adapter. A non
// empty reason means the adapter is unsuitable; an error means the
// driver failed to answer.
func evaluateAdapter(drv device.Driver, id device.AdapterID, requiredExtensions []string) (QueueFamilyIndices, string, error) {
	families, err := drv.QueueFamilies(id)
	if err != nil {
		return QueueFamilyIndices{}, "", &EnumerationError{Op: "vk.GetPhysicalDeviceQueueFamilyProperties()", Adapter: id, Err: err}
	}

	var indices QueueFamilyIndices
	var graphicsFound, presentFound bool
	for _, family := range families {
		if family.Count == 0 {
			continue
		}
		if !graphicsFound && family.Graphics {
			indices.Graphics = family.Index
			graphicsFound = true
		}
		if !presentFound {
			supported, err := drv.SurfaceSupport(id, family.Index)
			if err != nil {
				return QueueFamilyIndices{}, "", &EnumerationError{Op: "vk.GetPhysicalDeviceSurfaceSupport()", Adapter: id, Err: err}
			}
			if supported {
				indices.Present = family.Index
				presentFound = true
			}
		}
		if graphicsFound && presentFound {
			break
		}
	}

	if !graphicsFound {
		return QueueFamilyIndices{}, "no queue family supports graphics", nil
	}
	if !presentFound {
		return QueueFamilyIndices{}, "no queue family can present to the surface", nil
	}

	supported, err := drv.DeviceExtensions(id)
	if err != nil {
		return QueueFamilyIndices{}, "", &EnumerationError{Op: "vk.EnumerateDeviceExtensionProperties()", Adapter: id, Err: err}
	}
	if missing := missingNames(requiredExtensions, supported); len(missing) > 0 {
		return QueueFamilyIndices{}, "missing device extensions: " + strings.Join(missing, ", "), nil
	}
	return indices, "", nil
}
