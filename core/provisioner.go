// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"errors"

	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

const defaultQueuePriority = 1.0

// LogicalDevice is the provisioned device and its queues. The queues
// belong to the device and are invalid once it is destroyed.
type LogicalDevice struct {
	Adapter  device.AdapterID
	Families QueueFamilyIndices
	Graphics device.Queue
	Present  device.Queue
}

// ProvisionDevice creates the logical device with one queue for each
// distinct family in indices and retrieves the graphics and present
// queues. With validation enabled the validation layer is also
// enabled on the device, for drivers that still honour device layers.
func ProvisionDevice(drv device.Driver, adapter device.AdapterID, indices QueueFamilyIndices, requiredExtensions []string, v Validation) (LogicalDevice, error) {
	extensions := mergeNames(requiredExtensions)
	if len(extensions) == 0 {
		return LogicalDevice{}, &DeviceCreationError{
			Op:  "vk.CreateDevice()",
			Err: errors.New("no device extensions requested, presentation needs " + device.SwapchainExtension),
		}
	}

	info := device.DeviceInfo{
		Queues:     queueRequests(indices),
		Extensions: extensions,
		Layers:     mergeNames(v.layers()),
	}

	log.WithFields(log.Fields{
		"adapter":    adapter,
		"families":   indices.Unique(),
		"extensions": info.Extensions,
	}).Debug("Creating logical device")

	if err := drv.CreateDevice(adapter, info); err != nil {
		return LogicalDevice{}, &DeviceCreationError{Op: "vk.CreateDevice()", Err: err}
	}

	return LogicalDevice{
		Adapter:  adapter,
		Families: indices,
		Graphics: drv.DeviceQueue(indices.Graphics, 0),
		Present:  drv.DeviceQueue(indices.Present, 0),
	}, nil
}

// queueRequests builds one single-queue request per distinct family.
func queueRequests(indices QueueFamilyIndices) []device.QueueRequest {
	families := indices.Unique()
	requests := make([]device.QueueRequest, len(families))
	for i, family := range families {
		requests[i] = device.QueueRequest{
			Family:     family,
			Priorities: []float32{defaultQueuePriority},
		}
	}
	return requests
}
