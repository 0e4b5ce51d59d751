// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"strings"

	"github.com/devblok/vkboot/device"
)

// AdapterReport describes one enumerated adapter.
type AdapterReport struct {
	Adapter  device.AdapterID
	Info     device.PhysicalDeviceInfo
	Families []device.QueueFamily
	Suitable bool
	Reason   string `json:",omitempty"`
}

// InspectAdapters describes every adapter and applies the checks that
// do not need a surface: a graphics queue family and the required
// extensions. Presentation support is not evaluated.
func InspectAdapters(drv device.Driver, requiredExtensions []string) ([]AdapterReport, error) {
	adapters, err := drv.PhysicalDevices()
	if err != nil {
		return nil, &EnumerationError{Op: "vk.EnumeratePhysicalDevices()", Adapter: -1, Err: err}
	}

	reports := make([]AdapterReport, 0, len(adapters))
	for _, id := range adapters {
		report := AdapterReport{Adapter: id, Info: drv.Describe(id)}

		families, err := drv.QueueFamilies(id)
		if err != nil {
			return nil, &EnumerationError{Op: "vk.GetPhysicalDeviceQueueFamilyProperties()", Adapter: id, Err: err}
		}
		report.Families = families

		graphics := false
		for _, f := range families {
			if f.Graphics && f.Count > 0 {
				graphics = true
				break
			}
		}

		switch missing := missingNames(requiredExtensions, report.Info.Extensions); {
		case !graphics:
			report.Reason = "no queue family supports graphics"
		case len(missing) > 0:
			report.Reason = "missing device extensions: " + strings.Join(missing, ", ")
		default:
			report.Suitable = true
		}
		reports = append(reports, report)
	}
	return reports, nil
}
