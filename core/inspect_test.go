// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core_test

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/device"
)

func TestInspectAdapters(t *testing.T) {
	c := qt.New(t)
	noGraphics := gpu("copy engine")
	noGraphics.families = []device.QueueFamily{{Index: 0, Count: 2, Transfer: true}}
	noSwapchain := gpu("offscreen")
	noSwapchain.extensions = []string{"VK_KHR_maintenance1"}
	headless := gpu("headless")
	headless.present = nil

	reports, err := core.InspectAdapters(newFakeDriver(noGraphics, noSwapchain, headless), swapchainOnly)
	c.Assert(err, qt.IsNil)
	c.Assert(reports, qt.HasLen, 3)

	c.Assert(reports[0].Suitable, qt.IsFalse)
	c.Assert(reports[0].Reason, qt.Equals, "no queue family supports graphics")
	c.Assert(reports[1].Suitable, qt.IsFalse)
	c.Assert(reports[1].Reason, qt.Equals, "missing device extensions: VK_KHR_swapchain")
	// presentation is not checked without a surface
	c.Assert(reports[2].Suitable, qt.IsTrue)
	c.Assert(reports[2].Info.Name, qt.Equals, "headless")
	c.Assert(reports[2].Families, qt.HasLen, 1)
}

func TestInspectAdaptersEnumerationError(t *testing.T) {
	c := qt.New(t)
	drv := newFakeDriver(gpu("gpu"))
	drv.errs["QueueFamilies"] = errors.New("VK_ERROR_DEVICE_LOST")

	_, err := core.InspectAdapters(drv, swapchainOnly)
	c.Assert(err, qt.ErrorMatches, `vk.GetPhysicalDeviceQueueFamilyProperties\(\): adapter 0: VK_ERROR_DEVICE_LOST`)
}

func BenchmarkSelectPhysicalDeviceLast(b *testing.B) {
	adapters := make([]fakeAdapter, 16)
	for i := range adapters {
		adapters[i] = gpu("software")
		adapters[i].extensions = nil
	}
	adapters[len(adapters)-1] = gpu("discrete")
	drv := newFakeDriver(adapters...)

	b.ResetTimer()
	for idx := 0; idx < b.N; idx++ {
		drv.trace = drv.trace[:0]
		if _, _, err := core.SelectPhysicalDevice(drv, swapchainOnly); err != nil {
			b.Fatal(err)
		}
	}
}
