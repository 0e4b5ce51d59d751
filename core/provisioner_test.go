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

func TestProvisionSharedFamilyRequestsOneQueue(t *testing.T) {
	c := qt.New(t)
	drv := newFakeDriver(gpu("gpu"))
	indices := core.QueueFamilyIndices{Graphics: 0, Present: 0}

	logical, err := core.ProvisionDevice(drv, 0, indices, swapchainOnly, core.ValidationDisabled{})
	c.Assert(err, qt.IsNil)
	c.Assert(drv.deviceInfo.Queues, qt.DeepEquals, []device.QueueRequest{
		{Family: 0, Priorities: []float32{1}},
	})
	c.Assert(logical.Graphics, qt.Equals, device.Queue{Family: 0, Index: 0})
	c.Assert(logical.Present, qt.Equals, device.Queue{Family: 0, Index: 0})
}

func TestProvisionDistinctFamilies(t *testing.T) {
	c := qt.New(t)
	drv := newFakeDriver(gpu("a"), gpu("b"))
	indices := core.QueueFamilyIndices{Graphics: 1, Present: 2}

	logical, err := core.ProvisionDevice(drv, 1, indices, swapchainOnly, core.ValidationDisabled{})
	c.Assert(err, qt.IsNil)
	c.Assert(drv.deviceOn, qt.Equals, device.AdapterID(1))
	c.Assert(drv.deviceInfo.Queues, qt.DeepEquals, []device.QueueRequest{
		{Family: 1, Priorities: []float32{1}},
		{Family: 2, Priorities: []float32{1}},
	})
	c.Assert(logical.Graphics.Family, qt.Equals, uint32(1))
	c.Assert(logical.Present.Family, qt.Equals, uint32(2))
	c.Assert(logical.Families, qt.Equals, indices)
}

func TestProvisionExtensionsAndLayers(t *testing.T) {
	c := qt.New(t)

	drv := newFakeDriver(gpu("gpu"))
	_, err := core.ProvisionDevice(drv, 0, core.QueueFamilyIndices{}, []string{"VK_KHR_swapchain\x00", device.SwapchainExtension}, core.ValidationDisabled{})
	c.Assert(err, qt.IsNil)
	c.Assert(drv.deviceInfo.Extensions, qt.DeepEquals, []string{device.SwapchainExtension})
	c.Assert(drv.deviceInfo.Layers, qt.HasLen, 0)

	drv = newFakeDriver(gpu("gpu"))
	enabled := core.ValidationEnabled{Layer: device.ValidationLayer, Severity: device.SeverityError}
	_, err = core.ProvisionDevice(drv, 0, core.QueueFamilyIndices{}, swapchainOnly, enabled)
	c.Assert(err, qt.IsNil)
	c.Assert(drv.deviceInfo.Layers, qt.DeepEquals, []string{device.ValidationLayer})
}

func TestProvisionWithoutExtensions(t *testing.T) {
	c := qt.New(t)
	drv := newFakeDriver(gpu("gpu"))

	_, err := core.ProvisionDevice(drv, 0, core.QueueFamilyIndices{}, nil, core.ValidationDisabled{})
	var createErr *core.DeviceCreationError
	c.Assert(errors.As(err, &createErr), qt.IsTrue)
	c.Assert(drv.trace, qt.HasLen, 0)
}

func TestProvisionDriverRejects(t *testing.T) {
	c := qt.New(t)
	drv := newFakeDriver(gpu("gpu"))
	rejected := errors.New("VK_ERROR_EXTENSION_NOT_PRESENT")
	drv.errs["CreateDevice"] = rejected

	_, err := core.ProvisionDevice(drv, 0, core.QueueFamilyIndices{}, swapchainOnly, core.ValidationDisabled{})
	var createErr *core.DeviceCreationError
	c.Assert(errors.As(err, &createErr), qt.IsTrue)
	c.Assert(errors.Is(err, rejected), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, `vk.CreateDevice\(\): VK_ERROR_EXTENSION_NOT_PRESENT`)
}
