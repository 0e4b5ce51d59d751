// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import (
	"testing"

	vk "github.com/devblok/vulkan"
	qt "github.com/frankban/quicktest"
)

func TestVulkanRejectsUnknownAdapter(t *testing.T) {
	c := qt.New(t)
	v := NewVulkan(nil)

	_, err := v.QueueFamilies(3)
	c.Assert(err, qt.ErrorMatches, "adapter 3 was not enumerated by this instance")

	_, err = v.SurfaceSupport(-1, 0)
	c.Assert(err, qt.ErrorMatches, "adapter -1 was not enumerated by this instance")

	_, err = v.DeviceExtensions(0)
	c.Assert(err, qt.Not(qt.IsNil))

	c.Assert(v.CreateDevice(0, DeviceInfo{}), qt.Not(qt.IsNil))
	c.Assert(v.Describe(0).Invalid, qt.IsTrue)
}

func TestDebugReportCallbackForwards(t *testing.T) {
	c := qt.New(t)
	var got []Message
	cb := debugReportCallback(func(m Message) { got = append(got, m) })

	flags := vk.DebugReportFlags(vk.DebugReportErrorBit)
	ret := cb(flags, vk.DebugReportObjectTypeUnknown, 0, 0, 7, "Validation", "bad handle", nil)
	c.Assert(ret, qt.Equals, vk.Bool32(vk.False))
	c.Assert(got, qt.DeepEquals, []Message{
		{Severity: SeverityError, Layer: "Validation", Code: 7, Text: "bad handle"},
	})
}
