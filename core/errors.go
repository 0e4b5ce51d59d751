// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"
	"strings"

	"github.com/devblok/vkboot/device"
)

// InitializationError is returned when the loader, the entry points,
// the instance or the surface cannot be set up.
type InitializationError struct {
	Op  string
	Err error
}

func (e *InitializationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *InitializationError) Unwrap() error { return e.Err }

// EnumerationError is returned when an adapter or queue family query fails.
type EnumerationError struct {
	Op      string
	Adapter device.AdapterID
	Err     error
}

func (e *EnumerationError) Error() string {
	if e.Adapter < 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: adapter %d: %s", e.Op, e.Adapter, e.Err)
}

func (e *EnumerationError) Unwrap() error { return e.Err }

// Rejection records why an adapter was not selected.
type Rejection struct {
	Adapter device.AdapterID
	Name    string
	Reason  string
}

func (r Rejection) String() string {
	if r.Name == "" {
		return fmt.Sprintf("%d: %s", r.Adapter, r.Reason)
	}
	return fmt.Sprintf("%d (%s): %s", r.Adapter, r.Name, r.Reason)
}

// NoSuitableDeviceError is returned when no enumerated adapter meets
// the requirements.
type NoSuitableDeviceError struct {
	Rejections []Rejection
}

func (e *NoSuitableDeviceError) Error() string {
	if len(e.Rejections) == 0 {
		return "no suitable physical device: driver reported no adapters"
	}
	reasons := make([]string, len(e.Rejections))
	for i, r := range e.Rejections {
		reasons[i] = r.String()
	}
	return "no suitable physical device: " + strings.Join(reasons, "; ")
}

// DeviceCreationError is returned when the logical device or its
// queues cannot be provisioned.
type DeviceCreationError struct {
	Op  string
	Err error
}

func (e *DeviceCreationError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *DeviceCreationError) Unwrap() error { return e.Err }
