// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package core

import (
	"fmt"

	"github.com/devblok/vkboot/device"
	log "github.com/sirupsen/logrus"
)

// Validation is the resolved validation policy. It is either
// ValidationDisabled or ValidationEnabled.
type Validation interface {
	layers() []string
	extensions() []string
}

// ValidationDisabled registers no layer, no extension and no messenger.
type ValidationDisabled struct{}

func (ValidationDisabled) layers() []string { return nil }
func (ValidationDisabled) extensions() []string { return nil }

// ValidationEnabled enables Layer on the instance and the device and
// forwards messages matching Severity to Callback.
type ValidationEnabled struct {
	Layer    string
	Severity device.Severity
	Callback device.MessageFunc
}

func (v ValidationEnabled) layers() []string { return []string{v.Layer} }
func (v ValidationEnabled) extensions() []string { return []string{device.DebugReportExtension} }

// NewValidation resolves the configured policy. A nil sink forwards
// messages to the logger.
func NewValidation(cfg ValidationConfiguration, sink device.MessageFunc) (Validation, error) {
	if !cfg.Enabled {
		return ValidationDisabled{}, nil
	}

	severity, err := ParseSeverity(cfg.Severities)
	if err != nil {
		return nil, err
	}
	layer := cfg.Layer
	if layer == "" {
		layer = device.ValidationLayer
	}
	if sink == nil {
		sink = LogMessage
	}
	return ValidationEnabled{
		Layer:    layer,
		Severity: severity,
		Callback: sink,
	}, nil
}

// ParseSeverity builds a severity mask from category names. An empty
// list yields errors and warnings.
func ParseSeverity(names []string) (device.Severity, error) {
	if len(names) == 0 {
		return device.SeverityError | device.SeverityWarning, nil
	}
	var mask device.Severity
	for _, name := range names {
		bit, ok := device.SeverityByName(name)
		if !ok {
			return 0, fmt.Errorf("unknown message severity %q", name)
		}
		mask |= bit
	}
	return mask, nil
}

// LogMessage forwards a driver message to the logger.
func LogMessage(m device.Message) {
	entry := log.WithFields(log.Fields{
		"layer": m.Layer,
		"code":  m.Code,
	})
	switch {
	case m.Severity&device.SeverityError != 0:
		entry.Error(m.Text)
	case m.Severity&(device.SeverityWarning|device.SeverityPerformance) != 0:
		entry.Warn(m.Text)
	case m.Severity&device.SeverityInformation != 0:
		entry.Info(m.Text)
	default:
		entry.Debug(m.Text)
	}
}

// DebugMessenger is the live diagnostic sink of an enabled validation
// policy. It only exists when validation is enabled.
type DebugMessenger struct {
	severity device.Severity
	sink     device.MessageFunc
}

// AttachDebugMessenger registers the validation callback on the
// instance. It returns nil without touching the driver when
// validation is disabled.
func AttachDebugMessenger(drv device.Driver, v Validation) (*DebugMessenger, error) {
	enabled, ok := v.(ValidationEnabled)
	if !ok {
		return nil, nil
	}

	m := &DebugMessenger{
		severity: enabled.Severity,
		sink:     enabled.Callback,
	}
	if m.sink == nil {
		m.sink = LogMessage
	}
	if err := drv.CreateDebugMessenger(m.severity, m.forward); err != nil {
		return nil, &InitializationError{Op: "vk.CreateDebugReportCallback()", Err: err}
	}
	log.WithField("severity", m.severity).Debug("Debug messenger attached")
	return m, nil
}

// forward hands a message to the sink. It runs inside driver calls,
// so a panicking sink is contained here.
func (m *DebugMessenger) forward(msg device.Message) {
	if msg.Severity&m.severity == 0 {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Debug message sink panicked")
		}
	}()
	m.sink(msg)
}

// Severity returns the forwarded categories.
func (m *DebugMessenger) Severity() device.Severity {
	return m.severity
}
