// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import "strings"

// Severity is a bit mask of diagnostic message categories. The bit
// values match the Vulkan debug report flags.
type Severity uint32

// Message severities, lowest bit first.
const (
	SeverityInformation Severity = 1 << iota
	SeverityWarning
	SeverityPerformance
	SeverityError
	SeverityDebug
)

// SeverityAll enables every category.
const SeverityAll = SeverityInformation | SeverityWarning | SeverityPerformance | SeverityError | SeverityDebug

var severityNames = []struct {
	bit  Severity
	name string
}{
	{SeverityError, "error"},
	{SeverityWarning, "warning"},
	{SeverityPerformance, "performance"},
	{SeverityInformation, "information"},
	{SeverityDebug, "debug"},
}

// String lists the set categories joined by "|".
func (s Severity) String() string {
	var names []string
	for _, sn := range severityNames {
		if s&sn.bit != 0 {
			names = append(names, sn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// SeverityByName returns the bit for a category name.
func SeverityByName(name string) (Severity, bool) {
	for _, sn := range severityNames {
		if sn.name == strings.ToLower(strings.TrimSpace(name)) {
			return sn.bit, true
		}
	}
	return 0, false
}

// Message is a diagnostic message emitted by the driver or a layer.
type Message struct {
	Severity Severity
	Layer    string
	Code     int32
	Text     string
}

// MessageFunc receives diagnostic messages. It is called
// synchronously from inside driver calls.
type MessageFunc func(Message)
