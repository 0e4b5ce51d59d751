// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package device

import "strings"

const end = "\x00"

// safeString null-terminates s for the C side.
func safeString(s string) string {
	if strings.HasSuffix(s, end) {
		return s
	}
	return s + end
}

// safeStrings null-terminates a copy of list, leaving the caller's slice intact.
func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = safeString(list[i])
	}
	return out
}

// TrimName strips the C terminator from a name, if present.
func TrimName(name string) string {
	return strings.TrimRight(name, end)
}
