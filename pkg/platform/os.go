// SPDX-License-Identifier: MPL-2.0

package platform

import "runtime"

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// IsDarwin reports whether the given GOOS string names a Darwin host.
// Callers pass the resolved GOOS as data so branch logic stays testable
// off-platform; production code passes HostOS().
func IsDarwin(goos string) bool {
	return goos == Darwin
}

// HostOS returns the GOOS of the running host.
func HostOS() string {
	return runtime.GOOS
}
