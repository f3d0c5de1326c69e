// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"testing"
)

func TestIsDarwin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		goos string
		want bool
	}{
		{Darwin, true},
		{Linux, false},
		{Windows, false},
		{"", false},
		{"Darwin", false},
	}

	for _, tt := range tests {
		if got := IsDarwin(tt.goos); got != tt.want {
			t.Errorf("IsDarwin(%q) = %v, want %v", tt.goos, got, tt.want)
		}
	}
}

func TestHostOS(t *testing.T) {
	t.Parallel()

	if got := HostOS(); got != runtime.GOOS {
		t.Errorf("HostOS() = %q, want %q", got, runtime.GOOS)
	}
}
