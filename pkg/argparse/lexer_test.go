// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package argparse

import "testing"

func TestIsOptionLike(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"x", false},
		{"-", false},
		{"-x", true},
		{"--x", true},
		{"--", true},
		{"-1", false},
		{"-.5", false},
		{"-1.", false},
		{"-1.2e3", false},
		{"-2E+10", false},
		{"-1e", true},
		{"-.", true},
		{"-1.2.3", true},
		{"-1x", true},
	}
	for _, tt := range tests {
		if got := isOptionLike(tt.in); got != tt.want {
			t.Errorf("isOptionLike(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSplitAssignment(t *testing.T) {
	tests := []struct {
		in          string
		name, value string
		ok          bool
	}{
		{"--a=b", "--a", "b", true},
		{"-n=1=2", "-n", "1=2", true},
		{"--a=", "--a", "", true},
		{"--a", "", "", false},
		{"a=b", "", "", false},
		{"-=x", "", "", false},
	}
	for _, tt := range tests {
		name, value, ok := splitAssignment(tt.in)
		if name != tt.name || value != tt.value || ok != tt.ok {
			t.Errorf("splitAssignment(%q) = %q, %q, %v; want %q, %q, %v",
				tt.in, name, value, ok, tt.name, tt.value, tt.ok)
		}
	}
}
