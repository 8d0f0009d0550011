//
// Copyright (c) 2025 QP-QK SDK Contributors
// All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
package builder

import "testing"

func TestGetToolchain(t *testing.T) {
	for _, c := range []struct {
		name   string
		wantCC string
	}{
		{"gcc-arm-none-eabi", "arm-none-eabi-gcc"},
		{"clang", "clang"},
		// Unknown names fall back to the default toolchain, never fail.
		{"", "arm-none-eabi-gcc"},
		{"sdcc", "arm-none-eabi-gcc"},
	} {
		tc := GetToolchain(c.name)
		if tc.CC != c.wantCC {
			t.Errorf("%q: got cc %q, want %q", c.name, tc.CC, c.wantCC)
		}
	}
}

func TestGetToolchainCompleteness(t *testing.T) {
	for name, tc := range toolchains {
		if tc.CC == "" || tc.LD == "" || tc.ObjCopy == "" || tc.ObjDump == "" || tc.Size == "" {
			t.Errorf("%q: incomplete toolchain descriptor: %+v", name, tc)
		}
	}
}
