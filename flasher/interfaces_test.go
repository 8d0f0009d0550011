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
package flasher

import "testing"

func TestGetInterfaceConfig(t *testing.T) {
	for _, c := range []struct {
		name     string
		wantTool string
	}{
		{"stlink", "st-flash"},
		{"jlink", "JLinkExe"},
		{"openocd", "openocd"},
		{"dfu", "dfu-util"},
		{"esp32", "esptool.py"},
		{"msp430", "mspdebug"},
		// Unknown interfaces resolve to the stlink descriptor for the
		// capability lookup; the write dispatch rejects them later.
		{"", "st-flash"},
		{"blackmagic", "st-flash"},
	} {
		ic := GetInterfaceConfig(c.name)
		if ic.Tool != c.wantTool {
			t.Errorf("%q: got tool %q, want %q", c.name, ic.Tool, c.wantTool)
		}
		if len(ic.ProbeCmd) == 0 || len(ic.SupportedTargets) == 0 {
			t.Errorf("%q: incomplete descriptor: %+v", c.name, ic)
		}
	}
}
