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

func TestGetPlatformFlags(t *testing.T) {
	for _, c := range []struct {
		name       string
		wantScript string
	}{
		{"stm32f4", "STM32F411RETx_FLASH.ld"},
		{"esp32", "esp32.ld"},
		{"msp430", "msp430g2553.ld"},
		// Unknown platforms fall back to the default platform, never fail.
		{"", "STM32F411RETx_FLASH.ld"},
		{"nrf52", "STM32F411RETx_FLASH.ld"},
	} {
		pf := GetPlatformFlags(c.name)
		if pf.LinkerScript != c.wantScript {
			t.Errorf("%q: got linker script %q, want %q", c.name, pf.LinkerScript, c.wantScript)
		}
		if len(pf.CFlags) == 0 || len(pf.LDFlags) == 0 {
			t.Errorf("%q: empty flag lists: %+v", c.name, pf)
		}
	}
}
