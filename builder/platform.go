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

// PlatformFlags carries the per-platform compiler and linker flags.
// Callers must not modify the returned slices.
type PlatformFlags struct {
	CFlags       []string
	LDFlags      []string
	LinkerScript string
}

const DefaultPlatformName = "stm32f4"

var platforms = map[string]PlatformFlags{
	"stm32f4": {
		CFlags: []string{
			"-mcpu=cortex-m4",
			"-mthumb",
			"-mfpu=fpv4-sp-d16",
			"-mfloat-abi=hard",
			"-fdata-sections",
			"-ffunction-sections",
		},
		LDFlags: []string{
			"-mcpu=cortex-m4",
			"-mthumb",
			"-mfpu=fpv4-sp-d16",
			"-mfloat-abi=hard",
			"-specs=nano.specs",
			"-specs=nosys.specs",
			"-Wl,--gc-sections",
			"-Wl,-Map=build/output.map",
		},
		LinkerScript: "STM32F411RETx_FLASH.ld",
	},
	"esp32": {
		CFlags: []string{
			"-mlongcalls",
			"-ffunction-sections",
			"-fdata-sections",
		},
		LDFlags: []string{
			"-nostdlib",
			"-Wl,--gc-sections",
		},
		LinkerScript: "esp32.ld",
	},
	"msp430": {
		CFlags: []string{
			"-mmcu=msp430g2553",
			"-fdata-sections",
			"-ffunction-sections",
		},
		LDFlags: []string{
			"-mmcu=msp430g2553",
			"-Wl,--gc-sections",
		},
		LinkerScript: "msp430g2553.ld",
	},
}

// GetPlatformFlags returns the flags for the named platform. Unknown names
// resolve to the default platform, never fail.
func GetPlatformFlags(name string) PlatformFlags {
	if pf, ok := platforms[name]; ok {
		return pf
	}
	return platforms[DefaultPlatformName]
}
