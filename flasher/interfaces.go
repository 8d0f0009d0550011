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

// InterfaceConfig describes one hardware programming interface: the external
// tool that backs it, how to probe for a connected device, and which targets
// it can program.
type InterfaceConfig struct {
	Tool             string
	ProbeCmd         []string
	SupportedTargets []string
}

const DefaultInterfaceName = "stlink"

var interfaces = map[string]InterfaceConfig{
	"stlink": {
		Tool:     "st-flash",
		ProbeCmd: []string{"st-info", "--probe"},
		SupportedTargets: []string{
			"stm32f0", "stm32f1", "stm32f2", "stm32f3", "stm32f4",
			"stm32f7", "stm32h7", "stm32l0", "stm32l1", "stm32l4",
		},
	},
	"jlink": {
		Tool:             "JLinkExe",
		ProbeCmd:         []string{"JLinkExe", "-CommanderScript", "probe.jlink"},
		SupportedTargets: []string{"stm32f4", "stm32f7", "stm32h7", "nrf52", "esp32"},
	},
	"openocd": {
		Tool: "openocd",
		ProbeCmd: []string{
			"openocd",
			"-f", "interface/stlink.cfg",
			"-f", "target/stm32f4x.cfg",
			"-c", "init; halt; exit",
		},
		SupportedTargets: []string{
			"stm32f0", "stm32f1", "stm32f2", "stm32f3", "stm32f4",
			"stm32f7", "stm32h7", "stm32l0", "stm32l1", "stm32l4",
			"nrf52", "esp32",
		},
	},
	"dfu": {
		Tool:     "dfu-util",
		ProbeCmd: []string{"dfu-util", "-l"},
		SupportedTargets: []string{
			"stm32f0", "stm32f1", "stm32f2", "stm32f3", "stm32f4",
			"stm32f7", "stm32h7", "stm32l0", "stm32l1", "stm32l4",
		},
	},
	"esp32": {
		Tool:             "esptool.py",
		ProbeCmd:         []string{"esptool.py", "chip_id"},
		SupportedTargets: []string{"esp32", "esp32s2", "esp32s3", "esp32c3"},
	},
	"msp430": {
		Tool:             "mspdebug",
		ProbeCmd:         []string{"mspdebug", "rf2500", "exit"},
		SupportedTargets: []string{"msp430g2553", "msp430f5529", "msp430fr5969"},
	},
}

// GetInterfaceConfig returns the descriptor for the named interface.
// Unknown names resolve to the stlink descriptor; the write dispatch is
// where unknown interfaces are rejected.
func GetInterfaceConfig(name string) InterfaceConfig {
	if ic, ok := interfaces[name]; ok {
		return ic
	}
	return interfaces[DefaultInterfaceName]
}
