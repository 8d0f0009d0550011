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

// Toolchain names the external executables used for a build.
type Toolchain struct {
	CC      string
	LD      string
	ObjCopy string
	ObjDump string
	Size    string
	GDB     string
}

const DefaultToolchainName = "gcc-arm-none-eabi"

var toolchains = map[string]Toolchain{
	"gcc-arm-none-eabi": {
		CC:      "arm-none-eabi-gcc",
		LD:      "arm-none-eabi-gcc",
		ObjCopy: "arm-none-eabi-objcopy",
		ObjDump: "arm-none-eabi-objdump",
		Size:    "arm-none-eabi-size",
		GDB:     "arm-none-eabi-gdb",
	},
	"clang": {
		CC:      "clang",
		LD:      "clang",
		ObjCopy: "llvm-objcopy",
		ObjDump: "llvm-objdump",
		Size:    "llvm-size",
		GDB:     "gdb",
	},
}

// GetToolchain returns the descriptor for the named toolchain. Unknown names
// resolve to the default toolchain, never fail.
func GetToolchain(name string) Toolchain {
	if tc, ok := toolchains[name]; ok {
		return tc
	}
	return toolchains[DefaultToolchainName]
}
