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

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/juju/errors"

	"github.com/qp-qk/tools/common/ourio"
	"github.com/qp-qk/tools/common/ourutil"
)

// write dispatches to the interface-specific write routine. Unlike the
// capability lookups, an unrecognized interface is a hard failure here.
func (f *Flasher) write(iface, firmwareFile string) error {
	switch iface {
	case "stlink":
		return f.writeSTLink(firmwareFile)
	case "jlink":
		return f.writeJLink(firmwareFile)
	case "openocd":
		return f.writeOpenOCD(firmwareFile)
	case "dfu":
		return f.writeDFU(firmwareFile)
	case "esp32":
		return f.writeESP32(firmwareFile)
	case "msp430":
		return f.writeMSP430(firmwareFile)
	default:
		return errors.Errorf("flashing not implemented for %s", iface)
	}
}

func (f *Flasher) writeSTLink(firmwareFile string) error {
	ourutil.Reportf("Flashing %s using ST-Link...", filepath.Base(firmwareFile))
	return errors.Trace(f.runTool("st-flash", "write", firmwareFile, f.config.FlashBase))
}

func (f *Flasher) writeJLink(firmwareFile string) error {
	ourutil.Reportf("Flashing %s using J-Link...", filepath.Base(firmwareFile))

	fwAbs, err := filepath.Abs(firmwareFile)
	if err != nil {
		return errors.Trace(err)
	}
	script := fmt.Sprintf(`device %s
si 1
speed 4000
r
h
loadfile %s %s
r
g
exit
`, strings.ToUpper(f.config.Target), fwAbs, f.config.FlashBase)

	scriptFile, err := f.writeScript("flash.jlink", script)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(f.runTool("JLinkExe", "-CommanderScript", scriptFile))
}

func (f *Flasher) writeOpenOCD(firmwareFile string) error {
	ourutil.Reportf("Flashing %s using OpenOCD...", filepath.Base(firmwareFile))

	fwAbs, err := filepath.Abs(firmwareFile)
	if err != nil {
		return errors.Trace(err)
	}
	cfg := fmt.Sprintf(`source [find interface/stlink.cfg]
source [find target/%sx.cfg]
init
reset halt
flash write_image erase %s %s
reset run
shutdown
`, f.config.Target, fwAbs, f.config.FlashBase)

	cfgFile, err := f.writeScript("openocd.cfg", cfg)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(f.runTool("openocd", "-f", cfgFile))
}

func (f *Flasher) writeDFU(firmwareFile string) error {
	ourutil.Reportf("Flashing %s using DFU...", filepath.Base(firmwareFile))
	return errors.Trace(f.runTool(
		"dfu-util",
		"-a", "0",
		"-s", fmt.Sprintf("%s:leave", f.config.FlashBase),
		"-D", firmwareFile,
	))
}

func (f *Flasher) writeESP32(firmwareFile string) error {
	ourutil.Reportf("Flashing %s to ESP32...", filepath.Base(firmwareFile))
	return errors.Trace(f.runTool(
		"esptool.py",
		"--chip", "esp32",
		"--port", f.config.Port,
		"--baud", strconv.Itoa(f.config.Baud),
		"write_flash",
		"-z",
		"0x1000", firmwareFile,
	))
}

func (f *Flasher) writeMSP430(firmwareFile string) error {
	ourutil.Reportf("Flashing %s to MSP430...", filepath.Base(firmwareFile))
	return errors.Trace(f.runTool("mspdebug", f.config.Programmer, "prog", firmwareFile))
}

// Erase wipes the target's flash. Interfaces without an erase command
// report a failure, which aborts the operation before any write.
func (f *Flasher) Erase(iface string) error {
	ourutil.Reportf("Erasing flash using %s...", iface)

	switch iface {
	case "stlink":
		return errors.Trace(f.runTool("st-flash", "erase"))
	case "jlink":
		script := fmt.Sprintf(`device %s
si 1
speed 4000
r
h
erase
exit
`, strings.ToUpper(f.config.Target))
		scriptFile, err := f.writeScript("erase.jlink", script)
		if err != nil {
			return errors.Trace(err)
		}
		return errors.Trace(f.runTool("JLinkExe", "-CommanderScript", scriptFile))
	case "dfu":
		return errors.Trace(f.runTool(
			"dfu-util", "-a", "0",
			"-s", fmt.Sprintf("%s:mass-erase:force", f.config.FlashBase),
		))
	case "esp32":
		return errors.Trace(f.runTool("esptool.py", "--chip", "esp32", "erase_flash"))
	default:
		return errors.Errorf("erase not implemented for %s", iface)
	}
}

// Reset restarts the target device.
func (f *Flasher) Reset(iface string) error {
	ourutil.Reportf("Resetting target using %s...", iface)

	switch iface {
	case "stlink":
		return errors.Trace(f.runTool("st-flash", "reset"))
	case "jlink":
		script := fmt.Sprintf(`device %s
si 1
speed 4000
r
g
exit
`, strings.ToUpper(f.config.Target))
		scriptFile, err := f.writeScript("reset.jlink", script)
		if err != nil {
			return errors.Trace(err)
		}
		return errors.Trace(f.runTool("JLinkExe", "-CommanderScript", scriptFile))
	case "esp32":
		return errors.Trace(f.runTool("esptool.py", "--chip", "esp32", "run"))
	default:
		return errors.Errorf("reset not implemented for %s", iface)
	}
}

// verify performs a read-back check where the vendor tool supports one.
func (f *Flasher) verify(iface, firmwareFile string) error {
	switch iface {
	case "esp32":
		ourutil.Reportf("Verifying %s...", filepath.Base(firmwareFile))
		return errors.Trace(f.runTool(
			"esptool.py",
			"--chip", "esp32",
			"--port", f.config.Port,
			"--baud", strconv.Itoa(f.config.Baud),
			"verify_flash",
			"0x1000", firmwareFile,
		))
	default:
		ourutil.Reportf("Read-back verification not supported for %s, skipping", iface)
		return nil
	}
}

// writeScript materializes a generated programmer script in the build
// output directory and returns its path.
func (f *Flasher) writeScript(name, contents string) (string, error) {
	if err := os.MkdirAll(f.buildDir, 0755); err != nil {
		return "", errors.Trace(err)
	}
	fname := filepath.Join(f.buildDir, name)
	if _, err := ourio.WriteFileIfDifferent(fname, []byte(contents), 0644); err != nil {
		return "", errors.Trace(err)
	}
	return fname, nil
}
