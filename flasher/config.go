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
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/juju/errors"
)

// Config describes how firmware gets written to a device.
type Config struct {
	Interface        string `json:"interface"`
	Target           string `json:"target"`
	FlashBase        string `json:"flash_base"`
	FlashSize        string `json:"flash_size"`
	RAMBase          string `json:"ram_base"`
	RAMSize          string `json:"ram_size"`
	ProgrammerSpeed  string `json:"programmer_speed"`
	EraseBeforeFlash bool   `json:"erase_before_flash"`
	ResetAfterFlash  bool   `json:"reset_after_flash"`
	VerifyAfterFlash bool   `json:"verify_after_flash"`

	// Serial bootloader settings, used by the esp32 interface.
	Port string `json:"port"`
	Baud int    `json:"baud"`
	// Debugger name for mspdebug, e.g. "rf2500".
	Programmer string `json:"programmer"`
}

const configFileName = "flash_config.json"

func DefaultConfig() *Config {
	return &Config{
		Interface:        "stlink",
		Target:           "stm32f4",
		FlashBase:        "0x08000000",
		FlashSize:        "512K",
		RAMBase:          "0x20000000",
		RAMSize:          "128K",
		ProgrammerSpeed:  "auto",
		ResetAfterFlash:  true,
		VerifyAfterFlash: true,
		Port:             "/dev/ttyUSB0",
		Baud:             921600,
		Programmer:       "rf2500",
	}
}

// LoadConfig reads flash_config.json from projectDir over the default
// config. A missing file yields the defaults; an unparsable file is an
// error.
func LoadConfig(projectDir string) (*Config, error) {
	c := DefaultConfig()
	fname := filepath.Join(projectDir, configFileName)
	data, err := ioutil.ReadFile(fname)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, errors.Annotatef(err, "failed to read %s", fname)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, errors.Annotatef(err, "failed to parse %s", fname)
	}
	return c, nil
}

// WithOverrides returns a copy of the config with the CLI-level switches
// applied. The receiver is not modified.
func (c Config) WithOverrides(erase, noReset bool) *Config {
	if erase {
		c.EraseBeforeFlash = true
	}
	if noReset {
		c.ResetAfterFlash = false
	}
	return &c
}
