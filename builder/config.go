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

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
	shellwords "github.com/mattn/go-shellwords"
	yaml "gopkg.in/yaml.v2"
)

// Config describes one firmware build. It is loaded once at startup and not
// modified afterwards.
type Config struct {
	Platform     string   `yaml:"platform" json:"platform"`
	Toolchain    string   `yaml:"toolchain" json:"toolchain"`
	Optimization string   `yaml:"optimization" json:"optimization"`
	Debug        bool     `yaml:"debug" json:"debug"`
	QPPath       string   `yaml:"qp_path" json:"qp_path"`
	Sources      []string `yaml:"sources" json:"sources"`
	Includes     []string `yaml:"includes" json:"includes"`
	Defines      []string `yaml:"defines" json:"defines"`
	ProjectName  string   `yaml:"project_name" json:"project_name"`
	ExtraCFlags  string   `yaml:"extra_cflags" json:"extra_cflags"`
	ExtraLDFlags string   `yaml:"extra_ldflags" json:"extra_ldflags"`
}

// Candidate config files, probed in order. The first one that exists wins.
var configFileNames = []string{
	"build_config.yaml",
	"build_config.json",
	"project.yaml",
}

func DefaultConfig() *Config {
	return &Config{
		Platform:     "stm32f4",
		Toolchain:    "gcc-arm-none-eabi",
		Optimization: "Os",
		Debug:        true,
		QPPath:       "../qpc",
		Sources:      []string{"src/*.c"},
		Includes:     []string{"inc", "src"},
		Defines:      []string{"USE_HAL_DRIVER", "STM32F411xE"},
	}
}

// LoadConfig probes the candidate config files under projectDir and parses
// the first one found over the default config, so keys absent from the file
// keep their default values. A missing file is not an error, a file that
// fails to parse is.
func LoadConfig(projectDir string) (*Config, error) {
	c := DefaultConfig()
	for _, name := range configFileNames {
		fname := filepath.Join(projectDir, name)
		data, err := ioutil.ReadFile(fname)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, errors.Annotatef(err, "failed to read %s", fname)
		}
		switch filepath.Ext(name) {
		case ".yaml":
			// Lists in the file must replace the defaults, not merge with them.
			c.Sources = nil
			c.Includes = nil
			c.Defines = nil
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, errors.Annotatef(err, "failed to parse %s", fname)
			}
		case ".json":
			c.Sources = nil
			c.Includes = nil
			c.Defines = nil
			if err := json.Unmarshal(data, c); err != nil {
				return nil, errors.Annotatef(err, "failed to parse %s", fname)
			}
		}
		c.applyListDefaults()
		return c, nil
	}
	return c, nil
}

func (c *Config) applyListDefaults() {
	d := DefaultConfig()
	if c.Sources == nil {
		c.Sources = d.Sources
	}
	if c.Includes == nil {
		c.Includes = d.Includes
	}
	if c.Defines == nil {
		c.Defines = d.Defines
	}
}

// ProjectNameOrDefault returns the configured project name, "firmware" if
// none is set.
func (c *Config) ProjectNameOrDefault() string {
	if c.ProjectName != "" {
		return c.ProjectName
	}
	return "firmware"
}

// ExtraCFlagsList shell-splits the extra_cflags config value.
func (c *Config) ExtraCFlagsList() ([]string, error) {
	return splitFlags(c.ExtraCFlags)
}

// ExtraLDFlagsList shell-splits the extra_ldflags config value.
func (c *Config) ExtraLDFlagsList() ([]string, error) {
	return splitFlags(c.ExtraLDFlags)
}

func splitFlags(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	ff, err := shellwords.Parse(s)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid flags %q", s)
	}
	return ff, nil
}
