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
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-config-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// No config file at all must not be an error.
	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %s", err)
	}
	if !reflect.DeepEqual(c, DefaultConfig()) {
		t.Errorf("got %+v, want defaults %+v", c, DefaultConfig())
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-config-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	data := `
platform: esp32
toolchain: clang
debug: false
sources:
  - app/*.c
extra_cflags: "-flto -fno-builtin"
`
	if err := ioutil.WriteFile(filepath.Join(dir, "build_config.yaml"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %s", err)
	}
	if got, want := c.Platform, "esp32"; got != want {
		t.Errorf("platform: got %q, want %q", got, want)
	}
	if c.Debug {
		t.Errorf("debug: got true, want false")
	}
	// Lists given in the file replace the defaults.
	if got, want := c.Sources, []string{"app/*.c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("sources: got %v, want %v", got, want)
	}
	// Keys absent from the file keep their defaults.
	if got, want := c.Optimization, "Os"; got != want {
		t.Errorf("optimization: got %q, want %q", got, want)
	}
	if got, want := c.Includes, []string{"inc", "src"}; !reflect.DeepEqual(got, want) {
		t.Errorf("includes: got %v, want %v", got, want)
	}

	ff, err := c.ExtraCFlagsList()
	if err != nil {
		t.Fatalf("ExtraCFlagsList: %s", err)
	}
	if want := []string{"-flto", "-fno-builtin"}; !reflect.DeepEqual(ff, want) {
		t.Errorf("extra cflags: got %v, want %v", ff, want)
	}
}

func TestLoadConfigJSON(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-config-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	data := `{"platform": "msp430", "project_name": "blinky"}`
	if err := ioutil.WriteFile(filepath.Join(dir, "build_config.json"), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %s", err)
	}
	if got, want := c.Platform, "msp430"; got != want {
		t.Errorf("platform: got %q, want %q", got, want)
	}
	if got, want := c.ProjectNameOrDefault(), "blinky"; got != want {
		t.Errorf("project name: got %q, want %q", got, want)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-config-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// build_config.yaml is probed before build_config.json.
	if err := ioutil.WriteFile(filepath.Join(dir, "build_config.yaml"), []byte("platform: esp32\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "build_config.json"), []byte(`{"platform": "msp430"}`), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %s", err)
	}
	if got, want := c.Platform, "esp32"; got != want {
		t.Errorf("platform: got %q, want %q", got, want)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-config-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err := ioutil.WriteFile(filepath.Join(dir, "build_config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Errorf("expected an error for a malformed config file")
	}
}

func TestProjectNameDefault(t *testing.T) {
	c := DefaultConfig()
	if got, want := c.ProjectNameOrDefault(), "firmware"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
