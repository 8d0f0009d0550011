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

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		fname := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
			t.Fatal(err)
		}
		if err := ioutil.WriteFile(fname, []byte("/* test */\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCollectSources(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-sources-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	writeFiles(t, dir,
		"src/main.c", "src/blinky.c", "src/blinky.h",
		"qpc/src/qf/qf_core.c", "qpc/src/qk/qk_sched.c", "qpc/src/qs/qs_trace.c",
	)

	c := DefaultConfig()
	c.QPPath = "qpc"
	// Overlapping patterns: src/main.c matches both.
	c.Sources = []string{"src/*.c", "src/main.c"}

	sources, err := CollectSources(dir, c)
	if err != nil {
		t.Fatalf("CollectSources: %s", err)
	}

	var rel []string
	for _, s := range sources {
		r, _ := filepath.Rel(dir, s)
		rel = append(rel, r)
	}
	want := []string{
		"src/blinky.c", "src/main.c",
		"qpc/src/qf/qf_core.c", "qpc/src/qk/qk_sched.c", "qpc/src/qs/qs_trace.c",
	}
	if !reflect.DeepEqual(rel, want) {
		t.Errorf("got %v, want %v", rel, want)
	}
}

func TestCollectSourcesNoFramework(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-sources-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	c := DefaultConfig()
	c.QPPath = "no-such-dir"
	c.Sources = []string{"src/*.c"}

	sources, err := CollectSources(dir, c)
	if err != nil {
		t.Fatalf("CollectSources: %s", err)
	}
	if len(sources) != 0 {
		t.Errorf("got %v, want no sources", sources)
	}
}

func TestGetIncludeDirs(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkbuild-sources-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	writeFiles(t, dir, "inc/app.h", "qpc/include/qpc.h")

	c := DefaultConfig()
	c.QPPath = "qpc"

	// "src" is configured but does not exist, so only "inc" survives, plus
	// the framework include dirs.
	includes := GetIncludeDirs(dir, c)
	want := []string{
		filepath.Join(dir, "inc"),
		filepath.Join(dir, "qpc", "include"),
		filepath.Join(dir, "qpc", "ports", "arm-cm", "qk", "gnu"),
	}
	if !reflect.DeepEqual(includes, want) {
		t.Errorf("got %v, want %v", includes, want)
	}
}

func TestGetDefines(t *testing.T) {
	c := &Config{Defines: []string{"FOO=1"}, Debug: true}
	want := []string{"FOO=1", "QP_API_VERSION=720", "Q_SPY=1"}
	if got := GetDefines(c); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	c.Debug = false
	want = []string{"FOO=1", "QP_API_VERSION=720", "Q_SPY=0"}
	if got := GetDefines(c); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestObjectNames(t *testing.T) {
	names := objectNames([]string{
		"src/main.c",
		"lib/util.c",
		"third_party/util.c", // base name collision
	})
	want := map[string]string{
		"src/main.c":         "main.o",
		"lib/util.c":         "util.o",
		"third_party/util.c": "third_party_util.o",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}
