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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFindFirmwareFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "qkflash-find-test-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	older := filepath.Join(dir, "firmware.bin")
	newer := filepath.Join(dir, "app.bin")
	for _, f := range []string{older, newer} {
		if err := ioutil.WriteFile(f, []byte("fw"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	// The most recently modified match of the highest-priority pattern wins.
	got, err := FindFirmwareFile(dir, "bin")
	if err != nil {
		t.Fatalf("FindFirmwareFile: %s", err)
	}
	if got != newer {
		t.Errorf("got %q, want %q", got, newer)
	}

	// No .hex anywhere: structured failure.
	if _, err := FindFirmwareFile(dir, "hex"); err == nil {
		t.Errorf("expected an error for a missing firmware type")
	}
}
