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

	"github.com/juju/errors"
)

// FindFirmwareFile looks for a firmware file of the given type ("bin",
// "hex", "elf") in buildDir. Name patterns are tried in priority order;
// within a pattern the most recently modified match wins.
func FindFirmwareFile(buildDir, fileType string) (string, error) {
	patterns := []string{
		fmt.Sprintf("*.%s", fileType),
		fmt.Sprintf("firmware.%s", fileType),
		fmt.Sprintf("main.%s", fileType),
	}

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(buildDir, pattern))
		if err != nil {
			return "", errors.Trace(err)
		}
		var newest string
		var newestMtime int64
		for _, m := range matches {
			fi, err := os.Stat(m)
			if err != nil {
				continue
			}
			if newest == "" || fi.ModTime().UnixNano() > newestMtime {
				newest = m
				newestMtime = fi.ModTime().UnixNano()
			}
		}
		if newest != "" {
			return newest, nil
		}
	}

	return "", errors.Errorf("no %s file found in %s", fileType, buildDir)
}
