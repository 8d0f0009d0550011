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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/juju/errors"
)

// Subdirectories of <qp_path>/src contributed to every build when the
// framework checkout is present: the framework core, the preemptive kernel
// and the software tracing component.
var qpSourceDirs = []string{"qf", "qk", "qs"}

// CollectSources expands the configured source patterns against projectDir
// and appends the framework sources if the framework root exists. User
// sources come first, framework sources after them; duplicates are dropped
// by canonical path.
func CollectSources(projectDir string, c *Config) ([]string, error) {
	var sources []string

	for _, pattern := range c.Sources {
		p := filepath.Join(projectDir, pattern)
		if strings.ContainsAny(pattern, "*?[") {
			matches, err := filepath.Glob(p)
			if err != nil {
				return nil, errors.Annotatef(err, "bad source pattern %q", pattern)
			}
			sort.Strings(matches)
			sources = append(sources, matches...)
		} else if _, err := os.Stat(p); err == nil {
			sources = append(sources, p)
		}
	}

	qp := qpPath(projectDir, c)
	if _, err := os.Stat(qp); err == nil {
		qpSrc := filepath.Join(qp, "src")
		if _, err := os.Stat(qpSrc); err == nil {
			for _, d := range qpSourceDirs {
				matches, err := filepath.Glob(filepath.Join(qpSrc, d, "*.c"))
				if err != nil {
					return nil, errors.Trace(err)
				}
				sort.Strings(matches)
				sources = append(sources, matches...)
			}
		}
	}

	return dedupPaths(sources)
}

// GetIncludeDirs returns the project include dirs that exist on disk plus
// the framework include dirs (the latter are not checked for existence, the
// compiler tolerates missing -I entries).
func GetIncludeDirs(projectDir string, c *Config) []string {
	var includes []string

	for _, inc := range c.Includes {
		p := filepath.Join(projectDir, inc)
		if _, err := os.Stat(p); err == nil {
			includes = append(includes, p)
		}
	}

	qp := qpPath(projectDir, c)
	if _, err := os.Stat(qp); err == nil {
		includes = append(includes,
			filepath.Join(qp, "include"),
			filepath.Join(qp, "ports", "arm-cm", "qk", "gnu"),
		)
	}

	return includes
}

// GetDefines returns the configured preprocessor defines plus the framework
// API version and the tracing switch derived from the debug setting.
func GetDefines(c *Config) []string {
	defines := append([]string{}, c.Defines...)
	defines = append(defines, "QP_API_VERSION=720")
	if c.Debug {
		defines = append(defines, "Q_SPY=1")
	} else {
		defines = append(defines, "Q_SPY=0")
	}
	return defines
}

func qpPath(projectDir string, c *Config) string {
	if filepath.IsAbs(c.QPPath) {
		return c.QPPath
	}
	return filepath.Join(projectDir, c.QPPath)
}

// dedupPaths removes duplicates by canonical absolute path, keeping the
// first occurrence.
func dedupPaths(paths []string) ([]string, error) {
	seen := map[string]bool{}
	var res []string
	for _, p := range paths {
		ap, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Trace(err)
		}
		ap = filepath.Clean(ap)
		if seen[ap] {
			continue
		}
		seen[ap] = true
		res = append(res, p)
	}
	return res, nil
}

// objectNames maps each source file to an object file name. Objects are
// named after the source file's base name; when two sources share a base
// name the later one gets its parent directory prepended.
func objectNames(sources []string) map[string]string {
	res := make(map[string]string, len(sources))
	taken := map[string]bool{}
	for _, src := range sources {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		name := base + ".o"
		if taken[name] {
			parent := filepath.Base(filepath.Dir(src))
			name = fmt.Sprintf("%s_%s.o", parent, base)
		}
		taken[name] = true
		res[src] = name
	}
	return res
}
