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
	"path/filepath"
)

func GetBuildDir(projectDir string) string {
	return filepath.Join(projectDir, "build")
}

func GetObjectDir(buildDir string) string {
	return filepath.Join(buildDir, "obj")
}

func GetBuildLogFilePath(buildDir string) string {
	return filepath.Join(buildDir, "build.log")
}

func GetSizeReportFilePath(buildDir string) string {
	return filepath.Join(buildDir, "size_report.txt")
}
