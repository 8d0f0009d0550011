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
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/juju/errors"

	"github.com/qp-qk/tools/builder"
	"github.com/qp-qk/tools/common/ourutil"
)

// Probing is the only bounded external invocation; everything else blocks
// on the vendor tool.
const probeTimeout = 10 * time.Second

// Flasher drives one flash operation against one device.
type Flasher struct {
	projectDir string
	buildDir   string
	config     *Config

	runCmd   func(ctx context.Context, args ...string) (*ourutil.CmdResult, error)
	lookPath func(file string) (string, error)
}

// Result is the outcome of one flash operation.
type Result struct {
	Success      bool
	Err          error
	FirmwareFile string
	Elapsed      time.Duration
}

// ProbeResult describes the outcome of a device probe.
type ProbeResult struct {
	Found  bool
	Output string
	Err    string
}

func New(projectDir string, config *Config) *Flasher {
	return &Flasher{
		projectDir: projectDir,
		buildDir:   builder.GetBuildDir(projectDir),
		config:     config,
		runCmd:     ourutil.RunCmdCaptured,
		lookPath:   exec.LookPath,
	}
}

// CheckToolAvailability verifies that the interface's external tool is
// resolvable on PATH.
func (f *Flasher) CheckToolAvailability(iface string) error {
	tool := GetInterfaceConfig(iface).Tool
	path, err := f.lookPath(tool)
	if err != nil {
		return errors.Errorf("programming tool for %s not available: %s not found in PATH", iface, tool)
	}
	ourutil.Reportf("Found %s: %s", tool, path)
	return nil
}

// Probe checks for a connected target device. A nonzero exit, a timeout and
// an execution fault all come back as "not found"; the probe is not retried.
func (f *Flasher) Probe(iface string) *ProbeResult {
	ourutil.Reportf("Probing for target using %s...", iface)

	ic := GetInterfaceConfig(iface)
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	res, err := f.runCmd(ctx, ic.ProbeCmd...)
	if err != nil {
		ourutil.Reportf("Error probing target: %s", err)
		return &ProbeResult{Err: err.Error()}
	}
	if !res.Ok() {
		ourutil.Reportf("No target device found:")
		ourutil.Reportf("%s", strings.TrimRight(res.Stderr, "\n"))
		return &ProbeResult{Output: res.Stdout, Err: res.Stderr}
	}

	ourutil.Reportf("Target device found:")
	ourutil.Reportf("%s", strings.TrimRight(res.Stdout, "\n"))
	return &ProbeResult{Found: true, Output: res.Stdout}
}

// Flash runs the whole flash pipeline. Stage failures are folded into the
// result, they do not propagate as faults.
func (f *Flasher) Flash(iface, firmwareFile, fileType string) *Result {
	start := time.Now()
	res := &Result{}
	res.Err = f.flash(iface, firmwareFile, fileType, res)
	res.Success = res.Err == nil
	res.Elapsed = time.Since(start)
	return res
}

func (f *Flasher) flash(iface, firmwareFile, fileType string, res *Result) error {
	ourutil.Reportf("Starting flash operation using %s", iface)

	if err := f.CheckToolAvailability(iface); err != nil {
		return errors.Trace(err)
	}

	if firmwareFile == "" {
		fw, err := FindFirmwareFile(f.buildDir, fileType)
		if err != nil {
			return errors.Trace(err)
		}
		firmwareFile = fw
	}
	res.FirmwareFile = firmwareFile
	ourutil.Reportf("Using firmware file: %s", firmwareFile)

	if pr := f.Probe(iface); !pr.Found {
		return errors.Errorf("target device not found: %s", strings.TrimSpace(pr.Err))
	}

	if f.config.EraseBeforeFlash {
		if err := f.Erase(iface); err != nil {
			return errors.Annotatef(err, "flash erase failed")
		}
	}

	if err := f.write(iface, firmwareFile); err != nil {
		return errors.Trace(err)
	}

	if f.config.VerifyAfterFlash {
		if err := f.verify(iface, firmwareFile); err != nil {
			return errors.Annotatef(err, "flash verification failed")
		}
	}

	// A failed reset after a successful write does not fail the operation.
	if f.config.ResetAfterFlash {
		if err := f.Reset(iface); err != nil {
			ourutil.Reportf("Reset failed: %s", err)
		}
	}

	return nil
}

// runTool invokes an external tool, surfacing its stderr on failure and its
// stdout on success. The tool's exit code alone decides the outcome.
func (f *Flasher) runTool(args ...string) error {
	res, err := f.runCmd(context.Background(), args...)
	if err != nil {
		return errors.Trace(err)
	}
	if !res.Ok() {
		if res.Stderr != "" {
			ourutil.Reportf("%s", strings.TrimRight(res.Stderr, "\n"))
		}
		return errors.Errorf("%s exited with code %d", args[0], res.ExitCode)
	}
	if res.Stdout != "" {
		ourutil.Reportf("%s", strings.TrimRight(res.Stdout, "\n"))
	}
	return nil
}
