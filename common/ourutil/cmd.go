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
package ourutil

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/juju/errors"
)

// CmdResult is the outcome of a single external tool invocation.
// A nonzero ExitCode is a tool-level failure, not a Go-level error.
type CmdResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (r *CmdResult) Ok() bool {
	return r.ExitCode == 0
}

// RunCmdCaptured runs a command with stdout and stderr captured and returns
// a structured result. A nonzero exit is reported through CmdResult.ExitCode;
// the returned error is non-nil only when the process could not be run at all
// (binary missing, context expired before exit, etc.).
func RunCmdCaptured(ctx context.Context, args ...string) (*CmdResult, error) {
	Reportf("Running %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var so, se bytes.Buffer
	cmd.Stdout = &so
	cmd.Stderr = &se

	err := cmd.Run()
	res := &CmdResult{Stdout: so.String(), Stderr: se.String()}

	if ctx.Err() != nil {
		return nil, errors.Annotatef(ctx.Err(), "%s", args[0])
	}
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			res.ExitCode = ee.ExitCode()
			return res, nil
		}
		return nil, errors.Annotatef(err, "failed to run %s", args[0])
	}
	return res, nil
}
