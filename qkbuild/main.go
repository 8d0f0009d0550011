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
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/qp-qk/tools/builder"
	"github.com/qp-qk/tools/common/multierror"
	"github.com/qp-qk/tools/common/ourutil"
	"github.com/qp-qk/tools/common/pflagenv"
	"github.com/qp-qk/tools/version"
)

const envPrefix = "QK_"

var (
	projectDir  = flag.StringP("project", "p", ".", "Project directory")
	buildName   = flag.StringP("config", "c", "release", "Build configuration name")
	cleanFirst  = flag.Bool("clean", false, "Clean build artifacts before building")
	cleanOnly   = flag.Bool("clean-only", false, "Only clean, do not build")
	verbose     = flag.BoolP("verbose", "v", false, "Pass external tool output through")
	versionFlag = flag.Bool("version", false, "Print version and exit")
)

func checkFlags() error {
	var errs error
	if *buildName == "" {
		errs = multierror.Append(errs, errors.Errorf("--config must not be empty"))
	}
	if fi, err := os.Stat(*projectDir); err != nil || !fi.IsDir() {
		errs = multierror.Append(errs, errors.Errorf("--project: %q is not a directory", *projectDir))
	}
	return errs
}

func run() error {
	if err := checkFlags(); err != nil {
		return errors.Trace(err)
	}

	config, err := builder.LoadConfig(*projectDir)
	if err != nil {
		return errors.Trace(err)
	}

	b := builder.New(*projectDir, config, *verbose)

	if *cleanFirst || *cleanOnly {
		if err := b.Clean(); err != nil {
			return errors.Trace(err)
		}
	}
	if *cleanOnly {
		return nil
	}

	ourutil.Reportf("Starting build for configuration: %s", *buildName)
	res := b.Build()
	if !res.Success {
		return errors.Annotatef(res.Err, "build failed")
	}

	color.New(color.FgGreen).Fprintf(os.Stderr,
		"\nBuild completed successfully in %.2f seconds\n", res.Elapsed.Seconds())
	ourutil.Reportf("Output files:")
	var kinds []string
	for kind := range res.Outputs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		ourutil.Reportf("  %s: %s", strings.ToUpper(kind), res.Outputs[kind])
	}
	return nil
}

func main() {
	initFlags()
	flag.Parse()
	pflagenv.Parse(envPrefix)

	if *versionFlag {
		fmt.Printf(
			"%s\nVersion: %s\nBuild ID: %s\n",
			"The QP-QK SDK build tool", version.Version, version.BuildId,
		)
		return
	}

	if err := run(); err != nil {
		glog.Infof("Error: %+v", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
