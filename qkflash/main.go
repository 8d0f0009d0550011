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

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/juju/errors"
	flag "github.com/spf13/pflag"

	"github.com/qp-qk/tools/common/multierror"
	"github.com/qp-qk/tools/common/pflagenv"
	"github.com/qp-qk/tools/flasher"
	"github.com/qp-qk/tools/version"
)

const envPrefix = "QK_"

var (
	projectDir  = flag.StringP("project", "p", ".", "Project directory")
	iface       = flag.StringP("interface", "i", "", "Programming interface: stlink, jlink, openocd, dfu, esp32, msp430")
	fwFile      = flag.StringP("file", "f", "", "Firmware file to flash (auto-detect if not specified)")
	fileType    = flag.StringP("type", "t", "bin", "Firmware file type: bin, hex or elf")
	eraseFirst  = flag.Bool("erase", false, "Erase flash before programming")
	noReset     = flag.Bool("no-reset", false, "Do not reset target after flashing")
	probeOnly   = flag.Bool("probe-only", false, "Only probe for target, do not flash")
	versionFlag = flag.Bool("version", false, "Print version and exit")
)

func checkFlags() error {
	var errs error
	switch *fileType {
	case "bin", "hex", "elf":
	default:
		errs = multierror.Append(errs, errors.Errorf("--type must be bin, hex or elf, not %q", *fileType))
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

	config, err := flasher.LoadConfig(*projectDir)
	if err != nil {
		return errors.Trace(err)
	}
	config = config.WithOverrides(*eraseFirst, *noReset)

	// The --interface flag wins over the config file; either may name an
	// interface the write dispatch will reject.
	ifaceName := config.Interface
	if *iface != "" {
		ifaceName = *iface
	}

	f := flasher.New(*projectDir, config)

	if *probeOnly {
		if pr := f.Probe(ifaceName); !pr.Found {
			return errors.Errorf("no target device found")
		}
		return nil
	}

	res := f.Flash(ifaceName, *fwFile, *fileType)
	if !res.Success {
		return errors.Annotatef(res.Err, "flash failed")
	}

	color.New(color.FgGreen).Fprintf(os.Stderr,
		"\nFlash completed successfully in %.2f seconds\n", res.Elapsed.Seconds())
	return nil
}

func main() {
	initFlags()
	flag.Parse()
	pflagenv.Parse(envPrefix)

	if *versionFlag {
		fmt.Printf(
			"%s\nVersion: %s\nBuild ID: %s\n",
			"The QP-QK SDK flash tool", version.Version, version.BuildId,
		)
		return
	}

	if err := run(); err != nil {
		glog.Infof("Error: %+v", err)
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
