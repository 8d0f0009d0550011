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
	goflag "flag"
	"fmt"
	"os"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/qp-qk/tools/version"
)

// glog registers these on the standard flag set; keep them available but
// out of the short help.
var hiddenFlags = []string{
	"alsologtostderr",
	"log_backtrace_at",
	"log_dir",
	"logbufsecs",
	"logtostderr",
	"stderrthreshold",
	"v",
	"vmodule",
}

func initFlags() {
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	for _, f := range hiddenFlags {
		flag.CommandLine.MarkHidden(f)
	}
	flag.Usage = usage
}

func usage() {
	w := tabwriter.NewWriter(os.Stderr, 0, 0, 1, ' ', 0)

	fmt.Fprintf(w, "The QP-QK SDK build tool %s.\n", version.GetVersion())
	fmt.Fprintf(w, "\nUsage:\n")
	fmt.Fprintf(w, "  %s [flags]\n", os.Args[0])
	fmt.Fprintf(w, "\nFlags:\n")
	fmt.Fprintf(w, flag.CommandLine.FlagUsages())

	w.Flush()
}
