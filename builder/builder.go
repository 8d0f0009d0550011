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
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/juju/errors"

	"github.com/qp-qk/tools/common/ourio"
	"github.com/qp-qk/tools/common/ourutil"
)

// An ELF below this size almost certainly means the link went wrong.
const minPlausibleImageSize = 1024

var (
	requiredSymbols      = []string{"QF_init", "QF_run", "QActive_start"}
	kernelSymbolPrefixes = []string{"QK_sched_", "QK_activate_"}
)

// Builder drives one build of a QP-QK project: source collection,
// compilation, linking, binary generation and validation.
type Builder struct {
	projectDir string
	buildDir   string
	config     *Config
	toolchain  Toolchain
	verbose    bool

	logFile io.Writer

	runCmd func(ctx context.Context, args ...string) (*ourutil.CmdResult, error)
}

// Result is the outcome of one build run.
type Result struct {
	Success bool
	Err     error
	// Outputs maps output kind ("elf", "bin", "hex", "asm") to the produced
	// file path.
	Outputs map[string]string
	Elapsed time.Duration
}

func New(projectDir string, config *Config, verbose bool) *Builder {
	return &Builder{
		projectDir: projectDir,
		buildDir:   GetBuildDir(projectDir),
		config:     config,
		toolchain:  GetToolchain(config.Toolchain),
		verbose:    verbose,
		runCmd:     ourutil.RunCmdCaptured,
	}
}

// Build runs the whole pipeline. Stage failures are folded into the result,
// they do not propagate as faults.
func (b *Builder) Build() *Result {
	start := time.Now()
	res := &Result{Outputs: map[string]string{}}
	res.Err = b.build(res.Outputs)
	res.Success = res.Err == nil
	res.Elapsed = time.Since(start)
	return res
}

func (b *Builder) build(outputs map[string]string) error {
	b.reportf("Starting build")
	b.reportf("Project: %s", b.projectDir)
	b.reportf("Platform: %s", b.config.Platform)
	b.reportf("Toolchain: %s", b.config.Toolchain)

	if err := os.MkdirAll(GetObjectDir(b.buildDir), 0755); err != nil {
		return errors.Trace(err)
	}

	logFile, err := os.Create(GetBuildLogFilePath(b.buildDir))
	if err != nil {
		return errors.Trace(err)
	}
	defer logFile.Close()
	b.logFile = logFile

	sources, err := CollectSources(b.projectDir, b.config)
	if err != nil {
		return errors.Trace(err)
	}
	b.reportf("Found %d source files", len(sources))
	if len(sources) == 0 {
		return errors.Errorf("no source files found")
	}

	objects, err := b.compile(sources)
	if err != nil {
		return errors.Trace(err)
	}

	elfFile, err := b.link(objects)
	if err != nil {
		return errors.Trace(err)
	}
	outputs["elf"] = elfFile

	if err := b.generateBinaries(elfFile, outputs); err != nil {
		return errors.Trace(err)
	}

	if err := b.analyzeSize(elfFile); err != nil {
		return errors.Trace(err)
	}

	if err := b.validate(elfFile); err != nil {
		return errors.Trace(err)
	}

	return nil
}

func (b *Builder) compileFlags() ([]string, error) {
	opt := b.config.Optimization
	if opt == "" {
		opt = "Os"
	}
	cflags := []string{"-" + opt, "-Wall", "-Wextra", "-std=c99"}
	if b.config.Debug {
		cflags = append(cflags, "-g", "-DDEBUG")
	}
	cflags = append(cflags, GetPlatformFlags(b.config.Platform).CFlags...)
	extra, err := b.config.ExtraCFlagsList()
	if err != nil {
		return nil, errors.Trace(err)
	}
	cflags = append(cflags, extra...)
	for _, inc := range GetIncludeDirs(b.projectDir, b.config) {
		cflags = append(cflags, "-I"+inc)
	}
	for _, def := range GetDefines(b.config) {
		cflags = append(cflags, "-D"+def)
	}
	return cflags, nil
}

func (b *Builder) compile(sources []string) ([]string, error) {
	b.reportf("Compiling source files...")

	cflags, err := b.compileFlags()
	if err != nil {
		return nil, errors.Trace(err)
	}

	objDir := GetObjectDir(b.buildDir)
	names := objectNames(sources)

	var objects []string
	for _, src := range sources {
		objFile := filepath.Join(objDir, names[src])
		objects = append(objects, objFile)

		stale, err := isStale(src, objFile)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !stale {
			glog.V(1).Infof("%s is up to date", objFile)
			continue
		}

		b.reportf("Compiling %s...", filepath.Base(src))
		args := append([]string{b.toolchain.CC}, cflags...)
		args = append(args, "-c", src, "-o", objFile)
		res, err := b.runCmd(context.Background(), args...)
		if err != nil {
			return nil, errors.Trace(err)
		}
		if !res.Ok() {
			b.reportf("Error compiling %s:", filepath.Base(src))
			b.reportf("%s", strings.TrimRight(res.Stderr, "\n"))
			return nil, errors.Errorf("compilation of %s failed", filepath.Base(src))
		}
		if b.verbose && res.Stdout != "" {
			fmt.Fprint(os.Stdout, res.Stdout)
		}
	}

	return objects, nil
}

// isStale reports whether the object file needs to be rebuilt from the
// source: it is stale if it does not exist or is older than the source.
func isStale(src, obj string) (bool, error) {
	objInfo, err := os.Stat(obj)
	if err != nil {
		return true, nil
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, errors.Annotatef(err, "source %s disappeared", src)
	}
	return srcInfo.ModTime().After(objInfo.ModTime()), nil
}

func (b *Builder) link(objects []string) (string, error) {
	b.reportf("Linking executable...")

	pf := GetPlatformFlags(b.config.Platform)
	ldflags := append([]string{}, pf.LDFlags...)
	extra, err := b.config.ExtraLDFlagsList()
	if err != nil {
		return "", errors.Trace(err)
	}
	ldflags = append(ldflags, extra...)

	linkerScript := filepath.Join(b.projectDir, pf.LinkerScript)
	if _, err := os.Stat(linkerScript); err == nil {
		ldflags = append(ldflags, "-T", linkerScript)
	}

	elfFile := filepath.Join(b.buildDir, b.config.ProjectNameOrDefault()+".elf")
	args := append([]string{b.toolchain.LD}, ldflags...)
	args = append(args, objects...)
	args = append(args, "-o", elfFile)

	res, err := b.runCmd(context.Background(), args...)
	if err != nil {
		return "", errors.Trace(err)
	}
	if !res.Ok() {
		b.reportf("Error linking:")
		b.reportf("%s", strings.TrimRight(res.Stderr, "\n"))
		return "", errors.Errorf("linking failed")
	}

	return elfFile, nil
}

func (b *Builder) generateBinaries(elfFile string, outputs map[string]string) error {
	b.reportf("Generating binary files...")

	base := strings.TrimSuffix(elfFile, filepath.Ext(elfFile))

	binFile := base + ".bin"
	if err := b.runConversion(b.toolchain.ObjCopy, "-O", "binary", elfFile, binFile); err != nil {
		return errors.Trace(err)
	}
	outputs["bin"] = binFile

	hexFile := base + ".hex"
	if err := b.runConversion(b.toolchain.ObjCopy, "-O", "ihex", elfFile, hexFile); err != nil {
		return errors.Trace(err)
	}
	outputs["hex"] = hexFile

	asmFile := base + ".asm"
	res, err := b.runCmd(context.Background(), b.toolchain.ObjDump, "-d", elfFile)
	if err != nil {
		return errors.Trace(err)
	}
	if !res.Ok() {
		return errors.Errorf("%s -d exited with code %d", b.toolchain.ObjDump, res.ExitCode)
	}
	if err := ioutil.WriteFile(asmFile, []byte(res.Stdout), 0644); err != nil {
		return errors.Trace(err)
	}
	outputs["asm"] = asmFile

	return nil
}

func (b *Builder) runConversion(args ...string) error {
	res, err := b.runCmd(context.Background(), args...)
	if err != nil {
		return errors.Trace(err)
	}
	if !res.Ok() {
		return errors.Errorf("%s exited with code %d", args[0], res.ExitCode)
	}
	return nil
}

func (b *Builder) analyzeSize(elfFile string) error {
	b.reportf("Analyzing memory usage...")

	res, err := b.runCmd(context.Background(), b.toolchain.Size, "-A", elfFile)
	if err != nil {
		return errors.Trace(err)
	}
	if res.Ok() {
		b.reportf("\nMemory Usage:")
		b.reportf("%s", strings.TrimRight(res.Stdout, "\n"))
	}

	return errors.Trace(ioutil.WriteFile(
		GetSizeReportFilePath(b.buildDir), []byte(res.Stdout), 0644))
}

func (b *Builder) validate(elfFile string) error {
	b.reportf("Validating build...")

	fi, err := os.Stat(elfFile)
	if err != nil {
		return errors.Annotatef(err, "ELF file not generated")
	}
	if fi.Size() < minPlausibleImageSize {
		b.reportf("WARNING: ELF file size (%d bytes) seems very small", fi.Size())
	}

	res, err := b.runCmd(context.Background(), b.toolchain.ObjDump, "-t", elfFile)
	if err != nil {
		return errors.Trace(err)
	}

	if missing := missingRequiredSymbols(res.Stdout); len(missing) > 0 {
		b.reportf("ERROR: Missing required symbols: %v", missing)
		return errors.Errorf("missing required symbols: %s", strings.Join(missing, ", "))
	}

	if !hasKernelSymbols(res.Stdout) {
		b.reportf("WARNING: QK kernel symbols not found - ensure QK is linked")
	}

	return nil
}

func missingRequiredSymbols(symtab string) []string {
	var missing []string
	for _, sym := range requiredSymbols {
		if !strings.Contains(symtab, sym) {
			missing = append(missing, sym)
		}
	}
	return missing
}

func hasKernelSymbols(symtab string) bool {
	for _, prefix := range kernelSymbolPrefixes {
		if strings.Contains(symtab, prefix) {
			return true
		}
	}
	return false
}

// Clean removes build artifacts, sparing the build log (the current run may
// already be writing to it).
func (b *Builder) Clean() error {
	b.reportf("Cleaning build artifacts...")

	if _, err := os.Stat(b.buildDir); os.IsNotExist(err) {
		b.reportf("Build directory already clean")
		return nil
	}
	if err := ourio.RemoveFromDir(b.buildDir, []string{"build.log"}); err != nil {
		return errors.Trace(err)
	}
	b.reportf("Build directory cleaned")
	return nil
}

func (b *Builder) reportf(f string, args ...interface{}) {
	ourutil.Reportf(f, args...)
	if b.logFile != nil {
		fmt.Fprintf(b.logFile, f+"\n", args...)
	}
}
