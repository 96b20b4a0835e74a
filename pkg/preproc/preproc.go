// Package preproc is the library surface named in §6 of the
// specification: Preprocess, Verify and Clean each walk a set of roots,
// drive the dependency scheduler over every source file found, and return
// an aggregated Report. It is the only package that wires pkg/txtpp,
// internal/scheduler, internal/walker and internal/shellresolve together;
// cmd/txtpp calls into it and nothing else.
package preproc

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/txtppgo/txtpp/internal/scheduler"
	"github.com/txtppgo/txtpp/internal/shellresolve"
	"github.com/txtppgo/txtpp/internal/walker"
	"github.com/txtppgo/txtpp/pkg/txtpp"
)

// Options configures a preprocessing pass: the engine Config plus the two
// options that belong to the scheduler/walker layer rather than to a
// single file's engine.
type Options struct {
	txtpp.Config
	// Recursive descends into subdirectories of a directory root.
	Recursive bool
	// Jobs is the worker count; 1 means strictly serial. Values below 1
	// are treated as 1.
	Jobs int
}

// FileResult is one source file's outcome.
type FileResult struct {
	Path string
	Err  error
}

// Report aggregates the outcome of every file a pass touched.
type Report struct {
	Results []FileResult
}

// Failed reports whether any file in the report ended in error. The CLI's
// exit status is non-zero iff this is true (§7).
func (r *Report) Failed() bool {
	return r.FailureCount() > 0
}

// FailureCount returns the number of files that ended in error.
func (r *Report) FailureCount() int {
	n := 0
	for _, fr := range r.Results {
		if fr.Err != nil {
			n++
		}
	}
	return n
}

// String renders one line per failing file followed by a summary line.
func (r *Report) String() string {
	var b strings.Builder
	for _, fr := range r.Results {
		if fr.Err != nil {
			fmt.Fprintf(&b, "FAIL %s: %v\n", fr.Path, fr.Err)
		}
	}
	fmt.Fprintf(&b, "%d file(s), %d failed\n", len(r.Results), r.FailureCount())
	return b.String()
}

// Preprocess drives the scheduler over roots in whatever mode opts.Mode
// already names (Build or InMemoryBuild are both sensible here; unlike
// Verify and Clean, Preprocess does not itself force a mode).
func Preprocess(roots []string, opts Options) (*Report, error) {
	return run(roots, opts)
}

// Verify is Preprocess with the mode forced to ModeVerify.
func Verify(roots []string, opts Options) (*Report, error) {
	opts.Mode = txtpp.ModeVerify
	return run(roots, opts)
}

// Clean is Preprocess with the mode forced to ModeClean.
func Clean(roots []string, opts Options) (*Report, error) {
	opts.Mode = txtpp.ModeClean
	return run(roots, opts)
}

func run(roots []string, opts Options) (*Report, error) {
	if err := shellresolve.CheckNotSubprocess(); err != nil {
		return nil, err
	}

	suffix := opts.Config.Suffix
	if suffix == "" {
		suffix = txtpp.DefaultSuffix
		opts.Config.Suffix = suffix
	}

	files, err := walker.Walk(roots, suffix, opts.Recursive)
	if err != nil {
		return nil, err
	}

	shell := shellresolve.New(shellresolve.Default(opts.Shell))

	var sched *scheduler.Scheduler
	runFn := func(path string) ([]byte, error) {
		p := txtpp.New(path, opts.Config, shell, sched)
		out, err := p.Run()
		if err != nil {
			return nil, err
		}
		if err := commit(path, out, opts.Config); err != nil {
			return nil, err
		}
		return out, nil
	}
	sched = scheduler.New(opts.Jobs, runFn)

	results := sched.Run(files)
	report := &Report{Results: make([]FileResult, 0, len(results))}
	for _, r := range results {
		report.Results = append(report.Results, FileResult{Path: r.Path, Err: r.Err})
	}
	return report, nil
}

// commit applies a file's computed output according to the pass's mode:
// Build writes unconditionally, InMemoryBuild writes only on a content
// change, Verify compares against disk without writing, and Clean removes
// the output file (the engine itself already removed any temp targets).
func commit(path string, out []byte, cfg txtpp.Config) error {
	outPath := strings.TrimSuffix(path, suffixOf(cfg))

	switch cfg.Mode {
	case txtpp.ModeClean:
		if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
			return &txtpp.ExecutionError{File: path, Msg: "removing output " + outPath, Err: err}
		}
		return nil
	case txtpp.ModeVerify:
		return verifyAgainstDisk(path, outPath, out)
	case txtpp.ModeInMemoryBuild:
		return txtpp.WriteIfDiffers(outPath, out)
	default: // ModeBuild
		if err := os.WriteFile(outPath, out, 0o644); err != nil {
			return &txtpp.ExecutionError{File: path, Msg: "writing output " + outPath, Err: err}
		}
		return nil
	}
}

func suffixOf(cfg txtpp.Config) string {
	if cfg.Suffix == "" {
		return txtpp.DefaultSuffix
	}
	return cfg.Suffix
}

func verifyAgainstDisk(srcPath, outPath string, computed []byte) error {
	onDisk, err := os.ReadFile(outPath)
	if err != nil {
		return &txtpp.VerificationError{File: srcPath, Offset: 0}
	}
	n := len(computed)
	if len(onDisk) < n {
		n = len(onDisk)
	}
	for i := 0; i < n; i++ {
		if computed[i] != onDisk[i] {
			return &txtpp.VerificationError{File: srcPath, Offset: i}
		}
	}
	if !bytes.Equal(computed, onDisk) {
		return &txtpp.VerificationError{File: srcPath, Offset: n}
	}
	return nil
}
