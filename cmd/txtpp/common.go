package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/txtppgo/txtpp/pkg/preproc"
	"github.com/txtppgo/txtpp/pkg/txtpp"
)

// sharedFlags holds the options common to build, verify and clean: the
// CLI layer's job is entirely to translate flags into a preproc.Options
// and format the resulting Report, never to touch the engine directly.
type sharedFlags struct {
	shell             []string
	suffix            string
	recursive         bool
	jobs              int
	noTrailingNewline bool
}

func addSharedFlags(cmd *cobra.Command, f *sharedFlags) {
	cmd.Flags().StringArrayVar(&f.shell, "shell", nil, "shell argv prefix for run directives (default: host shell)")
	cmd.Flags().StringVar(&f.suffix, "suffix", txtpp.DefaultSuffix, "source file suffix")
	cmd.Flags().BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories of directory roots")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 1, "worker count (1 = strictly serial)")
	cmd.Flags().BoolVar(&f.noTrailingNewline, "no-trailing-newline", false, "do not append a final line-ending to output left open mid-line")
}

func (f *sharedFlags) options() preproc.Options {
	return preproc.Options{
		Config: txtpp.Config{
			Shell:             f.shell,
			Suffix:            f.suffix,
			NoTrailingNewline: f.noTrailingNewline,
		},
		Recursive: f.recursive,
		Jobs:      f.jobs,
	}
}

// printReport writes the report to out and returns a non-nil error iff any
// file failed, matching §7's "process exit status is non-zero iff any
// file failed".
func printReport(out io.Writer, report *preproc.Report) error {
	fmt.Fprint(out, report.String())
	if report.Failed() {
		return fmt.Errorf("%d file(s) failed", report.FailureCount())
	}
	return nil
}
