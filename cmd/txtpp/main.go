package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "txtpp: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "txtpp",
		Short:         "txtpp is a line-oriented text preprocessor",
		Long:          `txtpp expands include, run, tag, temp and write directives embedded in source files and writes the result alongside them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.AddCommand(newPreprocessCmd(out, errOut))
	rootCmd.AddCommand(newVerifyCmd(out, errOut))
	rootCmd.AddCommand(newCleanCmd(out, errOut))

	return rootCmd
}
