package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/txtppgo/txtpp/pkg/preproc"
)

func newCleanCmd(out, errOut io.Writer) *cobra.Command {
	var flags sharedFlags

	cmd := &cobra.Command{
		Use:   "clean [roots...]",
		Short: "delete generated outputs and temp files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := preproc.Clean(args, flags.options())
			if err != nil {
				return err
			}
			return printReport(out, report)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	addSharedFlags(cmd, &flags)
	return cmd
}
