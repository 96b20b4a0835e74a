package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/txtppgo/txtpp/pkg/preproc"
)

func newVerifyCmd(out, errOut io.Writer) *cobra.Command {
	var flags sharedFlags

	cmd := &cobra.Command{
		Use:   "verify [roots...]",
		Short: "check that on-disk outputs are up to date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := preproc.Verify(args, flags.options())
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
