package main

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/txtppgo/txtpp/pkg/preproc"
	"github.com/txtppgo/txtpp/pkg/txtpp"
)

func newPreprocessCmd(out, errOut io.Writer) *cobra.Command {
	var flags sharedFlags
	var needed bool

	cmd := &cobra.Command{
		Use:   "preprocess [roots...]",
		Short: "preprocess sources and write their outputs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			if needed {
				opts.Mode = txtpp.ModeInMemoryBuild
			} else {
				opts.Mode = txtpp.ModeBuild
			}
			report, err := preproc.Preprocess(args, opts)
			if err != nil {
				return err
			}
			return printReport(out, report)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	addSharedFlags(cmd, &flags)
	cmd.Flags().BoolVar(&needed, "needed", false, "write output only when its contents would change")
	return cmd
}
