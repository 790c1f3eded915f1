package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/speedloop/internal/hostinfo"
	"github.com/psantana5/speedloop/internal/report"
)

func newHostCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "host",
		Short: "Describe the machine loops are timed on",
		Long: `Prints the CPU, memory, OS and Go toolchain of the current machine, so
loop timings can be read next to the hardware that produced them.
Output is a table by default; json and yaml are also supported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := report.ParseFormat(v.GetString("output"))
			if err != nil {
				return err
			}
			return report.WriteHost(cmd.OutOrStdout(), format, hostinfo.Detect())
		},
	}
}
