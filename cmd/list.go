package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dcn-sim/trafficgen/sim/distribution"
)

// listCmd shows the distribution files available to generate
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the flow size distributions in the CDF directory",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := printDistributions(cmd.OutOrStdout(), genOpts.CDFDir); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

// printDistributions renders one row per file in dir. Files that do not
// parse as a CDF are listed with the reason instead of statistics.
func printDistributions(out io.Writer, dir string) error {
	infos, err := distribution.List(dir)
	if err != nil {
		return err
	}
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Distributions in %s", dir))
	t.AppendHeader(table.Row{"File", "Points", "Min (B)", "Max (B)", "Mean (B)"})
	for _, info := range infos {
		if info.Err != nil {
			t.AppendRow(table.Row{info.Name, "-", "-", "-", "invalid: " + info.Err.Error()})
			continue
		}
		t.AppendRow(table.Row{
			info.Name,
			info.Points,
			fmt.Sprintf("%.0f", info.Min),
			fmt.Sprintf("%.0f", info.Max),
			fmt.Sprintf("%.1f", info.Mean),
		})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d files", len(infos))})
	t.Render()
	return nil
}
