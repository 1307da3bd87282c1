package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/halcyonpartners/backdrop/pkg/window"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Report whether GPU rendering is available",
	Run:   probe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func probe(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	if window.Probe() {
		color.New(color.FgHiGreen, color.Bold).Fprint(out, "animated")
		color.New(color.FgHiBlack).Fprintln(out, ": OpenGL 4.1 core context available")
		return
	}
	color.New(color.FgHiYellow, color.Bold).Fprint(out, "static")
	color.New(color.FgHiBlack).Fprintln(out, ": no OpenGL 4.1 core context, effects fall back to stills")
}
