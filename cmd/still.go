package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halcyonpartners/backdrop/internal/effect"
	"github.com/halcyonpartners/backdrop/internal/fallback"
)

var stillCmd = &cobra.Command{
	Use:   "still <effect> <out.png>",
	Short: "Write an effect's static fallback as a PNG",
	Args:  cobra.ExactArgs(2),
	RunE:  still,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveDefault
		}
		return effectNames(), cobra.ShellCompDirectiveNoFileComp
	},
}

var stillWidth, stillHeight int

func init() {
	rootCmd.AddCommand(stillCmd)
	stillCmd.Flags().IntVar(&stillWidth, "width", 0, "image width (default from settings)")
	stillCmd.Flags().IntVar(&stillHeight, "height", 0, "image height (default from settings)")
}

func still(cmd *cobra.Command, args []string) error {
	log, settings, _, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	st, err := effect.Lookup(args[0])
	if err != nil {
		return err
	}
	width, height := settings.Width, settings.Height
	if stillWidth > 0 {
		width = stillWidth
	}
	if stillHeight > 0 {
		height = stillHeight
	}
	return writeStill(log, st, width, height, args[1])
}

func writeStill(log *zap.Logger, st effect.Strategy, width, height int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fallback.WritePNG(f, st.Still(width, height)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Info("wrote still", zap.String("effect", st.Name), zap.String("path", path),
		zap.Int("width", width), zap.Int("height", height))
	return nil
}

func effectNames() []string {
	var names []string
	for _, st := range effect.Strategies() {
		names = append(names, st.Name)
	}
	return names
}
