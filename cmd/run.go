package cmd

import (
	"context"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halcyonpartners/backdrop/internal/config"
	"github.com/halcyonpartners/backdrop/internal/effect"
	"github.com/halcyonpartners/backdrop/internal/opengl"
	"github.com/halcyonpartners/backdrop/pkg/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and run an effect",
	RunE:  Run,
}

var (
	runEffect    string
	runWatch     bool
	runFrames    int
	runStillPath string
)

func init() {
	rootCmd.AddCommand(runCmd)
	runtime.LockOSThread()

	runCmd.Flags().StringVarP(&runEffect, "effect", "e", "", "effect to run (overrides settings)")
	runCmd.Flags().BoolVarP(&runWatch, "watch", "w", false, "remount the effect when the settings file changes")
	runCmd.Flags().IntVar(&runFrames, "frames", 0, "stop after this many frames (0 runs until closed)")
	runCmd.Flags().StringVar(&runStillPath, "still", "backdrop.png", "where to write the still when GPU rendering is unavailable")
	runCmd.RegisterFlagCompletionFunc("effect", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return effectNames(), cobra.ShellCompDirectiveNoFileComp
	})
}

func Run(cmd *cobra.Command, args []string) error {
	log, settings, path, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if runEffect != "" {
		settings.Effect = runEffect
	}
	st, err := effect.Lookup(settings.Effect)
	if err != nil {
		return err
	}

	if !window.Probe() {
		log.Warn("GPU rendering unavailable, writing still instead")
		return writeStill(log, st, settings.Width, settings.Height, runStillPath)
	}

	win, err := window.New("backdrop", settings.Width, settings.Height)
	if err != nil {
		return err
	}
	defer win.Destroy()
	log.Info("window open", zap.Stringer("window", win))

	dev := opengl.New(log)
	available := func() bool { return true }
	mounted := effect.Mount(win, available, dev, st, *settings, log)
	defer func() { mounted.Dispose() }()
	if mounted.Variant == effect.Static {
		return writeStill(log, st, settings.Width, settings.Height, runStillPath)
	}

	var changes <-chan struct{}
	if runWatch {
		w, err := config.NewWatcher(path, config.DefaultDebounce, log)
		if err != nil {
			return err
		}
		defer w.Close()
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		w.Start(ctx)
		changes = w.Changes()
	}

	frames := 0
	for !win.ShouldClose() {
		select {
		case <-changes:
			mounted = remount(log, win, dev, mounted, path)
		default:
		}

		win.Frame()
		frames++
		if runFrames > 0 && frames >= runFrames {
			break
		}
	}
	log.Info("window closed", zap.Int("frames", frames))
	return nil
}

// remount mounts a fresh effect from the reloaded settings and then disposes
// the running one. A bad reload or a failed mount keeps the current effect.
func remount(log *zap.Logger, win *window.Window, dev *opengl.Device, current *effect.Mounted, path string) *effect.Mounted {
	settings, err := config.Load(path, log)
	if err != nil {
		log.Error("reload settings", zap.Error(err))
		return current
	}
	if runEffect != "" {
		settings.Effect = runEffect
	}
	st, err := effect.Lookup(settings.Effect)
	if err != nil {
		log.Error("reload settings", zap.Error(err))
		return current
	}

	next := effect.Mount(win, func() bool { return true }, dev, st, *settings, log)
	if next.Variant == effect.Static {
		log.Error("remount failed, keeping current effect", zap.String("effect", st.Name))
		return current
	}
	current.Dispose()
	log.Info("effect remounted", zap.String("effect", st.Name))
	return next
}
