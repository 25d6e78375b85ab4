package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
	"golang.org/x/sync/errgroup"

	"go-linngrid/config"
	"go-linngrid/debug"
	"go-linngrid/host"
	"go-linngrid/midi"
	"go-linngrid/surface"
	"go-linngrid/theme"
	"go-linngrid/tui"
)

var (
	portFlag      string
	synthPortFlag string
	modeFlag      string
	headless      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to the LinnStrument and start the surface",
	Long: `Start the control surface. The controller is picked up whenever it is
plugged in; until then the terminal shows a mirror of the grid that can be
clicked like the real thing.

Example:
  linngrid run --synth-port "IAC Driver" --mode drums
`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&portFlag, "port", "p", "", "controller port name match (overrides config)")
	runCmd.Flags().StringVarP(&synthPortFlag, "synth-port", "s", "", "synth output port name match (overrides config)")
	runCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "initial mode: pitch, clips or drums")
	runCmd.Flags().BoolVar(&headless, "headless", false, "run without the terminal UI until interrupted")
	rootCmd.AddCommand(runCmd)
}

func applyFlags(cfg *config.Config) error {
	if portFlag != "" {
		cfg.Controller.Port = portFlag
	}
	if synthPortFlag != "" {
		cfg.SynthOutput.Port = synthPortFlag
	}
	if modeFlag != "" {
		cfg.UI.Mode = modeFlag
	}
	return cfg.Validate()
}

// openSynth attaches the configured synth port, or returns nil when none is
// configured.
func openSynth(cfg *config.Config) (*midi.Output, error) {
	if cfg.SynthOutput.Port == "" {
		return nil, nil
	}
	port, ok := midi.FindOutPort(cfg.SynthOutput.Port)
	if !ok {
		return nil, errors.Errorf("no output port matching %q", cfg.SynthOutput.Port)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", port)
	}
	out := midi.NewOutput(cfg.SynthChannel())
	out.Attach(send)
	debug.Log("run", "synth output %s channel %d", port, cfg.SynthChannel())
	return out, nil
}

func buildSong(cfg *config.Config, synth *midi.Output) (*host.Song, error) {
	specs, err := cfg.TrackSpecs()
	if err != nil {
		return nil, err
	}
	opts := []host.Option{host.WithTempo(cfg.Session.Tempo)}
	if synth != nil {
		opts = append(opts, host.WithOutput(synth))
	}
	song := host.Build(specs, cfg.Session.Scenes, opts...)
	if err := song.SetScale(cfg.RootPitchClass(), cfg.Session.Scale); err != nil {
		return nil, err
	}
	return song, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}
	th, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return err
	}
	synth, err := openSynth(cfg)
	if err != nil {
		return err
	}
	song, err := buildSong(cfg, synth)
	if err != nil {
		return err
	}

	out := midi.NewOutput(cfg.ControlChannel())
	drv := surface.NewDriver(cfg.Settings(), song, out, cfg.InitialMode())
	dm := midi.NewDeviceManager(cfg.Controller.Port)
	defer dm.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return dm.Run(gctx) })
	g.Go(func() error { return drv.Run(gctx, dm.Events()) })

	if headless {
		fmt.Printf("linngrid: waiting for %q, Ctrl+C to quit\n", cfg.Controller.Port)
	} else {
		p := tea.NewProgram(tui.NewModel(drv, th), tea.WithAltScreen(), tea.WithMouseCellMotion())
		g.Go(func() error {
			defer stop()
			_, err := p.Run()
			return errors.Wrap(err, "terminal ui")
		})
		go func() {
			<-gctx.Done()
			p.Quit()
		}()
	}

	err = g.Wait()
	debug.Log("run", "stopped: %v", err)
	return err
}
