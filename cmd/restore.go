package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"

	"go-linngrid/config"
	"go-linngrid/grid"
	"go-linngrid/led"
	"go-linngrid/midi"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Put the LinnStrument back to its factory layout and clear the LEDs",
	Long: `Restore the factory row offset and octave and turn every cell off.
Useful after the surface was killed without a clean shutdown.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		port, ok := midi.FindOutPort(cfg.Controller.Port)
		if !ok {
			return errors.Errorf("no output port matching %q", cfg.Controller.Port)
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return errors.Wrapf(err, "open %s", port)
		}
		out := midi.NewOutput(cfg.ControlChannel())
		out.Attach(send)

		n, err := restore(cfg, out)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "restored %s (%d messages)\n", port, n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}

// restore writes the factory tuning and a forced clear to out.
func restore(cfg *config.Config, out *midi.Output) (uint64, error) {
	before := out.Sent()
	if err := out.WriteNRPN(midi.NRPNRowOffset, cfg.Grid.FactoryRowInterval); err != nil {
		return 0, errors.Wrap(err, "row offset")
	}
	if err := out.WriteNRPN(midi.NRPNOctave, midi.FactoryOctave); err != nil {
		return 0, errors.Wrap(err, "octave")
	}
	leds := led.New(grid.Dims{Cols: cfg.Grid.Cols, Rows: cfg.Grid.Rows}, out)
	leds.ClearAll(nil, true)
	return out.Sent() - before, nil
}
