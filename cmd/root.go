package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"go-linngrid/config"
	"go-linngrid/debug"
)

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "linngrid",
	Short: "Drive a LinnStrument as a pitch display, clip launcher and drum sequencer",
	Long: `linngrid turns a LinnStrument into a multi-mode grid controller.

The grid switches between three modes: a pitch display that lights the
current scale, a clip launcher for the session, and a 16-step drum
sequencer. Notes that a mode does not use pass through to the synth output.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			return debug.Enable("")
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ~/.config/go-linngrid/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "write a debug log to ~/.config/go-linngrid/debug.log")
}

// loadConfig reads the config named by --config, turning on the debug log
// when the file asks for it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cfg.Debug {
		if err := debug.Enable(""); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	debug.Disable()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
