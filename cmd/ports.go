package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers"

	"go-linngrid/midi"
)

var watchPorts bool

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI ports and which ones the config matches",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if !watchPorts {
			ins, outs, ok := midi.ListPorts(3 * time.Second)
			if !ok {
				return errors.New("port scan timed out; the MIDI service may be hung")
			}
			printPorts(w, ins, outs, cfg.Controller.Port, cfg.SynthOutput.Port)
			return nil
		}

		fmt.Fprintln(w, "Polling for port changes every 2 seconds, Ctrl+C to exit")
		last := ""
		for {
			ins, outs, ok := midi.ListPorts(3 * time.Second)
			if ok {
				if cur := portNames(ins, outs); cur != last {
					fmt.Fprintf(w, "\n[%s] ports changed\n", time.Now().Format("15:04:05"))
					printPorts(w, ins, outs, cfg.Controller.Port, cfg.SynthOutput.Port)
					last = cur
				}
			}
			select {
			case <-cmd.Context().Done():
				return nil
			case <-time.After(2 * time.Second):
			}
		}
	},
}

func init() {
	portsCmd.Flags().BoolVarP(&watchPorts, "watch", "w", false, "keep polling and print changes")
	rootCmd.AddCommand(portsCmd)
}

func portNames(ins []drivers.In, outs []drivers.Out) string {
	var names []string
	for _, p := range ins {
		names = append(names, "in:"+p.String())
	}
	for _, p := range outs {
		names = append(names, "out:"+p.String())
	}
	return strings.Join(names, ",")
}

// portTag marks ports the controller or synth pattern would pick.
func portTag(name, controller, synth string) string {
	name = strings.ToLower(name)
	switch {
	case controller != "" && strings.Contains(name, strings.ToLower(controller)):
		return "  <- controller"
	case synth != "" && strings.Contains(name, strings.ToLower(synth)):
		return "  <- synth"
	}
	return ""
}

func printPorts(w io.Writer, ins []drivers.In, outs []drivers.Out, controller, synth string) {
	fmt.Fprintln(w, "=== MIDI Input Ports ===")
	for i, p := range ins {
		fmt.Fprintf(w, "  %d: %s%s\n", i, p.String(), portTag(p.String(), controller, ""))
	}
	fmt.Fprintln(w, "\n=== MIDI Output Ports ===")
	for i, p := range outs {
		fmt.Fprintf(w, "  %d: %s%s\n", i, p.String(), portTag(p.String(), controller, synth))
	}
}
