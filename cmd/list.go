package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"go-linngrid/scale"
	"go-linngrid/stepseq"
)

var scalesCmd = &cobra.Command{
	Use:   "scales",
	Short: "List the scale names the pitch display understands",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range scale.Names() {
			iv, _ := scale.Lookup(name)
			steps := make([]string, len(iv))
			for i, v := range iv {
				steps[i] = scale.PitchClassName(v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %s\n", name, strings.Join(steps, " "))
		}
	},
}

var kitsCmd = &cobra.Command{
	Use:   "kits",
	Short: "List the drum kits and their pad notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range stepseq.KitNames() {
			kit := stepseq.GetKit(name)
			notes := make([]string, 0, stepseq.NumPads)
			for pad := 0; pad < stepseq.NumPads; pad++ {
				if n, ok := kit.Note(pad); ok {
					notes = append(notes, fmt.Sprint(n))
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %-6s %s\n", name, strings.Join(notes, " "))
		}
	},
}

var writeConfig bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective config, or write it with --write",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if writeConfig {
			if err := cfg.Save(configPath); err != nil {
				return err
			}
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().BoolVarP(&writeConfig, "write", "w", false, "save the effective config to the config path")
	rootCmd.AddCommand(scalesCmd, kitsCmd, configCmd)
}
