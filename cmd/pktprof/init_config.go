package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tturner/pktprof/internal/config"
)

const defaultConfigPath = "pktprof.yaml"

func newInitConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default configuration file",
		Long: `Write the default pktprof configuration to a YAML file.

If no path is given, pktprof.yaml in the current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			path := defaultConfigPath
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
}
