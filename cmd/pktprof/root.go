package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tturner/pktprof/internal/app"
	"github.com/tturner/pktprof/internal/config"
	"github.com/tturner/pktprof/internal/logging"
)

type rootFlags struct {
	compareFile string
	analyze     string
	outputFile  string
	jsonFile    string
	details     bool
	copy        bool
	configFile  string
	progress    bool
	verbose     bool
	debug       bool
	logFile     string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "pktprof <session_file>",
		Short: "Propose recvpackets.txt entries from a captured session log",
		Long: `pktprof reads a JSON session log of captured game packets, groups the
received packets by opcode and proposes recvpackets.txt entries for every
opcode not already listed. Each opcode is classified as FIXED when all of its
packets share one size, or VARIABLE otherwise.

With --analyze the profile is skipped and the first occurrences of one opcode
are printed with a hex dump of their payloads.`,
		Example: `  # Profile a session
  pktprof session.json

  # Skip opcodes already in recvpackets.txt and save the rest
  pktprof session.json -c recvpackets.txt -o suggested.txt -d

  # Dump the payloads of opcode 0C26
  pktprof session.json -a 0C26`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if handleHelpArg(cmd, args) {
				return nil
			}
			if len(args) == 0 {
				return missingArgError(cmd, "<session_file>")
			}
			return runRoot(cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], flags)
		},
	}
	cmd.SetVersionTemplate(versionText())

	cmd.Flags().StringVarP(&flags.compareFile, "compare", "c", "", "Known opcode file (recvpackets.txt) to filter against")
	cmd.Flags().StringVarP(&flags.analyze, "analyze", "a", "", "Inspect one opcode (hex, e.g. 0C26) instead of profiling")
	cmd.Flags().StringVarP(&flags.outputFile, "output", "o", "", "Write suggested entries to this file")
	cmd.Flags().BoolVarP(&flags.details, "details", "d", false, "Show classification and sample sizes for each entry")
	cmd.Flags().StringVar(&flags.jsonFile, "json", "", "Also write the suggestions as a JSON report")
	cmd.Flags().BoolVar(&flags.copy, "copy", false, "Copy suggested entries to the clipboard")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "YAML configuration file")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress bar while scanning packets")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug output")
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write log messages to this file")

	return cmd
}

func runRoot(stdout, stderr io.Writer, sessionFile string, flags *rootFlags) error {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(logLevel(flags), flags.logFile)
	if err != nil {
		return err
	}
	defer logger.Close()
	logger.SetOutput(stdout, stderr)
	if flags.configFile != "" {
		logger.Verbose("Using config %s", flags.configFile)
	}

	if flags.analyze != "" {
		return app.RunInspect(app.InspectOptions{
			SessionFile: sessionFile,
			OpcodeHex:   flags.analyze,
			Config:      cfg,
			Logger:      logger,
			Out:         stdout,
		})
	}

	_, err = app.RunProfile(app.ProfileOptions{
		SessionFile: sessionFile,
		CompareFile: flags.compareFile,
		OutputFile:  flags.outputFile,
		JSONFile:    flags.jsonFile,
		Details:     flags.details,
		Copy:        flags.copy,
		Progress:    flags.progress,
		Config:      cfg,
		Logger:      logger,
		Out:         stdout,
		Version:     version,
		Commit:      commit,
	})
	if err != nil {
		return fmt.Errorf("profile %s: %w", sessionFile, err)
	}
	return nil
}

func logLevel(flags *rootFlags) logging.LogLevel {
	switch {
	case flags.debug:
		return logging.LogLevelDebug
	case flags.verbose:
		return logging.LogLevelVerbose
	default:
		return logging.LogLevelInfo
	}
}
