package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unifylabs/unify/format"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "unify [paths...]",
	Short:            "unify - normalize quote characters in Python string literals",
	TraverseChildren: true, // Prioritize subcommands
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'unify' is entered
			_ = cmd.Help()
			return
		}
		// Format: unify [path1 path2 ...] => behaves like the fmt subcommand
		fmtCmd.Run(fmtCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to the configuration file (default: "+format.DefaultConfigName+")")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", defaultTimeout, "Set a timeout for the formatter")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}
