package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unifylabs/unify/format"
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch directories and rewrite files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		cfg, err := resolveConfig()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}

		w, err := format.NewWatcher(cfg, logger, args...)
		if err != nil {
			logger.Fatal("Failed to create watcher", zap.Error(err))
		}
		if err := w.Start(); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}

		fmt.Printf("Watching %s for changes. Press Ctrl+C to stop.\n", strings.Join(args, ", "))

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
		<-sigChan

		if err := w.Stop(); err != nil {
			logger.Error("Failed to stop watcher", zap.Error(err))
		}
	},
}
