package main

import (
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/daemon"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run batches on a recurring schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, pipeline, err := buildPipeline(cmd)
		if err != nil {
			return err
		}
		defer closeStore(cmd, st)

		interval, _ := cmd.Flags().GetDuration("interval")
		d, err := daemon.New(pipeline, interval)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		slog.Info("starting publish daemon", "interval", interval)
		return d.Run(ctx)
	},
}

func init() {
	addBatchFlags(daemonCmd)
	daemonCmd.Flags().Duration("interval", 30*time.Minute, "time between batch runs")
	rootCmd.AddCommand(daemonCmd)
}
