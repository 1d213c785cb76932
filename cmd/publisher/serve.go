package main

import (
	"github.com/spf13/cobra"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the emitted artifact tree for local preview",
	Long: `Serve hosts the output root over HTTP so the emitted pages can be checked
before deployment. /healthz reports liveness and /metrics exposes the batch
counters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := server.LoadConfig()
		if err != nil {
			return err
		}
		if root, _ := cmd.Flags().GetString("output-base"); root != "" {
			cfg.OutputRoot = root
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.Port = port
		}
		return server.NewServer(cfg).Start()
	},
}

func init() {
	serveCmd.Flags().String("port", "", "listen port, overrides PREVIEW_PORT")
	serveCmd.Flags().String("output-base", "", "artifact tree to serve, overrides OUTPUT_BASE")
	rootCmd.AddCommand(serveCmd)
}
