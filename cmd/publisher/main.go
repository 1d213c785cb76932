// Package main is the entry point for the publisher CLI: it rewrites raw
// police news records into publishable articles and exports the static
// artifact tree (article pages, AMP pages, forum aliases, API snapshots,
// RSS seeds, sitemaps).
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jedioldenburger/digestpaper-publisher-website/pkg/config/env"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "publisher",
	Short: "Rewrite police news and export the DigestPaper artifact tree",
	Long: `publisher fetches unprocessed source records from the configured store,
rewrites them into publishable Dutch news articles, and writes the full
static artifact set per article: the canonical page, the AMP variant, the
forum alias, the JSON API snapshot, and the RSS seed, plus the aggregated
sitemaps.

Run one batch with "run", serve the emitted tree with "serve", or keep a
recurring schedule going with "daemon".`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := env.LoadDotEnv(os.Getenv("APP_ENV"), ".env"); err != nil {
			slog.Warn("no .env loaded, relying on process environment", "error", err)
		}
		return nil
	},
}

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
