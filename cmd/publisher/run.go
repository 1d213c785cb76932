package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jedioldenburger/digestpaper-publisher-website/internal/batch"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/config"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/emit"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/metrics"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/render"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/rewrite"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/sitemap"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store"
	"github.com/jedioldenburger/digestpaper-publisher-website/internal/store/factory"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one batch: rewrite unprocessed records and emit artifacts",
	Long: `Run fetches unprocessed source records from the configured store, rewrites
each one, persists the published payload, and writes the per-article artifact
set under the output root. Without an OPENAI_API_KEY the rewriter falls back
to deterministic derivations, so the pipeline stays usable offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, pipeline, err := buildPipeline(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(cmd.Context()); err != nil {
				slog.Warn("closing store", "error", err)
			}
		}()

		report, err := pipeline.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("attempted=%d succeeded=%d failed=%d skipped=%d artifacts=%d\n",
			report.Attempted, report.Succeeded, report.Failed, report.Skipped, report.Artifacts)
		if report.Failed > 0 {
			return fmt.Errorf("%d of %d records failed", report.Failed, report.Attempted)
		}
		return nil
	},
}

func init() {
	addBatchFlags(runCmd)
	rootCmd.AddCommand(runCmd)
}

func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", 0, "max records to process, 0 means all")
	cmd.Flags().Duration("sleep", 2*time.Second, "pause between records")
	cmd.Flags().String("style", string(rewrite.StyleNormal), "rewrite style (Technical, Normal, Easy, Populair, News Reader)")
	cmd.Flags().String("language", string(rewrite.LanguageDutch), "rewrite language (Dutch, English, German)")
	cmd.Flags().Bool("dry-run", false, "rewrite and validate but write nothing")
	cmd.Flags().String("output-base", "public", "root directory for emitted artifacts")
	cmd.Flags().Bool("write-sitemaps", true, "regenerate sitemaps after the batch")
	cmd.Flags().String("site-config", "", "YAML site config, defaults apply when empty")
}

// buildPipeline wires the store, rewriter, renderer, emitter, and sitemap
// aggregator from flags and environment. The caller closes the store.
func buildPipeline(cmd *cobra.Command) (store.Store, *batch.Pipeline, error) {
	flags := cmd.Flags()

	site := config.DefaultSite()
	if path, _ := flags.GetString("site-config"); path != "" {
		var err error
		site, err = config.LoadSite(path)
		if err != nil {
			return nil, nil, err
		}
	}

	storeCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, nil, err
	}
	st, err := factory.NewStore(cmd.Context(), storeCfg)
	if err != nil {
		return nil, nil, err
	}

	style, _ := flags.GetString("style")
	language, _ := flags.GetString("language")
	client := rewrite.NewClientFromEnv()
	if client == nil {
		slog.Warn("OPENAI_API_KEY not set, using deterministic fallbacks")
	}
	rewriter := rewrite.NewRewriter(client, site,
		rewrite.WithStyle(rewrite.Style(style)),
		rewrite.WithLanguage(rewrite.Language(language)),
	)

	renderer, err := render.NewRenderer(site)
	if err != nil {
		closeStore(cmd, st)
		return nil, nil, err
	}

	outputBase, _ := flags.GetString("output-base")
	limit, _ := flags.GetInt("limit")
	sleep, _ := flags.GetDuration("sleep")
	dryRun, _ := flags.GetBool("dry-run")
	writeSitemaps, _ := flags.GetBool("write-sitemaps")

	pipeline := batch.NewPipeline(
		site,
		st,
		rewriter,
		emit.NewEmitter(outputBase, renderer),
		sitemap.NewAggregator(site),
		metrics.NewRecorder(prometheus.DefaultRegisterer),
		batch.Options{
			Limit:         limit,
			Sleep:         sleep,
			DryRun:        dryRun,
			WriteSitemaps: writeSitemaps,
		},
	)
	return st, pipeline, nil
}

func closeStore(cmd *cobra.Command, st store.Store) {
	if err := st.Close(cmd.Context()); err != nil {
		slog.Warn("closing store", "error", err)
	}
}
