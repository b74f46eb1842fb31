package main

import (
	"fmt"
	"os/signal"
	"slices"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mwesthelle/sinking-real-estate/internal/scraper"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape listings into the local store",
	Long:  "Pages through the Zap Imóveis glue API for each configured neighborhood and upserts the results into SQLite.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		names, _ := cmd.Flags().GetStringSlice("neighborhood")
		neighborhoods := scraper.DefaultNeighborhoods()
		if len(names) > 0 {
			neighborhoods = slices.DeleteFunc(neighborhoods, func(n scraper.Neighborhood) bool {
				return !slices.Contains(names, n.Name)
			})
		}
		if len(neighborhoods) == 0 {
			return eris.Errorf("scrape: no neighborhood matches %v", names)
		}

		client := scraper.NewClient(scraper.Options{
			BaseURL:           cfg.Scrape.BaseURL,
			UserAgent:         cfg.Scrape.UserAgent,
			Timeout:           time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
			MaxRetries:        cfg.Scrape.MaxRetries,
			RequestsPerSecond: cfg.Scrape.RequestsPerSecond,
			PageDelay:         time.Duration(cfg.Scrape.PageDelaySecs) * time.Second,
			MaxPages:          cfg.Scrape.MaxPages,
		})

		var total, failed atomic.Int64

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Scrape.Concurrency)

		for _, n := range neighborhoods {
			n := n
			g.Go(func() error {
				listings, err := client.FetchAll(gctx, n)
				if err != nil {
					zap.L().Error("scrape failed",
						zap.String("neighborhood", n.Name),
						zap.Error(err),
					)
					failed.Add(1)
					return nil // don't abort other neighborhoods
				}
				written, err := st.UpsertListings(gctx, listings)
				if err != nil {
					return eris.Wrapf(err, "scrape: store %s", n.Name)
				}
				total.Add(int64(written))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		fmt.Printf("Scraped %d listings (%d neighborhoods failed)\n", total.Load(), failed.Load())
		return nil
	},
}

func init() {
	scrapeCmd.Flags().StringSlice("neighborhood", nil, "restrict to specific neighborhoods")
	rootCmd.AddCommand(scrapeCmd)
}
