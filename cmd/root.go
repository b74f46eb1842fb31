package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwesthelle/sinking-real-estate/internal/config"
	"github.com/mwesthelle/sinking-real-estate/internal/store"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sinking-real-estate",
	Short: "Porto Alegre real-estate listings vs flood zones",
	Long:  "Scrapes Zap Imóveis listings for Porto Alegre neighborhoods and flags each one that falls inside a simulated flood polygon.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// openStore opens the configured SQLite store and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
