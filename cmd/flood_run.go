package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwesthelle/sinking-real-estate/internal/flood"
	"github.com/mwesthelle/sinking-real-estate/internal/store"
)

var floodRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Evaluate stored listings against the flood zones",
	Long:  "Loads every stored listing, tests its coordinate against the flood polygons, and writes the flood flag back to the store.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		path, folder := zonesSource(cmd)
		zones, err := loadZones(path, folder)
		if err != nil {
			return eris.Wrap(err, "flood run")
		}
		if len(zones) == 0 {
			return eris.Errorf("flood run: no zones in %s", path)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		neighborhood, _ := cmd.Flags().GetString("neighborhood")
		listings, err := st.ListListings(ctx, store.Filter{Neighborhood: neighborhood})
		if err != nil {
			return eris.Wrap(err, "flood run: load listings")
		}
		if len(listings) == 0 {
			fmt.Println("No listings in store; run scrape first")
			return nil
		}

		zap.L().Info("evaluating listings",
			zap.Int("listings", len(listings)),
			zap.Int("zones", len(zones)),
		)

		evaluator := flood.NewEvaluator(zones, cfg.Flood.Workers)
		flags := evaluator.EvaluateAll(ctx, listings)

		ids := make([]string, len(listings))
		for i, l := range listings {
			ids[i] = l.ID
		}
		if err := st.SetFlooded(ctx, ids, flags); err != nil {
			return eris.Wrap(err, "flood run: persist flags")
		}

		flooded := 0
		for _, f := range flags {
			if f {
				flooded++
			}
		}
		fmt.Printf("Evaluated %d listings against %d zones: %d flooded, %d dry\n",
			len(listings), len(zones), flooded, len(listings)-flooded)
		return nil
	},
}

func init() {
	floodRunCmd.Flags().String("neighborhood", "", "restrict evaluation to one neighborhood")
	floodCmd.AddCommand(floodRunCmd)
}
