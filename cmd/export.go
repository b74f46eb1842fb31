package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mwesthelle/sinking-real-estate/internal/export"
	"github.com/mwesthelle/sinking-real-estate/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export zones and listings for mapping and analysis",
}

var exportZonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Write the flood zones as GeoJSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("zones")
		if path == "" {
			path = cfg.Flood.ZonesPath
		}
		folder, _ := cmd.Flags().GetString("folder")
		if folder == "" {
			folder = cfg.Flood.Folder
		}
		out, _ := cmd.Flags().GetString("out")

		zones, err := loadZones(path, folder)
		if err != nil {
			return eris.Wrap(err, "export zones")
		}
		fc := export.ZonesFeatureCollection(zones)
		if err := export.WriteGeoJSON(fc, out); err != nil {
			return err
		}
		fmt.Printf("Wrote %d zones to %s\n", len(fc.Features), out)
		return nil
	},
}

var exportListingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Write stored listings as GeoJSON or CSV",
	Long:  "Exports the stored listings with their flood flags. The output format follows the file extension: .csv gets a flat one-hot table, anything else GeoJSON.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out, _ := cmd.Flags().GetString("out")
		neighborhood, _ := cmd.Flags().GetString("neighborhood")

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		listings, err := st.ListListings(ctx, store.Filter{Neighborhood: neighborhood})
		if err != nil {
			return eris.Wrap(err, "export listings")
		}

		if strings.EqualFold(filepath.Ext(out), ".csv") {
			f, err := os.Create(out)
			if err != nil {
				return eris.Wrapf(err, "export listings: create %s", out)
			}
			defer f.Close() //nolint:errcheck
			if err := export.WriteCSV(f, listings); err != nil {
				return err
			}
		} else {
			fc := export.ListingsFeatureCollection(listings)
			if err := export.WriteGeoJSON(fc, out); err != nil {
				return err
			}
		}

		fmt.Printf("Wrote %d listings to %s\n", len(listings), out)
		return nil
	},
}

func init() {
	exportZonesCmd.Flags().String("zones", "", "path to the flood-zone KML or shapefile (defaults to config)")
	exportZonesCmd.Flags().String("folder", "", "KML folder name holding the zones (defaults to config)")
	exportZonesCmd.Flags().String("out", "zones.geojson", "output file")

	exportListingsCmd.Flags().String("out", "listings.geojson", "output file (.geojson or .csv)")
	exportListingsCmd.Flags().String("neighborhood", "", "restrict to one neighborhood")

	exportCmd.AddCommand(exportZonesCmd)
	exportCmd.AddCommand(exportListingsCmd)
	rootCmd.AddCommand(exportCmd)
}
