package main

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwesthelle/sinking-real-estate/internal/floodmap"
	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
)

var floodCmd = &cobra.Command{
	Use:   "flood",
	Short: "Flood-zone extraction and containment analysis",
}

// loadZones reads flood polygons from the configured source, routing
// on file extension: .shp goes through the shapefile reader, anything
// else is treated as KML.
func loadZones(path, folder string) ([]geometry.Polygon, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return floodmap.ReadShapefile(path)
	}
	return floodmap.ExtractPolygons(path, folder)
}

func init() {
	floodCmd.PersistentFlags().String("zones", "", "path to the flood-zone KML or shapefile (defaults to config)")
	floodCmd.PersistentFlags().String("folder", "", "KML folder name holding the zones (defaults to config)")
	rootCmd.AddCommand(floodCmd)
}

// zonesSource resolves the zone path and folder from flags and config.
func zonesSource(cmd *cobra.Command) (string, string) {
	path, _ := cmd.Flags().GetString("zones")
	if path == "" {
		path = cfg.Flood.ZonesPath
	}
	folder, _ := cmd.Flags().GetString("folder")
	if folder == "" {
		folder = cfg.Flood.Folder
	}
	return path, folder
}
