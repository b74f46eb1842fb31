package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
)

var floodZonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the flood zones found in the configured source",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, folder := zonesSource(cmd)

		zones, err := loadZones(path, folder)
		if err != nil {
			return eris.Wrap(err, "flood zones")
		}
		if len(zones) == 0 {
			fmt.Printf("No zones found in %s\n", path)
			return nil
		}

		for _, z := range geometry.BoundAll(zones) {
			name := z.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("%-40s edges=%-5d bbox=[%.6f,%.6f]..[%.6f,%.6f]\n",
				name, len(z.Edges), z.Min.X, z.Min.Y, z.Max.X, z.Max.Y)
		}
		fmt.Printf("%d zones\n", len(zones))
		return nil
	},
}

func init() {
	floodCmd.AddCommand(floodZonesCmd)
}
