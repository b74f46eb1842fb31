// Package export renders flood zones and flagged listings as GeoJSON
// and flat CSV datasets.
package export

import (
	"encoding/json"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"

	"github.com/mwesthelle/sinking-real-estate/internal/flood"
	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

// ZonesFeatureCollection converts flood polygons into a GeoJSON
// FeatureCollection, one Polygon feature per zone.
func ZonesFeatureCollection(zones []geometry.Polygon) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		if len(z.Edges) == 0 {
			continue
		}
		ring := make(orb.Ring, 0, len(z.Edges)+1)
		for _, e := range z.Edges {
			ring = append(ring, orb.Point{e.Start.X, e.Start.Y})
		}
		// GeoJSON rings are explicitly closed.
		ring = append(ring, ring[0])

		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["name"] = z.Name
		fc.Append(f)
	}
	return fc
}

// ListingsFeatureCollection converts listings into a GeoJSON
// FeatureCollection of points. Listings without a resolvable
// coordinate are omitted.
func ListingsFeatureCollection(listings []listing.Listing) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range listings {
		p, ok := flood.ResolvePoint(l)
		if !ok {
			continue
		}
		f := geojson.NewFeature(orb.Point{p.X, p.Y})
		f.Properties["id"] = l.ID
		f.Properties["neighborhood"] = l.Neighborhood
		f.Properties["price"] = l.Price
		if l.Flooded != nil {
			f.Properties["flooded"] = *l.Flooded
		}
		fc.Append(f)
	}
	return fc
}

// WriteGeoJSON marshals a FeatureCollection to a file.
func WriteGeoJSON(fc *geojson.FeatureCollection, path string) error {
	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
