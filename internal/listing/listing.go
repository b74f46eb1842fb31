// Package listing defines the scraped property record and the tabular
// helpers used when exporting flat datasets.
package listing

import "time"

// Listing is one property advertisement scraped from the portal.
//
// Two coordinate pairs may be present: the exact pair from the
// listing's geolocation (when the portal discloses it) and the
// approximate display pair. Either may be absent; absence is a nil
// pointer, never a zero coordinate.
type Listing struct {
	ID            string
	Neighborhood  string
	Title         string
	Price         int64
	UsableArea    int64
	Bedrooms      int
	Bathrooms     int
	ParkingSpaces int
	Amenities     []string
	Lat           *float64
	Lon           *float64
	ApproxLat     *float64
	ApproxLon     *float64
	ScrapedAt     time.Time

	// Flooded is set after a flood evaluation run; nil means not yet
	// evaluated.
	Flooded *bool
}
