package scraper

import (
	"strconv"
	"time"

	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

// searchResponse mirrors the glue-api envelope. A missing search block
// marks an exhausted result set rather than an error.
type searchResponse struct {
	Search *struct {
		Result struct {
			Listings []struct {
				Listing wireListing `json:"listing"`
			} `json:"listings"`
		} `json:"result"`
		TotalCount int `json:"totalCount"`
	} `json:"search"`
}

// wireListing is the portal's listing shape. Numeric attributes arrive
// as arrays of strings or ints; only the first element is meaningful.
type wireListing struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	UsableAreas   []string      `json:"usableAreas"`
	Bedrooms      []int         `json:"bedrooms"`
	Bathrooms     []int         `json:"bathrooms"`
	ParkingSpaces []int         `json:"parkingSpaces"`
	Amenities     []string      `json:"amenities"`
	Address       wireAddress   `json:"address"`
	PricingInfos  []wirePricing `json:"pricingInfos"`
	CreatedAt     string        `json:"createdAt"`
}

type wireAddress struct {
	Neighborhood string     `json:"neighborhood"`
	Point        *wirePoint `json:"point"`
	GeoLocation  *struct {
		Precision string     `json:"precision"`
		Location  *wirePoint `json:"location"`
	} `json:"geoLocation"`
}

type wirePoint struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type wirePricing struct {
	BusinessType string `json:"businessType"`
	Price        string `json:"price"`
}

// toModel converts a wire listing into the domain record. The exact
// coordinate pair comes from the geolocation block; the display point
// becomes the approximate fallback.
func (w wireListing) toModel(neighborhood string) listing.Listing {
	l := listing.Listing{
		ID:            w.ID,
		Neighborhood:  neighborhood,
		Title:         w.Title,
		Amenities:     w.Amenities,
		Bedrooms:      firstInt(w.Bedrooms),
		Bathrooms:     firstInt(w.Bathrooms),
		ParkingSpaces: firstInt(w.ParkingSpaces),
		ScrapedAt:     time.Now().UTC(),
	}

	if n := w.Address.Neighborhood; n != "" {
		l.Neighborhood = n
	}
	if len(w.UsableAreas) > 0 {
		if area, err := strconv.ParseInt(w.UsableAreas[0], 10, 64); err == nil {
			l.UsableArea = area
		}
	}
	for _, p := range w.PricingInfos {
		if p.BusinessType != "SALE" {
			continue
		}
		if price, err := strconv.ParseInt(p.Price, 10, 64); err == nil {
			l.Price = price
			break
		}
	}

	if geo := w.Address.GeoLocation; geo != nil && geo.Location != nil {
		l.Lat, l.Lon = geo.Location.Lat, geo.Location.Lon
	}
	if pt := w.Address.Point; pt != nil {
		l.ApproxLat, l.ApproxLon = pt.Lat, pt.Lon
	}
	return l
}

func firstInt(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	return vals[0]
}
