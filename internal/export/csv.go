package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

// WriteCSV writes listings as a flat CSV with the amenities list
// expanded into one boolean column per distinct amenity.
func WriteCSV(w io.Writer, listings []listing.Listing) error {
	vocab, rows := listing.OneHotAmenities(listings)

	header := []string{
		"id", "neighborhood", "price", "usable_area", "bedrooms",
		"bathrooms", "parking_spaces", "lat", "lon", "flooded",
	}
	for _, a := range vocab {
		header = append(header, "amenity_"+a)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	for i, l := range listings {
		record := []string{
			l.ID,
			l.Neighborhood,
			strconv.FormatInt(l.Price, 10),
			strconv.FormatInt(l.UsableArea, 10),
			strconv.Itoa(l.Bedrooms),
			strconv.Itoa(l.Bathrooms),
			strconv.Itoa(l.ParkingSpaces),
			floatField(l.Lat),
			floatField(l.Lon),
			boolField(l.Flooded),
		}
		for _, set := range rows[i] {
			record = append(record, strconv.FormatBool(set))
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "export: write csv row %s", l.ID)
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

func floatField(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func boolField(v *bool) string {
	if v == nil {
		return ""
	}
	return strconv.FormatBool(*v)
}
