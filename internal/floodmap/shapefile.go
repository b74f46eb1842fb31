package floodmap

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
)

// ReadShapefile loads polygon rings from an ESRI shapefile. Each part
// of each polygon record becomes one closed ring. The NAME attribute
// names the ring when present; otherwise the record index does.
func ReadShapefile(path string) ([]geometry.Polygon, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "floodmap: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := fieldIndex(reader, "NAME")

	var polys []geometry.Polygon
	for reader.Next() {
		num, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok || len(poly.Points) == 0 || poly.NumParts == 0 {
			continue
		}

		name := fmt.Sprintf("zone-%d", num)
		if nameIdx >= 0 {
			if attr := strings.TrimSpace(reader.Attribute(nameIdx)); attr != "" {
				name = attr
			}
		}

		for i := int32(0); i < poly.NumParts; i++ {
			start := poly.Parts[i]
			end := int32(len(poly.Points))
			if i+1 < poly.NumParts {
				end = poly.Parts[i+1]
			}

			points := make([]geometry.Point, 0, end-start)
			for j := start; j < end; j++ {
				points = append(points, geometry.Point{X: poly.Points[j].X, Y: poly.Points[j].Y})
			}
			if len(points) == 0 {
				continue
			}

			ringName := name
			if poly.NumParts > 1 {
				ringName = fmt.Sprintf("%s/%d", name, i)
			}
			polys = append(polys, geometry.FromPoints(ringName, points))
		}
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrap(err, "floodmap: read shapefile")
	}

	return polys, nil
}

// fieldIndex returns the index of a named attribute field, or -1.
func fieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		if strings.EqualFold(strings.TrimRight(f.String(), "\x00"), name) {
			return i
		}
	}
	return -1
}
