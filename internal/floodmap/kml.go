// Package floodmap extracts flood-zone polygons from KML documents and
// ESRI shapefiles.
package floodmap

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
)

// node is a generic element-tree view of a KML document. encoding/xml
// resolves namespace prefixes into Name.Space, so searches match on the
// local name plus the namespace taken from the root element.
type node struct {
	XMLName  xml.Name
	Children []node `xml:",any"`
	Text     string `xml:",chardata"`
}

// ExtractPolygons reads a KML file and returns the polygons found under
// the named folder. Folders are searched depth-first through arbitrary
// nesting; the first exact name match wins. A missing folder is not an
// error: it is logged and an empty result is returned. An unparseable
// document is fatal.
func ExtractPolygons(path, folderName string) ([]geometry.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "kml: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	root, err := parseDocument(f)
	if err != nil {
		return nil, err
	}

	ns := root.XMLName.Space
	folder := findFolder(root, ns, folderName)
	if folder == nil {
		zap.L().Warn("kml: folder not found",
			zap.String("folder", folderName),
			zap.String("path", path),
		)
		return nil, nil
	}

	var polys []geometry.Polygon
	for _, placemark := range findAll(folder, ns, "Placemark", nil) {
		name := childText(placemark, ns, "name")

		polyElem := findFirst(placemark, ns, "Polygon")
		if polyElem == nil {
			continue
		}
		outer := findFirst(polyElem, ns, "outerBoundaryIs")
		if outer == nil {
			continue
		}
		coords := findFirst(outer, ns, "coordinates")
		if coords == nil {
			continue
		}

		points := parseCoordinates(coords.Text)
		if len(points) == 0 {
			continue
		}
		polys = append(polys, geometry.FromPoints(name, points))
	}

	return polys, nil
}

// parseDocument decodes the full element tree. The charset hook covers
// KML exports that declare a non-UTF-8 encoding.
func parseDocument(r io.Reader) (*node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "kml: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	var root node
	if err := decoder.Decode(&root); err != nil {
		return nil, eris.Wrap(err, "kml: parse document")
	}
	return &root, nil
}

// findFolder walks the tree depth-first and returns the first Folder
// element whose name child equals folderName, or nil.
func findFolder(n *node, ns, folderName string) *node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Space == ns && child.XMLName.Local == "Folder" &&
			childText(child, ns, "name") == folderName {
			return child
		}
		if found := findFolder(child, ns, folderName); found != nil {
			return found
		}
	}
	return nil
}

// findAll collects every descendant with the given name, in document order.
func findAll(n *node, ns, local string, out []*node) []*node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Space == ns && child.XMLName.Local == local {
			out = append(out, child)
		}
		out = findAll(child, ns, local, out)
	}
	return out
}

// findFirst returns the first descendant with the given name, or nil.
func findFirst(n *node, ns, local string) *node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Space == ns && child.XMLName.Local == local {
			return child
		}
		if found := findFirst(child, ns, local); found != nil {
			return found
		}
	}
	return nil
}

// childText returns the character data of a direct child element.
func childText(n *node, ns, local string) string {
	for i := range n.Children {
		child := &n.Children[i]
		if child.XMLName.Space == ns && child.XMLName.Local == local {
			return child.Text
		}
	}
	return ""
}

// parseCoordinates parses a KML coordinate string: whitespace-separated
// tokens of "lon,lat[,alt]". Only the first two components are read.
// Tokens that fail to parse or carry fewer than two components are
// skipped rather than aborting the shape.
func parseCoordinates(text string) []geometry.Point {
	var points []geometry.Point
	for _, token := range strings.Fields(text) {
		parts := strings.Split(token, ",")
		if len(parts) < 2 {
			continue
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			continue
		}
		points = append(points, geometry.Point{X: lon, Y: lat})
	}
	return points
}
