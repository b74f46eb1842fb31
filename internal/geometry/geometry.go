// Package geometry implements the planar point-in-polygon test used to
// match listings against flood zones. Longitude/latitude pairs are
// treated as Cartesian coordinates; at neighborhood scale the error is
// far below the precision of the listing coordinates themselves.
package geometry

import "math"

// Numeric policy for the ray-casting test. epsilon nudges a point whose
// y coincides with an edge endpoint, tiny is the effectively-zero
// threshold for vertical edges, and infinity stands in for the
// undefined slope of a vertical edge.
const (
	epsilon  = 1e-5
	tiny     = math.SmallestNonzeroFloat64
	infinity = math.MaxFloat64
)

// Point is a coordinate pair. X is longitude, Y is latitude.
type Point struct {
	X float64
	Y float64
}

// Edge is one directed segment of a polygon boundary.
type Edge struct {
	Start Point
	End   Point
}

// Polygon is a closed ring of edges: each edge ends where the next
// begins, and the final edge wraps back to the first edge's start.
type Polygon struct {
	Name  string
	Edges []Edge
}

// FromPoints builds a closed Polygon from an ordered vertex list,
// wrapping the final vertex back to the first. An empty vertex list
// yields a zero-edge polygon; extractors must skip those.
func FromPoints(name string, points []Point) Polygon {
	edges := make([]Edge, 0, len(points))
	for i := range points {
		edges = append(edges, Edge{Start: points[i], End: points[(i+1)%len(points)]})
	}
	return Polygon{Name: name, Edges: edges}
}

// BoundedPolygon is a Polygon with its precomputed bounding box. Min
// and Max are tight: no vertex lies outside [Min, Max]. Values are
// immutable once built and safe for concurrent reads.
type BoundedPolygon struct {
	Polygon
	Min Point
	Max Point
}

// Bound computes the component-wise min/max corners over all vertices
// referenced by the polygon's edges. Pure, O(edges).
func Bound(p Polygon) BoundedPolygon {
	b := BoundedPolygon{Polygon: p}
	if len(p.Edges) == 0 {
		return b
	}
	b.Min = p.Edges[0].Start
	b.Max = p.Edges[0].Start
	for _, e := range p.Edges {
		for _, v := range [2]Point{e.Start, e.End} {
			b.Min.X = math.Min(b.Min.X, v.X)
			b.Min.Y = math.Min(b.Min.Y, v.Y)
			b.Max.X = math.Max(b.Max.X, v.X)
			b.Max.Y = math.Max(b.Max.Y, v.Y)
		}
	}
	return b
}

// BoundAll boxes each polygon once, preserving order. Box a polygon set
// once per containment run and reuse it for every point tested.
func BoundAll(polys []Polygon) []BoundedPolygon {
	bounded := make([]BoundedPolygon, len(polys))
	for i, p := range polys {
		bounded[i] = Bound(p)
	}
	return bounded
}

// Contains reports whether p lies inside the polygon. The bounding box
// is consulted first: a point outside the box is rejected without
// inspecting any edge. Inside the box, a horizontal ray is cast from p
// toward +x and p is inside iff the ray crosses an odd number of edges.
func (b BoundedPolygon) Contains(p Point) bool {
	if p.X < b.Min.X || p.X > b.Max.X || p.Y < b.Min.Y || p.Y > b.Max.Y {
		return false
	}
	crossings := 0
	for _, e := range b.Edges {
		if rayIntersectsSegment(p, e) {
			crossings++
		}
	}
	return crossings%2 == 1
}

// rayIntersectsSegment reports whether a horizontal ray cast from p
// toward +x crosses the segment. A point whose y exactly equals an
// endpoint's y is nudged up by epsilon so a ray passing through a
// vertex is not counted against both incident edges.
func rayIntersectsSegment(p Point, e Edge) bool {
	start, end := e.Start, e.End
	if start.Y > end.Y {
		start, end = end, start
	}

	if p.Y == start.Y || p.Y == end.Y {
		p.Y += epsilon
	}

	if p.Y > end.Y || p.Y < start.Y || p.X > math.Max(start.X, end.X) {
		return false
	}
	if p.X < math.Min(start.X, end.X) {
		return true
	}

	slopeEdge := infinity
	if math.Abs(start.X-end.X) > tiny {
		slopeEdge = (end.Y - start.Y) / (end.X - start.X)
	}
	slopePoint := infinity
	if math.Abs(start.X-p.X) > tiny {
		slopePoint = (p.Y - start.Y) / (p.X - start.X)
	}
	return slopePoint >= slopeEdge
}
