package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unitSquare() Polygon {
	return FromPoints("unit", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
}

func TestFromPointsClosesRing(t *testing.T) {
	p := unitSquare()
	require.Len(t, p.Edges, 4)

	for i, e := range p.Edges {
		next := p.Edges[(i+1)%len(p.Edges)]
		assert.Equal(t, e.End, next.Start)
	}
	assert.Equal(t, p.Edges[len(p.Edges)-1].End, p.Edges[0].Start)
}

func TestFromPointsEmpty(t *testing.T) {
	p := FromPoints("empty", nil)
	assert.Empty(t, p.Edges)
}

func TestBoundTight(t *testing.T) {
	tri := FromPoints("tri", []Point{{-3, 1}, {2, 7}, {0, -4}})
	b := Bound(tri)

	assert.Equal(t, Point{X: -3, Y: -4}, b.Min)
	assert.Equal(t, Point{X: 2, Y: 7}, b.Max)
}

func TestBoundDuplicateClosingVertex(t *testing.T) {
	// KML rings repeat the first vertex as the last; the box must not care.
	p := FromPoints("ring", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}})
	b := Bound(p)

	assert.Equal(t, Point{X: 0, Y: 0}, b.Min)
	assert.Equal(t, Point{X: 1, Y: 1}, b.Max)
}

func TestBoundAllPreservesOrder(t *testing.T) {
	polys := []Polygon{
		FromPoints("a", []Point{{0, 0}, {1, 0}, {1, 1}}),
		FromPoints("b", []Point{{5, 5}, {6, 5}, {6, 6}}),
	}
	bounded := BoundAll(polys)

	require.Len(t, bounded, 2)
	assert.Equal(t, "a", bounded[0].Name)
	assert.Equal(t, "b", bounded[1].Name)
	assert.Equal(t, Point{X: 5, Y: 5}, bounded[1].Min)
}

func TestContainsUnitSquare(t *testing.T) {
	square := Bound(unitSquare())

	tests := []struct {
		name     string
		point    Point
		expected bool
	}{
		{name: "center", point: Point{0.5, 0.5}, expected: true},
		{name: "far outside", point: Point{2, 2}, expected: false},
		{name: "outside left", point: Point{-0.5, 0.5}, expected: false},
		{name: "near corner inside", point: Point{0.01, 0.01}, expected: true},
		// Boundary behavior is pinned, not redesigned: the epsilon nudge
		// and the >= slope comparison make the right and bottom edges
		// count as inside while the left and top edges fall outside.
		{name: "on right edge", point: Point{1, 0.5}, expected: true},
		{name: "on left edge", point: Point{0, 0.5}, expected: false},
		{name: "on bottom edge", point: Point{0.5, 0}, expected: true},
		{name: "on top edge", point: Point{0.5, 1}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, square.Contains(tt.point))
		})
	}
}

func TestContainsParityIndependentOfWinding(t *testing.T) {
	ccw := Bound(FromPoints("ccw", []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}))
	cw := Bound(FromPoints("cw", []Point{{0, 0}, {0, 1}, {1, 1}, {1, 0}}))

	points := []Point{
		{0.5, 0.5},
		{0.1, 0.9},
		{2, 2},
		{-1, 0.5},
		{0.5, -0.3},
	}
	for _, p := range points {
		assert.Equal(t, ccw.Contains(p), cw.Contains(p), "point %+v", p)
	}
}

func TestContainsConcave(t *testing.T) {
	// U-shaped polygon with a notch between x=1 and x=3 above y=1.
	u := Bound(FromPoints("u", []Point{
		{0, 0}, {4, 0}, {4, 4}, {3, 4}, {3, 1}, {1, 1}, {1, 4}, {0, 4},
	}))

	assert.False(t, u.Contains(Point{2, 2}), "point in the notch")
	assert.True(t, u.Contains(Point{0.5, 2}), "point in the left arm")
	assert.True(t, u.Contains(Point{3.5, 2}), "point in the right arm")
	assert.True(t, u.Contains(Point{2, 0.5}), "point in the base")
}

func TestContainsBBoxRejection(t *testing.T) {
	// A deliberately shrunken box around a real square: a point that the
	// edges would classify as inside must be rejected by the box alone,
	// proving the box is consulted before any edge.
	square := unitSquare()
	shrunken := BoundedPolygon{
		Polygon: square,
		Min:     Point{0.4, 0.4},
		Max:     Point{0.6, 0.6},
	}

	assert.False(t, shrunken.Contains(Point{0.2, 0.2}))
	assert.True(t, shrunken.Contains(Point{0.5, 0.5}))
}

func TestRayIntersectsSegment(t *testing.T) {
	tests := []struct {
		name     string
		point    Point
		edge     Edge
		expected bool
	}{
		{
			name:     "ray crosses edge to the right",
			point:    Point{0, 0.5},
			edge:     Edge{Start: Point{1, 0}, End: Point{1, 1}},
			expected: true,
		},
		{
			name:     "edge entirely left of point",
			point:    Point{2, 0.5},
			edge:     Edge{Start: Point{1, 0}, End: Point{1, 1}},
			expected: false,
		},
		{
			name:     "point above edge span",
			point:    Point{0, 2},
			edge:     Edge{Start: Point{1, 0}, End: Point{1, 1}},
			expected: false,
		},
		{
			name:     "point below edge span",
			point:    Point{0, -1},
			edge:     Edge{Start: Point{1, 0}, End: Point{1, 1}},
			expected: false,
		},
		{
			name:     "edge direction does not matter",
			point:    Point{0, 0.5},
			edge:     Edge{Start: Point{1, 1}, End: Point{1, 0}},
			expected: true,
		},
		{
			name:     "nudge skips horizontal edge at point height",
			point:    Point{0, 1},
			edge:     Edge{Start: Point{1, 1}, End: Point{2, 1}},
			expected: false,
		},
		{
			name:     "diagonal edge crossed",
			point:    Point{0, 0.5},
			edge:     Edge{Start: Point{0.25, 0}, End: Point{1, 1}},
			expected: true,
		},
		{
			name:     "diagonal edge missed",
			point:    Point{0.9, 0.1},
			edge:     Edge{Start: Point{0, 0}, End: Point{1, 1}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rayIntersectsSegment(tt.point, tt.edge))
		})
	}
}
