package flood

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

func ptr(v float64) *float64 { return &v }

// testZones is a single unit-square zone.
func testZones() []geometry.Polygon {
	return []geometry.Polygon{
		geometry.FromPoints("square", []geometry.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}),
	}
}

func TestResolvePoint(t *testing.T) {
	tests := []struct {
		name     string
		l        listing.Listing
		expected geometry.Point
		ok       bool
	}{
		{
			name:     "exact pair wins",
			l:        listing.Listing{Lat: ptr(1), Lon: ptr(2), ApproxLat: ptr(3), ApproxLon: ptr(4)},
			expected: geometry.Point{X: 2, Y: 1},
			ok:       true,
		},
		{
			name:     "approximate fallback",
			l:        listing.Listing{ApproxLat: ptr(3), ApproxLon: ptr(4)},
			expected: geometry.Point{X: 4, Y: 3},
			ok:       true,
		},
		{
			name:     "half an exact pair is not enough",
			l:        listing.Listing{Lat: ptr(1), ApproxLat: ptr(3), ApproxLon: ptr(4)},
			expected: geometry.Point{X: 4, Y: 3},
			ok:       true,
		},
		{
			name: "nothing resolvable",
			l:    listing.Listing{Lat: ptr(1), ApproxLon: ptr(4)},
			ok:   false,
		},
		{
			name: "no coordinates at all",
			l:    listing.Listing{},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := ResolvePoint(tt.l)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, p)
			}
		})
	}
}

func TestEvaluateAllPolicy(t *testing.T) {
	e := NewEvaluator(testZones(), 4)

	listings := []listing.Listing{
		{ID: "inside-exact", Lat: ptr(0.5), Lon: ptr(0.5)},
		{ID: "outside-exact", Lat: ptr(5), Lon: ptr(5)},
		{ID: "inside-approx", ApproxLat: ptr(0.5), ApproxLon: ptr(0.5)},
		{ID: "exact-beats-approx", Lat: ptr(5), Lon: ptr(5), ApproxLat: ptr(0.5), ApproxLon: ptr(0.5)},
		{ID: "indeterminate"},
	}

	flags := e.EvaluateAll(context.Background(), listings)
	require.Len(t, flags, len(listings))

	assert.True(t, flags[0])
	assert.False(t, flags[1])
	assert.True(t, flags[2])
	assert.False(t, flags[3], "exact pair is used even when approx would match")
	assert.False(t, flags[4], "unresolvable listings are not flooded")
}

func TestEvaluateAllOrderPreserved(t *testing.T) {
	e := NewEvaluator(testZones(), 8)

	// Alternate inside/outside so any misordering flips a flag.
	var listings []listing.Listing
	for i := 0; i < 200; i++ {
		if i%2 == 0 {
			listings = append(listings, listing.Listing{Lat: ptr(0.5), Lon: ptr(0.5)})
		} else {
			listings = append(listings, listing.Listing{Lat: ptr(9), Lon: ptr(9)})
		}
	}

	flags := e.EvaluateAll(context.Background(), listings)
	require.Len(t, flags, 200)
	for i, f := range flags {
		assert.Equal(t, i%2 == 0, f, "index %d", i)
	}
}

func TestEvaluateAllSequentialMatchesParallel(t *testing.T) {
	listings := []listing.Listing{
		{Lat: ptr(0.25), Lon: ptr(0.25)},
		{Lat: ptr(-0.25), Lon: ptr(0.25)},
		{ApproxLat: ptr(0.75), ApproxLon: ptr(0.75)},
		{},
	}

	sequential := NewEvaluator(testZones(), 1).EvaluateAll(context.Background(), listings)
	parallel := NewEvaluator(testZones(), 16).EvaluateAll(context.Background(), listings)
	assert.Equal(t, sequential, parallel)
}

func TestInAnyZoneMultipleZones(t *testing.T) {
	zones := append(testZones(),
		geometry.FromPoints("far", []geometry.Point{{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 11}, {X: 10, Y: 11}}),
	)
	e := NewEvaluator(zones, 1)

	assert.True(t, e.InAnyZone(geometry.Point{X: 10.5, Y: 10.5}))
	assert.True(t, e.InAnyZone(geometry.Point{X: 0.5, Y: 0.5}))
	assert.False(t, e.InAnyZone(geometry.Point{X: 5, Y: 5}))
	assert.Equal(t, 2, e.ZoneCount())
}

func TestEvaluateAllEmpty(t *testing.T) {
	e := NewEvaluator(nil, 0)
	flags := e.EvaluateAll(context.Background(), nil)
	assert.Empty(t, flags)
}
