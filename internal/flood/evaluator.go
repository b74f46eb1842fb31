// Package flood evaluates which listings fall inside flood-zone polygons.
package flood

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

const defaultWorkers = 8

// Evaluator tests listings against a fixed set of flood zones. Zones
// are boxed once at construction and shared read-only across all
// evaluations, so a single Evaluator is safe for concurrent use.
type Evaluator struct {
	zones   []geometry.BoundedPolygon
	workers int
}

// NewEvaluator boxes each polygon once. workers bounds the parallel
// fan-out of EvaluateAll; values below 1 fall back to the default, and
// a value of 1 gives sequential evaluation.
func NewEvaluator(zones []geometry.Polygon, workers int) *Evaluator {
	if workers < 1 {
		workers = defaultWorkers
	}
	return &Evaluator{zones: geometry.BoundAll(zones), workers: workers}
}

// ZoneCount returns the number of zones under test.
func (e *Evaluator) ZoneCount() int { return len(e.zones) }

// ResolvePoint returns the test point for a listing: the exact pair
// when both coordinates are present, otherwise the approximate pair.
// The second return is false when neither pair is complete.
func ResolvePoint(l listing.Listing) (geometry.Point, bool) {
	if l.Lat != nil && l.Lon != nil {
		return geometry.Point{X: *l.Lon, Y: *l.Lat}, true
	}
	if l.ApproxLat != nil && l.ApproxLon != nil {
		return geometry.Point{X: *l.ApproxLon, Y: *l.ApproxLat}, true
	}
	return geometry.Point{}, false
}

// InAnyZone reports whether the point lies inside at least one zone,
// short-circuiting on the first match.
func (e *Evaluator) InAnyZone(p geometry.Point) bool {
	for _, z := range e.zones {
		if z.Contains(p) {
			return true
		}
	}
	return false
}

// EvaluateAll tests every listing and returns one flag per listing,
// positionally aligned with the input. A listing without a resolvable
// coordinate is reported as not flooded; that is the policy, not an
// error. Evaluation fans out across a bounded worker group and each
// worker writes its own indexed slot, so completion order never
// reorders the output.
func (e *Evaluator) EvaluateAll(ctx context.Context, listings []listing.Listing) []bool {
	results := make([]bool, len(listings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i := range listings {
		i := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			p, ok := ResolvePoint(listings[i])
			if !ok {
				return nil
			}
			results[i] = e.InAnyZone(p)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	flooded := 0
	for _, r := range results {
		if r {
			flooded++
		}
	}
	zap.L().Info("flood: evaluation complete",
		zap.Int("listings", len(listings)),
		zap.Int("flooded", flooded),
		zap.Int("zones", len(e.zones)),
	)
	return results
}
