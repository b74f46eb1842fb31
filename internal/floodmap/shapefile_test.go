package floodmap

import (
	"path/filepath"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwesthelle/sinking-real-estate/internal/geometry"
)

func writeShapefile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.shp")

	w, err := shp.Create(path, shp.POLYGON)
	require.NoError(t, err)

	require.NoError(t, w.SetFields([]shp.Field{shp.StringField("NAME", 25)}))

	poly := &shp.Polygon{
		Box:       shp.Box{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2},
		NumParts:  1,
		NumPoints: 5,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 0},
		},
	}
	row := w.Write(poly)
	require.NoError(t, w.WriteAttribute(int(row), 0, "zona sul"))
	w.Close()

	return path
}

func TestReadShapefile(t *testing.T) {
	path := writeShapefile(t)

	polys, err := ReadShapefile(path)
	require.NoError(t, err)
	require.Len(t, polys, 1)

	assert.Equal(t, "zona sul", polys[0].Name)
	assert.Len(t, polys[0].Edges, 5)

	b := geometry.Bound(polys[0])
	assert.Equal(t, geometry.Point{X: 0, Y: 0}, b.Min)
	assert.Equal(t, geometry.Point{X: 2, Y: 2}, b.Max)
}

func TestReadShapefileMissing(t *testing.T) {
	_, err := ReadShapefile(filepath.Join(t.TempDir(), "nope.shp"))
	require.Error(t, err)
}
