package cdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomesh2d/triangulate/algorithm/robust"
	"github.com/gomesh2d/triangulate/types"
)

func TestBuildCavityBoundaryIsStarShaped(t *testing.T) {
	pts := squarePoints()
	ts, _, err := SeedTriangulation(pts, 0.5)
	require.NoError(t, err)

	locator := NewLocator(ts)
	for i := range pts {
		loc, err := locator.LocatePoint(ts.V[i])
		require.NoError(t, err)
		_, toLegalize, err := InsertPoint(ts, loc, i)
		require.NoError(t, err)
		LegalizeAround(ts, toLegalize, nil)
	}

	center := types.Point{X: 5, Y: 5}
	loc, err := locator.LocatePoint(center)
	require.NoError(t, err)

	cav, err := BuildCavity(ts, center, loc.T)
	require.NoError(t, err)
	require.NotEmpty(t, cav.Boundary)

	for _, be := range cav.Boundary {
		orient := robust.Orient2D(ts.V[be.U], ts.V[be.W], center)
		assert.Greater(t, orient, 0, "boundary edge (%d,%d) is not seen under positive orientation from the inserted point", be.U, be.W)
	}
}

func TestBuildCavityBoundaryFormsClosedLoop(t *testing.T) {
	pts := squarePoints()
	ts, _, err := SeedTriangulation(pts, 0.5)
	require.NoError(t, err)

	locator := NewLocator(ts)
	for i := range pts {
		loc, err := locator.LocatePoint(ts.V[i])
		require.NoError(t, err)
		_, toLegalize, err := InsertPoint(ts, loc, i)
		require.NoError(t, err)
		LegalizeAround(ts, toLegalize, nil)
	}

	center := types.Point{X: 5, Y: 5}
	loc, err := locator.LocatePoint(center)
	require.NoError(t, err)

	cav, err := BuildCavity(ts, center, loc.T)
	require.NoError(t, err)

	starts := make(map[int]int)
	ends := make(map[int]int)
	for _, be := range cav.Boundary {
		starts[be.U]++
		ends[be.W]++
	}
	for v, c := range starts {
		assert.Equal(t, 1, c, "vertex %d starts more than one boundary edge", v)
	}
	for v, c := range ends {
		assert.Equal(t, 1, c, "vertex %d ends more than one boundary edge", v)
	}
}

func TestRetriangulateCavityPreservesTriangleCountDelta(t *testing.T) {
	pts := squarePoints()
	ts, coverVerts, err := SeedTriangulation(pts, 0.5)
	require.NoError(t, err)
	_ = coverVerts

	locator := NewLocator(ts)
	for i := 0; i < 3; i++ {
		loc, err := locator.LocatePoint(ts.V[i])
		require.NoError(t, err)
		_, toLegalize, err := InsertPoint(ts, loc, i)
		require.NoError(t, err)
		LegalizeAround(ts, toLegalize, nil)
	}

	before := CountTriangles(ts)

	fourth := ts.V[3]
	loc, err := locator.LocatePoint(fourth)
	require.NoError(t, err)

	cav, err := BuildCavity(ts, fourth, loc.T)
	require.NoError(t, err)

	boundaryCount := len(cav.Boundary)
	cavityCount := len(cav.Triangles)

	_, _, err = RetriangulateCavity(ts, cav, 3)
	require.NoError(t, err)

	after := CountTriangles(ts)
	assert.Equal(t, before-cavityCount+boundaryCount, after)
}
