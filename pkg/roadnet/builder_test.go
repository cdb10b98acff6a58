package roadnet_test

import (
	"testing"

	"github.com/mapandra/roadroute/pkg/datastructure"
	"github.com/mapandra/roadroute/pkg/roadnet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func road(points []datastructure.Coordinate, speed float64, dir datastructure.PathDirection,
	level int, class string) datastructure.RoadFeature {
	return datastructure.RoadFeature{
		Points:    points,
		Speed:     speed,
		Direction: dir,
		Level:     level,
		RoadClass: class,
	}
}

func TestBuildGraphEdgeCosts(t *testing.T) {
	features := []datastructure.RoadFeature{
		road([]datastructure.Coordinate{{X: 0, Y: 0}, {X: 100, Y: 0}}, 50,
			datastructure.DirectionBoth, 0, "ordinary"),
	}

	g, segments := roadnet.BuildGraph(features)

	require.Equal(t, 2, g.NumNodes())
	require.Equal(t, 2, g.NumEdges())
	require.Len(t, segments, 1)

	from, ok := g.GetNode(datastructure.NewNodeID(datastructure.NewCoordinate(0, 0)))
	require.True(t, ok)
	require.Len(t, from.OutEdges, 1)

	e := from.OutEdges[0]
	assert.Equal(t, 100.0, e.Dist)
	assert.Equal(t, 2.0, e.Cost) // 100 / 50
	assert.Greater(t, e.Cost, 0.0)
	assert.Equal(t, e.Cost, e.Dist/50)

	// both directions carry the same cost
	to, ok := g.GetNode(e.To)
	require.True(t, ok)
	require.Len(t, to.OutEdges, 1)
	assert.Equal(t, e.Cost, to.OutEdges[0].Cost)
	assert.Equal(t, from.ID, to.OutEdges[0].To)
}

func TestBuildGraphDirectionality(t *testing.T) {
	a := datastructure.NewCoordinate(0, 0)
	b := datastructure.NewCoordinate(10, 0)

	cases := []struct {
		name      string
		dir       datastructure.PathDirection
		fromEdges int
		toEdges   int
	}{
		{"both", datastructure.DirectionBoth, 1, 1},
		{"forward only", datastructure.DirectionForwardOnly, 1, 0},
		{"backward only", datastructure.DirectionBackwardOnly, 0, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g, _ := roadnet.BuildGraph([]datastructure.RoadFeature{
				road([]datastructure.Coordinate{a, b}, 30, c.dir, 0, "ordinary"),
			})

			fromNode, _ := g.GetNode(datastructure.NewNodeID(a))
			toNode, _ := g.GetNode(datastructure.NewNodeID(b))
			assert.Len(t, fromNode.OutEdges, c.fromEdges)
			assert.Len(t, toNode.OutEdges, c.toEdges)
		})
	}
}

func TestBuildGraphImpassableSpeed(t *testing.T) {
	points := []datastructure.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}

	for _, speed := range []float64{0, -5} {
		g, segments := roadnet.BuildGraph([]datastructure.RoadFeature{
			road(points, speed, datastructure.DirectionBoth, 0, "ordinary"),
		})

		// no edges and no nodes, but the raw segment stays available for
		// snapping
		assert.Equal(t, 0, g.NumEdges())
		assert.Equal(t, 0, g.NumNodes())
		assert.Len(t, segments, 1)
	}
}

func TestBuildGraphExcludedClass(t *testing.T) {
	g, segments := roadnet.BuildGraph([]datastructure.RoadFeature{
		road([]datastructure.Coordinate{{X: 0, Y: 0}, {X: 10, Y: 0}}, 5,
			datastructure.DirectionBoth, 0, "walkway"),
	})

	assert.Equal(t, 0, g.NumEdges())
	assert.Equal(t, 0, g.NumNodes())
	assert.Empty(t, segments)
}

func TestBuildGraphIntersectionCollapse(t *testing.T) {
	// two features meet at (100, 0); coordinates differ before rounding
	features := []datastructure.RoadFeature{
		road([]datastructure.Coordinate{{X: 0, Y: 0}, {X: 100.2, Y: 0.3}}, 40,
			datastructure.DirectionBoth, 0, "ordinary"),
		road([]datastructure.Coordinate{{X: 99.8, Y: -0.1}, {X: 200, Y: 0}}, 40,
			datastructure.DirectionBoth, 0, "ordinary"),
	}

	g, _ := roadnet.BuildGraph(features)

	// (100.2, 0.3) and (99.8, -0.1) both round to (100, 0): one shared node
	require.Equal(t, 3, g.NumNodes())

	mid, ok := g.GetNode(datastructure.NewNodeID(datastructure.NewCoordinate(100, 0)))
	require.True(t, ok)
	assert.Len(t, mid.OutEdges, 2)
	assert.Equal(t, datastructure.NewCoordinate(100, 0), mid.Coord)
}

func TestBuildGraphLevelOnEdges(t *testing.T) {
	shared := datastructure.NewCoordinate(50, 50)
	features := []datastructure.RoadFeature{
		road([]datastructure.Coordinate{{X: 0, Y: 50}, shared}, 40,
			datastructure.DirectionBoth, 0, "ordinary"),
		road([]datastructure.Coordinate{shared, {X: 100, Y: 50}}, 40,
			datastructure.DirectionBoth, 2, "ordinary"),
	}

	g, _ := roadnet.BuildGraph(features)

	// one node, incident edges of two different levels
	mid, ok := g.GetNode(datastructure.NewNodeID(shared))
	require.True(t, ok)
	levels := map[int]int{}
	for _, e := range mid.OutEdges {
		levels[e.Level]++
	}
	assert.Equal(t, map[int]int{0: 1, 2: 1}, levels)
}

func TestBuildGraphDeterminism(t *testing.T) {
	features := []datastructure.RoadFeature{
		road([]datastructure.Coordinate{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}}, 60,
			datastructure.DirectionBoth, 0, "ordinary"),
		road([]datastructure.Coordinate{{X: 100, Y: 0}, {X: 250, Y: 0}}, 90,
			datastructure.DirectionForwardOnly, 1, "highway"),
		road([]datastructure.Coordinate{{X: 250, Y: 0}, {X: 250, Y: 80}}, 30,
			datastructure.DirectionBackwardOnly, -1, "ramp"),
	}

	g1, segs1 := roadnet.BuildGraph(features)
	g2, segs2 := roadnet.BuildGraph(features)

	assert.Equal(t, segs1, segs2)
	assert.Equal(t, g1.MaxSpeed, g2.MaxSpeed)
	require.Equal(t, g1.NumNodes(), g2.NumNodes())
	require.Equal(t, g1.NumEdges(), g2.NumEdges())

	for id, n1 := range g1.Nodes {
		n2, ok := g2.GetNode(id)
		require.True(t, ok)
		assert.Equal(t, n1.Coord, n2.Coord)
		assert.Equal(t, n1.OutEdges, n2.OutEdges)
	}
}
