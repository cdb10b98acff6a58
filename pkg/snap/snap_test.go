package snap_test

import (
	"testing"

	"github.com/mapandra/roadroute/pkg/datastructure"
	"github.com/mapandra/roadroute/pkg/roadnet"
	"github.com/mapandra/roadroute/pkg/snap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildLocator(t *testing.T, features []datastructure.RoadFeature) (*snap.NodeLocator, *datastructure.Graph) {
	t.Helper()
	graph, segments := roadnet.BuildGraph(features)
	return snap.NewNodeLocator(graph, segments), graph
}

func horizontalRoad(y float64, class string) datastructure.RoadFeature {
	return datastructure.RoadFeature{
		Points:    []datastructure.Coordinate{{X: 0, Y: y}, {X: 200, Y: y}},
		Speed:     40,
		Direction: datastructure.DirectionBoth,
		RoadClass: class,
	}
}

func TestLocatePrefersOrdinaryOverCloserRamp(t *testing.T) {
	// query sits at y=8: the ramp (y=0) is closer than the ordinary road
	// (y=20), both within radius
	locator, _ := buildLocator(t, []datastructure.RoadFeature{
		horizontalRoad(0, "ramp"),
		horizontalRoad(20, "ordinary"),
	})

	query := datastructure.NewCoordinate(100, 8)
	id, ok := locator.Locate(query)
	require.True(t, ok)

	// node must be on the ordinary road despite the nearer ramp; the query
	// is equidistant to both endpoints, which keeps the segment start
	assert.Equal(t, datastructure.NewNodeID(datastructure.NewCoordinate(0, 20)), id)
}

func TestLocateFallsBackToRamp(t *testing.T) {
	locator, _ := buildLocator(t, []datastructure.RoadFeature{
		horizontalRoad(0, "ramp"),
	})

	id, ok := locator.Locate(datastructure.NewCoordinate(100, 8))
	require.True(t, ok)
	assert.Equal(t, datastructure.NewNodeID(datastructure.NewCoordinate(0, 0)), id)
}

func TestLocateHighwayBeforeRamp(t *testing.T) {
	// tier 2 admits highways, tier 3 ramps; the highway wins even though the
	// ramp is closer
	locator, _ := buildLocator(t, []datastructure.RoadFeature{
		horizontalRoad(0, "ramp"),
		horizontalRoad(30, "highway"),
	})

	id, ok := locator.Locate(datastructure.NewCoordinate(50, 5))
	require.True(t, ok)
	assert.Equal(t, datastructure.NewNodeID(datastructure.NewCoordinate(0, 30)), id)
}

func TestLocateNearerEndpoint(t *testing.T) {
	locator, _ := buildLocator(t, []datastructure.RoadFeature{
		horizontalRoad(0, "ordinary"),
	})

	id, ok := locator.Locate(datastructure.NewCoordinate(160, 10))
	require.True(t, ok)
	assert.Equal(t, datastructure.NewNodeID(datastructure.NewCoordinate(200, 0)), id)

	id, ok = locator.Locate(datastructure.NewCoordinate(40, -10))
	require.True(t, ok)
	assert.Equal(t, datastructure.NewNodeID(datastructure.NewCoordinate(0, 0)), id)
}

func TestLocateOutsideRadius(t *testing.T) {
	locator, _ := buildLocator(t, []datastructure.RoadFeature{
		horizontalRoad(0, "ordinary"),
	})

	_, ok := locator.Locate(datastructure.NewCoordinate(100, snap.SnapRadius+1))
	assert.False(t, ok)
}

func TestLocateEmptyNetwork(t *testing.T) {
	locator, _ := buildLocator(t, nil)

	_, ok := locator.Locate(datastructure.NewCoordinate(0, 0))
	assert.False(t, ok)
}

func TestLocateNodeFallbackWithoutSegments(t *testing.T) {
	// graph nodes exist but the locator got no segment list; the node-table
	// fallback must still answer under the same radius
	graph, _ := roadnet.BuildGraph([]datastructure.RoadFeature{
		horizontalRoad(0, "ordinary"),
	})
	locator := snap.NewNodeLocator(graph, nil)

	id, ok := locator.Locate(datastructure.NewCoordinate(10, 10))
	require.True(t, ok)
	assert.Equal(t, datastructure.NewNodeID(datastructure.NewCoordinate(0, 0)), id)

	_, ok = locator.Locate(datastructure.NewCoordinate(10, snap.SnapRadius+100))
	assert.False(t, ok)
}

func TestLocateSkipsImpassableSegments(t *testing.T) {
	// the closer road is impassable (speed 0): it has snap segments but no
	// graph nodes, so the passable road behind it must win
	impassable := horizontalRoad(0, "ordinary")
	impassable.Speed = 0

	locator, _ := buildLocator(t, []datastructure.RoadFeature{
		impassable,
		horizontalRoad(20, "ordinary"),
	})

	id, ok := locator.Locate(datastructure.NewCoordinate(100, 2))
	require.True(t, ok)
	assert.Equal(t, datastructure.NewNodeID(datastructure.NewCoordinate(0, 20)), id)
}
