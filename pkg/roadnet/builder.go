package roadnet

import (
	"github.com/mapandra/roadroute/pkg/datastructure"
	"github.com/mapandra/roadroute/pkg/geo"
)

// Road classes that never take part in routing. They contribute neither
// edges nor snap segments: snapping onto an edge-less walkway node could only
// ever produce "no route possible from start".
var excludedClasses = map[string]struct{}{
	"walkway":    {},
	"pedestrian": {},
	"footway":    {},
}

func IsExcludedClass(roadClass string) bool {
	_, ok := excludedClasses[roadClass]
	return ok
}

// BuildGraph turns a full set of road features into a routing graph plus the
// raw segment list used for snapping. Each call builds an independent graph
// instance; rebuilding from the same features yields the same nodes, edges
// and costs.
func BuildGraph(features []datastructure.RoadFeature) (*datastructure.Graph, []datastructure.Segment) {
	g := datastructure.NewGraph()
	segments := make([]datastructure.Segment, 0)

	for _, f := range features {
		if IsExcludedClass(f.RoadClass) {
			continue
		}

		for i := 0; i+1 < len(f.Points); i++ {
			start := f.Points[i]
			end := f.Points[i+1]

			// segments are kept regardless of directionality; they only
			// serve geometric proximity queries
			segments = append(segments, datastructure.Segment{
				Start:     start,
				End:       end,
				RoadClass: f.RoadClass,
			})

			if f.Speed <= 0 {
				// impassable, not merely expensive
				continue
			}

			dist := geo.EuclideanDistance(start, end)
			if dist == 0 {
				continue
			}
			cost := dist / f.Speed

			fromID := g.EnsureNode(start)
			toID := g.EnsureNode(end)

			switch f.Direction {
			case datastructure.DirectionForwardOnly:
				g.AddEdge(fromID, toID, f.Level, cost, dist)
			case datastructure.DirectionBackwardOnly:
				g.AddEdge(toID, fromID, f.Level, cost, dist)
			default:
				g.AddEdge(fromID, toID, f.Level, cost, dist)
				g.AddEdge(toID, fromID, f.Level, cost, dist)
			}

			if f.Speed > g.MaxSpeed {
				g.MaxSpeed = f.Speed
			}
		}
	}

	return g, segments
}
