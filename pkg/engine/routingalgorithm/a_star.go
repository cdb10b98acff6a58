package routingalgorithm

import (
	"fmt"

	"github.com/mapandra/roadroute/pkg/datastructure"
	"github.com/mapandra/roadroute/pkg/geo"
	"github.com/mapandra/roadroute/pkg/util"
)

// levelState is a search state. Whether an edge may be taken depends on the
// vertical level the traveler currently occupies, so the search runs over
// (node, committed level) pairs instead of bare nodes.
type levelState struct {
	node  datastructure.NodeID
	level int
}

type cameFromPair struct {
	prev    levelState
	hasPrev bool
}

type RouteAlgorithm struct {
	graph *datastructure.Graph
}

func NewRouteAlgorithm(graph *datastructure.Graph) *RouteAlgorithm {
	return &RouteAlgorithm{graph: graph}
}

// ShortestPathAStar computes the minimum-time route between two node ids.
// Failures come back as RouteResult statuses, never as errors.
func (rt *RouteAlgorithm) ShortestPathAStar(from, to datastructure.NodeID) datastructure.RouteResult {
	fromNode, ok := rt.graph.GetNode(from)
	if !ok {
		return datastructure.NewRouteResult(nil, 0, 0, datastructure.RouteNodeNotFound,
			fmt.Sprintf("start node %d not found", from))
	}
	toNode, ok := rt.graph.GetNode(to)
	if !ok {
		return datastructure.NewRouteResult(nil, 0, 0, datastructure.RouteNodeNotFound,
			fmt.Sprintf("destination node %d not found", to))
	}

	if from == to {
		return datastructure.NewRouteResult([]datastructure.Coordinate{fromNode.Coord},
			0, 0, datastructure.RouteFound, "route found")
	}

	if len(fromNode.OutEdges) == 0 {
		return datastructure.NewRouteResult(nil, 0, 0, datastructure.RouteNoOutgoingEdges,
			"no route possible from start")
	}

	pq := datastructure.NewMinHeap[levelState]()
	costSoFar := make(map[levelState]float64)
	cameFrom := make(map[levelState]cameFromPair)
	visited := make(map[levelState]struct{})

	// the initial level is ambiguous until a first edge is committed: seed
	// one state per distinct level on the start node's outgoing edges
	seedLevels := make(map[int]struct{})
	for _, e := range fromNode.OutEdges {
		if _, ok := seedLevels[e.Level]; ok {
			continue
		}
		seedLevels[e.Level] = struct{}{}

		st := levelState{node: from, level: e.Level}
		costSoFar[st] = 0
		cameFrom[st] = cameFromPair{}
		pq.Insert(datastructure.PriorityQueueNode[levelState]{
			Rank: rt.estimatedCost(fromNode, toNode),
			Item: st,
		})
	}

	for pq.Size() > 0 {
		current, _ := pq.ExtractMin()
		st := current.Item
		if _, ok := visited[st]; ok {
			continue
		}
		visited[st] = struct{}{}

		if st.node == to {
			return rt.reconstruct(cameFrom, st, costSoFar[st])
		}

		node, _ := rt.graph.GetNode(st.node)
		for _, edge := range node.OutEdges {
			if abs(st.level-edge.Level) > 1 {
				continue
			}

			// level commitment moves to the edge's level on every hop
			next := levelState{node: edge.To, level: edge.Level}
			if _, ok := visited[next]; ok {
				continue
			}

			newCost := costSoFar[st] + edge.Cost
			neighbor, _ := rt.graph.GetNode(edge.To)
			priority := newCost + rt.estimatedCost(neighbor, toNode)

			oldCost, seen := costSoFar[next]
			if !seen {
				costSoFar[next] = newCost
				cameFrom[next] = cameFromPair{prev: st, hasPrev: true}
				pq.Insert(datastructure.PriorityQueueNode[levelState]{Rank: priority, Item: next})
			} else if newCost < oldCost {
				costSoFar[next] = newCost
				cameFrom[next] = cameFromPair{prev: st, hasPrev: true}
				pq.DecreaseKey(datastructure.PriorityQueueNode[levelState]{Rank: priority, Item: next})
			}
		}
	}

	return datastructure.NewRouteResult(nil, 0, 0, datastructure.RouteUnreachable,
		"destination unreachable from start")
}

func (rt *RouteAlgorithm) reconstruct(cameFrom map[levelState]cameFromPair,
	end levelState, cost float64) datastructure.RouteResult {

	pathCoords := []datastructure.Coordinate{}
	st := end
	for {
		node, _ := rt.graph.GetNode(st.node)
		pathCoords = append(pathCoords, node.Coord)
		pair := cameFrom[st]
		if !pair.hasPrev {
			break
		}
		st = pair.prev
	}
	pathCoords = util.ReverseG(pathCoords)

	// distance is re-summed over the reconstructed coordinates so it always
	// agrees with the returned path, even where cost and distance diverge
	dist := geo.PathDistance(pathCoords)

	return datastructure.NewRouteResult(pathCoords, cost, dist, datastructure.RouteFound, "route found")
}

// estimatedCost is the A* heuristic: straight-line distance divided by the
// fastest speed in the network, so it never exceeds the true remaining
// travel time.
func (rt *RouteAlgorithm) estimatedCost(from, to *datastructure.Node) float64 {
	if rt.graph.MaxSpeed <= 0 {
		return 0
	}
	return geo.EuclideanDistance(from.Coord, to.Coord) / rt.graph.MaxSpeed
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
