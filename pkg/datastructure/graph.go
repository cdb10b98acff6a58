package datastructure

import (
	"math"

	"github.com/mapandra/roadroute/pkg/util"

	"github.com/twpayne/go-polyline"
)

// Coordinate is a point in the planar block coordinate space. All inputs are
// assumed to be normalized to this space before they reach the engine.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

// PathDirection controls which directed edges a road segment produces.
type PathDirection int

const (
	DirectionBoth PathDirection = iota
	DirectionForwardOnly
	DirectionBackwardOnly
)

// ParsePathDirection maps the source direction codes onto PathDirection.
// "B" = both, "BE" = begin to end only, "EB" = end to begin only. Anything
// unrecognized (including an absent code) is treated as both.
func ParsePathDirection(code string) PathDirection {
	switch code {
	case "BE":
		return DirectionForwardOnly
	case "EB":
		return DirectionBackwardOnly
	default:
		return DirectionBoth
	}
}

// RoadFeature is one polyline of road geometry plus its routing attributes,
// already validated at the parsing boundary.
type RoadFeature struct {
	Points    []Coordinate
	Speed     float64 // km/h-equivalent; <= 0 means impassable
	Direction PathDirection
	Level     int
	RoadClass string
}

// NodeID identifies a graph node. It is a pure function of the rounded
// coordinate pair, so two features touching the same rounded coordinate
// always share one node.
type NodeID int64

func NewNodeID(c Coordinate) NodeID {
	rx := int32(math.Round(c.X))
	ry := int32(math.Round(c.Y))
	return NodeID(util.PackCoordKey(rx, ry))
}

func (id NodeID) Coordinate() Coordinate {
	x, y := util.UnpackCoordKey(int64(id))
	return Coordinate{X: float64(x), Y: float64(y)}
}

type Edge struct {
	From  NodeID
	To    NodeID
	Level int
	Cost  float64 // Dist / speed, a time unit. Always finite and positive.
	Dist  float64
}

type Node struct {
	ID       NodeID
	Coord    Coordinate
	OutEdges []Edge
}

// Segment keeps the unrounded endpoints of one road piece for geometric
// nearest-point queries. It is not part of the routing graph.
type Segment struct {
	Start     Coordinate
	End       Coordinate
	RoadClass string
}

// Graph is a directed, leveled, weighted road graph. A built graph is never
// mutated; callers that rebuild must publish the new instance atomically.
type Graph struct {
	Nodes map[NodeID]*Node

	// MaxSpeed is the fastest segment speed seen during the build. The A*
	// heuristic divides straight-line distance by it, which keeps the
	// estimate admissible for any input.
	MaxSpeed float64

	edgeCount int
}

func NewGraph() *Graph {
	return &Graph{Nodes: make(map[NodeID]*Node)}
}

func (g *Graph) GetNode(id NodeID) (*Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// EnsureNode returns the node for the rounded coordinate of c, creating it on
// first reference. The node keeps the rounded coordinate, not c itself.
func (g *Graph) EnsureNode(c Coordinate) NodeID {
	id := NewNodeID(c)
	if _, ok := g.Nodes[id]; !ok {
		g.Nodes[id] = &Node{ID: id, Coord: id.Coordinate()}
	}
	return id
}

func (g *Graph) AddEdge(from, to NodeID, level int, cost, dist float64) {
	n := g.Nodes[from]
	n.OutEdges = append(n.OutEdges, Edge{From: from, To: to, Level: level, Cost: cost, Dist: dist})
	g.edgeCount++
}

func (g *Graph) NumNodes() int {
	return len(g.Nodes)
}

func (g *Graph) NumEdges() int {
	return g.edgeCount
}

// RenderPath returns the polyline-encoded form of a coordinate path.
func RenderPath(path []Coordinate) string {
	coords := make([][]float64, 0, len(path))
	for _, p := range path {
		coords = append(coords, []float64{p.X, p.Y})
	}
	return string(polyline.EncodeCoords(coords))
}
