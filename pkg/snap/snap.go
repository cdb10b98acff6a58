package snap

import (
	"math"

	"github.com/mapandra/roadroute/pkg/datastructure"
	"github.com/mapandra/roadroute/pkg/geo"

	"github.com/dhconnelly/rtreego"
)

const (
	// SnapRadius is the maximum distance, in block coordinate units, within
	// which a query point may be resolved to a graph node.
	SnapRadius = 50.0

	rtreeMinBranch = 25
	rtreeMaxBranch = 50

	// rtreego rejects zero-extent rectangles, so axis-aligned segments get a
	// hair of thickness
	minRectExtent = 1e-9
)

type segmentEntry struct {
	seg  datastructure.Segment
	rect rtreego.Rect
}

func (s *segmentEntry) Bounds() rtreego.Rect {
	return s.rect
}

func segmentRect(seg datastructure.Segment) rtreego.Rect {
	minX := math.Min(seg.Start.X, seg.End.X)
	minY := math.Min(seg.Start.Y, seg.End.Y)
	dx := math.Max(math.Abs(seg.End.X-seg.Start.X), minRectExtent)
	dy := math.Max(math.Abs(seg.End.Y-seg.Start.Y), minRectExtent)

	rect, _ := rtreego.NewRect(rtreego.Point{minX, minY}, []float64{dx, dy})
	return rect
}

// classFilter reports whether a road class is eligible for one cascade tier.
type classFilter func(roadClass string) bool

// Snapping prefers ordinary roads: ramps and highways have few access points,
// so anchoring a route onto one when an ordinary road is equally close gives
// unrealistic routes. Each tier relaxes the preference a step further.
var cascadeTiers = []classFilter{
	func(c string) bool { return c != "ramp" && c != "highway" },
	func(c string) bool { return c != "ramp" },
	func(c string) bool { return true },
}

// NodeLocator resolves arbitrary query coordinates to the nearest usable
// graph node. It is read-only after construction and safe for concurrent
// queries.
type NodeLocator struct {
	tree  *rtreego.Rtree
	graph *datastructure.Graph
}

func NewNodeLocator(graph *datastructure.Graph, segments []datastructure.Segment) *NodeLocator {
	tree := rtreego.NewTree(2, rtreeMinBranch, rtreeMaxBranch)
	for _, seg := range segments {
		tree.Insert(&segmentEntry{seg: seg, rect: segmentRect(seg)})
	}
	return &NodeLocator{tree: tree, graph: graph}
}

// Locate returns the graph node nearest to the query coordinate, or false
// when no road lies within the snap radius.
func (nl *NodeLocator) Locate(query datastructure.Coordinate) (datastructure.NodeID, bool) {
	candidates := nl.segmentsNear(query)

	for _, eligible := range cascadeTiers {
		if id, ok := nl.locateInTier(query, candidates, eligible); ok {
			return id, true
		}
	}

	// segment data may be missing entirely; fall back to a plain
	// nearest-node search under the same radius
	return nl.nearestNode(query)
}

func (nl *NodeLocator) segmentsNear(query datastructure.Coordinate) []datastructure.Segment {
	center := rtreego.Point{query.X, query.Y}
	matches := nl.tree.SearchIntersect(center.ToRect(SnapRadius))

	segments := make([]datastructure.Segment, 0, len(matches))
	for _, m := range matches {
		segments = append(segments, m.(*segmentEntry).seg)
	}
	return segments
}

func (nl *NodeLocator) locateInTier(query datastructure.Coordinate,
	candidates []datastructure.Segment, eligible classFilter) (datastructure.NodeID, bool) {

	bestDist := math.Inf(1)
	var bestSeg datastructure.Segment
	found := false

	for _, seg := range candidates {
		if !eligible(seg.RoadClass) {
			continue
		}
		if !nl.hasGraphNode(seg) {
			// impassable road: its endpoints never became graph nodes
			continue
		}
		dist := geo.PointToSegmentDistance(query, seg.Start, seg.End)
		if dist < bestDist {
			bestDist = dist
			bestSeg = seg
			found = true
		}
	}

	if !found || bestDist > SnapRadius {
		return 0, false
	}
	return nl.nearerEndpointNode(query, bestSeg)
}

func (nl *NodeLocator) hasGraphNode(seg datastructure.Segment) bool {
	if _, ok := nl.graph.GetNode(datastructure.NewNodeID(seg.Start)); ok {
		return true
	}
	_, ok := nl.graph.GetNode(datastructure.NewNodeID(seg.End))
	return ok
}

func (nl *NodeLocator) nearerEndpointNode(query datastructure.Coordinate,
	seg datastructure.Segment) (datastructure.NodeID, bool) {

	startID := datastructure.NewNodeID(seg.Start)
	endID := datastructure.NewNodeID(seg.End)

	distStart := geo.EuclideanDistance(query, seg.Start)
	distEnd := geo.EuclideanDistance(query, seg.End)
	if distEnd < distStart {
		startID, endID = endID, startID
	}

	if _, ok := nl.graph.GetNode(startID); ok {
		return startID, true
	}
	if _, ok := nl.graph.GetNode(endID); ok {
		return endID, true
	}
	return 0, false
}

func (nl *NodeLocator) nearestNode(query datastructure.Coordinate) (datastructure.NodeID, bool) {
	bestDist := math.Inf(1)
	var bestID datastructure.NodeID
	found := false

	// ties broken by node id so map iteration order cannot leak into results
	for id, node := range nl.graph.Nodes {
		dist := geo.EuclideanDistance(query, node.Coord)
		if dist < bestDist || (dist == bestDist && id < bestID) {
			bestDist = dist
			bestID = id
			found = true
		}
	}

	if !found || bestDist > SnapRadius {
		return 0, false
	}
	return bestID, true
}
