package service

import (
	"context"
	"sync/atomic"

	"github.com/mapandra/roadroute/pkg/datastructure"
	"github.com/mapandra/roadroute/pkg/server"
)

type NodeLocator interface {
	Locate(query datastructure.Coordinate) (datastructure.NodeID, bool)
}

type RouteAlgorithm interface {
	ShortestPathAStar(from, to datastructure.NodeID) datastructure.RouteResult
}

// Bundle ties one built graph to the locator and router that walk it. A
// bundle is immutable once published; a reload builds a fresh bundle and
// swaps the pointer, so queries already running keep a consistent view.
type Bundle struct {
	Graph   *datastructure.Graph
	Locator NodeLocator
	Router  RouteAlgorithm
}

// BundleBuilder rebuilds a bundle from the current road data source.
type BundleBuilder func() (*Bundle, error)

type NavigationService struct {
	current atomic.Pointer[Bundle]
	rebuild BundleBuilder
}

func NewNavigationService(initial *Bundle, rebuild BundleBuilder) *NavigationService {
	svc := &NavigationService{rebuild: rebuild}
	svc.current.Store(initial)
	return svc
}

// SnapToNode resolves a query coordinate to the nearest usable graph node.
func (s *NavigationService) SnapToNode(ctx context.Context,
	query datastructure.Coordinate) (datastructure.NodeID, datastructure.Coordinate, error) {

	bundle := s.current.Load()
	id, ok := bundle.Locator.Locate(query)
	if !ok {
		return 0, datastructure.Coordinate{}, server.NewError(server.ErrNotFound,
			"no nearby road within snapping distance of (%.1f, %.1f)", query.X, query.Y)
	}
	node, _ := bundle.Graph.GetNode(id)
	return id, node.Coord, nil
}

// Route snaps both coordinates and computes the minimum-time route between
// the resolved nodes. Routing failures (unreachable and friends) are part of
// the returned RouteResult, not errors; only snapping failures error out.
func (s *NavigationService) Route(ctx context.Context,
	src, dst datastructure.Coordinate) (datastructure.RouteResult, error) {

	bundle := s.current.Load()

	srcID, ok := bundle.Locator.Locate(src)
	if !ok {
		return datastructure.RouteResult{}, server.NewError(server.ErrNotFound,
			"no nearby road at origin (%.1f, %.1f)", src.X, src.Y)
	}
	dstID, ok := bundle.Locator.Locate(dst)
	if !ok {
		return datastructure.RouteResult{}, server.NewError(server.ErrNotFound,
			"no nearby road at destination (%.1f, %.1f)", dst.X, dst.Y)
	}

	return bundle.Router.ShortestPathAStar(srcID, dstID), nil
}

// Reload rebuilds the graph wholesale from the road data source and
// atomically publishes the new bundle. Returns the new node and edge counts.
func (s *NavigationService) Reload(ctx context.Context) (int, int, error) {
	bundle, err := s.rebuild()
	if err != nil {
		return 0, 0, server.WrapErrorf(err, server.ErrInternalServerError, "rebuild road graph")
	}
	s.current.Store(bundle)
	return bundle.Graph.NumNodes(), bundle.Graph.NumEdges(), nil
}
