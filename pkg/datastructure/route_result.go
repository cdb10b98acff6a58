package datastructure

type RouteStatus int

const (
	RouteFound RouteStatus = iota
	RouteNodeNotFound
	RouteNoOutgoingEdges
	RouteUnreachable
)

func (s RouteStatus) String() string {
	switch s {
	case RouteFound:
		return "Found"
	case RouteNodeNotFound:
		return "NodeNotFound"
	case RouteNoOutgoingEdges:
		return "NoOutgoingEdges"
	case RouteUnreachable:
		return "Unreachable"
	default:
		return "Unknown"
	}
}

// RouteResult is the routing output contract. Query failures (missing node,
// dead start, unreachable destination) are reported through Status, never as
// errors.
type RouteResult struct {
	Path    []Coordinate
	Cost    float64 // total travel time along the path
	Dist    float64 // geometric length of Path, recomputed from Path itself
	Status  RouteStatus
	Message string
}

func NewRouteResult(path []Coordinate, cost, dist float64, status RouteStatus, message string) RouteResult {
	return RouteResult{Path: path, Cost: cost, Dist: dist, Status: status, Message: message}
}
