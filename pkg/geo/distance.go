package geo

import (
	"math"

	"github.com/mapandra/roadroute/pkg/datastructure"

	"github.com/golang/geo/r2"
)

func toR2(c datastructure.Coordinate) r2.Point {
	return r2.Point{X: c.X, Y: c.Y}
}

func EuclideanDistance(a, b datastructure.Coordinate) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// ProjectPointToSegment returns the point on the segment [segStart, segEnd]
// closest to p. The projection parameter is clamped to [0, 1], so the result
// always lies on the segment, never on the unbounded line through it.
func ProjectPointToSegment(p, segStart, segEnd datastructure.Coordinate) datastructure.Coordinate {
	a := toR2(segStart)
	b := toR2(segEnd)
	q := toR2(p)

	ab := b.Sub(a)
	lenSq := ab.Dot(ab)
	if lenSq == 0 {
		// degenerate segment
		return segStart
	}

	t := q.Sub(a).Dot(ab) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	proj := a.Add(ab.Mul(t))
	return datastructure.Coordinate{X: proj.X, Y: proj.Y}
}

// PointToSegmentDistance is the distance from p to the nearest point of the
// segment [segStart, segEnd].
func PointToSegmentDistance(p, segStart, segEnd datastructure.Coordinate) float64 {
	return EuclideanDistance(p, ProjectPointToSegment(p, segStart, segEnd))
}

// PathDistance sums the Euclidean distances between consecutive coordinates.
func PathDistance(path []datastructure.Coordinate) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		total += EuclideanDistance(path[i], path[i+1])
	}
	return total
}
