package geo

import (
	"fmt"
)

// Segment is an orthogonal segment: either Start.X == End.X or
// Start.Y == End.Y. The routers never produce diagonal segments.
type Segment struct {
	Start *Point
	End   *Point
}

func NewSegment(from, to *Point) *Segment {
	return &Segment{from, to}
}

func (s Segment) IsHorizontal() bool {
	return PrecisionCompare(s.Start.Y, s.End.Y, Epsilon) == 0
}

func (s Segment) IsVertical() bool {
	return PrecisionCompare(s.Start.X, s.End.X, Epsilon) == 0
}

func (s Segment) Length() float64 {
	return EuclideanDistance(s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

func (s Segment) ToString() string {
	return fmt.Sprintf("%v -> %v", s.Start.ToString(), s.End.ToString())
}

// Overlaps reports whether two parallel segments lie on the same line
// (within buffer) and their spans intersect. Two flows collide exactly
// when one of their segments overlaps a segment of the other.
func (s Segment) Overlaps(other Segment, buffer float64) bool {
	if s.IsHorizontal() {
		if !other.IsHorizontal() {
			return false
		}
		if PrecisionCompare(s.Start.Y, other.Start.Y, buffer) != 0 {
			return false
		}
		lo1, hi1 := minMax(s.Start.X, s.End.X)
		lo2, hi2 := minMax(other.Start.X, other.End.X)
		return lo1 <= hi2+buffer && lo2 <= hi1+buffer
	}
	if !other.IsVertical() {
		return false
	}
	if PrecisionCompare(s.Start.X, other.Start.X, buffer) != 0 {
		return false
	}
	lo1, hi1 := minMax(s.Start.Y, s.End.Y)
	lo2, hi2 := minMax(other.Start.Y, other.End.Y)
	return lo1 <= hi2+buffer && lo2 <= hi1+buffer
}

// Crosses reports whether a horizontal and a vertical segment
// intersect. Parallel segments never cross (see Overlaps).
func (s Segment) Crosses(other Segment) bool {
	h, v := s, other
	if s.IsVertical() {
		if other.IsVertical() {
			return false
		}
		h, v = other, s
	} else if other.IsHorizontal() {
		return false
	}
	loX, hiX := minMax(h.Start.X, h.End.X)
	if v.Start.X < loX || v.Start.X > hiX {
		return false
	}
	loY, hiY := minMax(v.Start.Y, v.End.Y)
	return h.Start.Y >= loY && h.Start.Y <= hiY
}

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}
