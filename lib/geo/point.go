package geo

import (
	"fmt"
	"strings"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) *Point {
	return &Point{X: x, Y: y}
}

func (p1 *Point) Equals(p2 *Point) bool {
	if p1 == nil {
		return p2 == nil
	} else if p2 == nil {
		return false
	}
	return (p1.X == p2.X) && (p1.Y == p2.Y)
}

// Coincides is Equals with pixel tolerance.
func (p1 *Point) Coincides(p2 *Point) bool {
	if p1 == nil || p2 == nil {
		return false
	}
	return PrecisionCompare(p1.X, p2.X, Epsilon) == 0 && PrecisionCompare(p1.Y, p2.Y, Epsilon) == 0
}

func (p *Point) Copy() *Point {
	return &Point{X: p.X, Y: p.Y}
}

func (p *Point) ToString() string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("(%v, %v)", p.X, p.Y)
}

func (p *Point) Transpose() {
	if p == nil {
		return
	}
	p.X, p.Y = p.Y, p.X
}

// returns true if point p is on the orthogonal segment between points a and b
func (p *Point) OnOrthogonalSegment(a, b *Point) bool {
	if a.X < b.X {
		if p.X < a.X || b.X < p.X {
			return false
		}
	} else if p.X < b.X || a.X < p.X {
		return false
	}
	if a.Y < b.Y {
		if p.Y < a.Y || b.Y < p.Y {
			return false
		}
	} else if p.Y < b.Y || a.Y < p.Y {
		return false
	}
	return true
}

type Points []*Point

func (points Points) ToString() string {
	strs := make([]string, 0, len(points))
	for _, p := range points {
		strs = append(strs, p.ToString())
	}
	return strings.Join(strs, ", ")
}
