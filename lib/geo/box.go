package geo

import "fmt"

type Box struct {
	TopLeft *Point
	Width   float64
	Height  float64
}

func NewBox(tl *Point, width, height float64) *Box {
	return &Box{
		TopLeft: tl,
		Width:   width,
		Height:  height,
	}
}

func (b *Box) Copy() *Box {
	if b == nil {
		return nil
	}
	return NewBox(b.TopLeft.Copy(), b.Width, b.Height)
}

func (b *Box) Center() *Point {
	return NewPoint(b.TopLeft.X+b.Width/2, b.TopLeft.Y+b.Height/2)
}

func (b *Box) Bottom() float64 {
	return b.TopLeft.Y + b.Height
}

func (b *Box) Right() float64 {
	return b.TopLeft.X + b.Width
}

// SideCenter is the midpoint of the given face, i.e. where a flow
// attaches when it exits or enters through that side.
func (b *Box) SideCenter(side Side) *Point {
	c := b.Center()
	switch side {
	case Top:
		return NewPoint(c.X, b.TopLeft.Y)
	case Bottom:
		return NewPoint(c.X, b.Bottom())
	case Left:
		return NewPoint(b.TopLeft.X, c.Y)
	case Right:
		return NewPoint(b.Right(), c.Y)
	default:
		return c
	}
}

// SideOf returns which face of the box p lies on, or NONE.
func (b *Box) SideOf(p *Point) Side {
	withinX := p.X >= b.TopLeft.X-Epsilon && p.X <= b.Right()+Epsilon
	withinY := p.Y >= b.TopLeft.Y-Epsilon && p.Y <= b.Bottom()+Epsilon
	switch {
	case PrecisionCompare(p.Y, b.TopLeft.Y, Epsilon) == 0 && withinX:
		return Top
	case PrecisionCompare(p.Y, b.Bottom(), Epsilon) == 0 && withinX:
		return Bottom
	case PrecisionCompare(p.X, b.TopLeft.X, Epsilon) == 0 && withinY:
		return Left
	case PrecisionCompare(p.X, b.Right(), Epsilon) == 0 && withinY:
		return Right
	}
	return NONE
}

func (b *Box) Contains(p *Point) bool {
	return p.X > b.TopLeft.X-Epsilon &&
		p.X < b.Right()+Epsilon &&
		p.Y > b.TopLeft.Y-Epsilon &&
		p.Y < b.Bottom()+Epsilon
}

func (b *Box) Overlaps(other *Box) bool {
	if b.TopLeft.X+b.Width <= other.TopLeft.X || other.TopLeft.X+other.Width <= b.TopLeft.X {
		return false
	}
	if b.TopLeft.Y+b.Height <= other.TopLeft.Y || other.TopLeft.Y+other.Height <= b.TopLeft.Y {
		return false
	}
	return true
}

// IntersectsSegment reports whether an orthogonal segment passes
// through the box interior. Touching the border alone does not count:
// flows attach to borders.
func (b *Box) IntersectsSegment(s Segment) bool {
	if s.IsHorizontal() {
		if s.Start.Y <= b.TopLeft.Y+Epsilon || s.Start.Y >= b.Bottom()-Epsilon {
			return false
		}
		lo, hi := minMax(s.Start.X, s.End.X)
		return lo < b.Right()-Epsilon && hi > b.TopLeft.X+Epsilon
	}
	if s.Start.X <= b.TopLeft.X+Epsilon || s.Start.X >= b.Right()-Epsilon {
		return false
	}
	lo, hi := minMax(s.Start.Y, s.End.Y)
	return lo < b.Bottom()-Epsilon && hi > b.TopLeft.Y+Epsilon
}

// Union grows b to the smallest box containing both b and other.
func (b *Box) Union(other *Box) *Box {
	if b == nil {
		return other.Copy()
	}
	if other == nil {
		return b.Copy()
	}
	minX := b.TopLeft.X
	if other.TopLeft.X < minX {
		minX = other.TopLeft.X
	}
	minY := b.TopLeft.Y
	if other.TopLeft.Y < minY {
		minY = other.TopLeft.Y
	}
	maxX := b.Right()
	if other.Right() > maxX {
		maxX = other.Right()
	}
	maxY := b.Bottom()
	if other.Bottom() > maxY {
		maxY = other.Bottom()
	}
	return NewBox(NewPoint(minX, minY), maxX-minX, maxY-minY)
}

func (b *Box) Transpose() {
	if b == nil {
		return
	}
	b.TopLeft.Transpose()
	b.Width, b.Height = b.Height, b.Width
}

func (b *Box) ToString() string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("{TopLeft: %s, Width: %.0f, Height: %.0f}", b.TopLeft.ToString(), b.Width, b.Height)
}
