package geo

type Route []*Point

func (route Route) Copy() Route {
	out := make(Route, len(route))
	for i, p := range route {
		out[i] = p.Copy()
	}
	return out
}

func (route Route) Length() float64 {
	l := 0.
	for i := 0; i < len(route)-1; i++ {
		l += EuclideanDistance(
			route[i].X, route[i].Y,
			route[i+1].X, route[i+1].Y,
		)
	}
	return l
}

// Segments decomposes the route into its orthogonal segments,
// dropping zero-length ones.
func (route Route) Segments() []Segment {
	segs := make([]Segment, 0, len(route)-1)
	for i := 0; i < len(route)-1; i++ {
		if route[i].Coincides(route[i+1]) {
			continue
		}
		segs = append(segs, Segment{route[i], route[i+1]})
	}
	return segs
}

// IsOrthogonal reports whether every pair of consecutive waypoints
// differs in at most one axis.
func (route Route) IsOrthogonal() bool {
	for _, s := range route.Segments() {
		if !s.IsHorizontal() && !s.IsVertical() {
			return false
		}
	}
	return true
}

func (route Route) GetBoundingBox() (tl, br *Point) {
	if len(route) == 0 {
		return nil, nil
	}
	minX, minY := route[0].X, route[0].Y
	maxX, maxY := route[0].X, route[0].Y
	for _, p := range route[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return NewPoint(minX, minY), NewPoint(maxX, maxY)
}

func (route Route) Transpose() {
	for _, p := range route {
		p.Transpose()
	}
}
