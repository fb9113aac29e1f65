package b2layout

import (
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/geo"
	"oss.terrastruct.com/b2/lib/go2"
	"oss.terrastruct.com/b2/lib/log"
)

// routeMessageFlow routes a cross-pool flow. Pools stack vertically,
// so the preferred path leaves the source on the side facing the other
// pool and enters the target on the facing side back. Each exit/entry
// pair is built and checked against placed flows and node boxes; free
// sides are tried before occupied ones, and the weakest pair is kept
// when everything collides.
func (l *layout) routeMessageFlow(ctx context.Context, id string) {
	f := l.g.Flows[id]
	fi := l.flows[id]
	srcBox, dstBox := l.nodeBoxes[f.SourceRef], l.nodeBoxes[f.TargetRef]
	if srcBox == nil || dstBox == nil {
		return
	}

	toward := geo.Bottom
	if dstBox.Center().Y < srcBox.Center().Y {
		toward = geo.Top
	}
	exits := l.orderSides(f.SourceRef, []geo.Side{toward, geo.Right, geo.Left, toward.Opposite()})
	entries := l.orderSides(f.TargetRef, []geo.Side{toward.Opposite(), geo.Left, geo.Right, toward})

	var route geo.Route
	var exit, entry geo.Side
	clean := false
	for _, ex := range exits {
		for _, en := range entries {
			r := l.buildMessageRoute(ex, en, srcBox, dstBox)
			if r == nil {
				continue
			}
			route, exit, entry = r, ex, en
			if !l.routeCollides(r, id) && !l.routeHitsNodes(r, f.SourceRef, f.TargetRef) {
				clean = true
				break
			}
		}
		if clean {
			break
		}
	}
	if !clean {
		// every direct side pair is blocked, typically because the
		// endpoints sit in non-adjacent lanes and the straight drop runs
		// through the lanes between: cross over on a corridor channel
		if r := l.buildChannelRoute(f, toward, srcBox, dstBox); r != nil &&
			!l.routeCollides(r, id) && !l.routeHitsNodes(r, f.SourceRef, f.TargetRef) {
			route, exit, entry = r, toward, toward.Opposite()
			clean = true
		}
	}
	if route == nil {
		l.warnf("message flow %q could not be routed", id)
		return
	}
	if !clean {
		l.warnf("message flow %q kept a colliding route, all fallbacks collided", id)
	}

	fi.Route = compactRoute(route)
	fi.SrcSide = DirectionOf(exit)
	fi.DstSide = DirectionOf(entry)

	log.Debug(ctx, "routed message flow",
		slog.F("flow", id),
		slog.F("exit", exit.String()),
		slog.F("entry", entry.String()),
		slog.F("clean", clean),
	)
}

// orderSides stably moves sides with no attached route ahead of
// occupied ones.
func (l *layout) orderSides(nodeID string, sides []geo.Side) []geo.Side {
	var free, busy []geo.Side
	for _, s := range sides {
		if l.sideFree(nodeID, s) {
			free = append(free, s)
		} else {
			busy = append(busy, s)
		}
	}
	return append(free, busy...)
}

// buildMessageRoute connects two side centers orthogonally: straight
// when aligned, a Z through the midline for opposite sides, one corner
// for perpendicular sides, and a clearing leg past both boxes when the
// sides match. Pairs whose first or last leg would cut back through
// the endpoint's own box return nil.
func (l *layout) buildMessageRoute(exit, entry geo.Side, srcBox, dstBox *geo.Box) geo.Route {
	bend := l.sz.BendMargin
	a := srcBox.SideCenter(exit)
	b := dstBox.SideCenter(entry)

	var route geo.Route
	switch {
	case exit.IsVertical() && entry.IsVertical():
		switch {
		case exit == entry.Opposite():
			if geo.PrecisionCompare(a.X, b.X, geo.Epsilon) == 0 {
				route = geo.Route{a, b}
			} else {
				midY := (a.Y + b.Y) / 2
				route = geo.Route{a, geo.NewPoint(a.X, midY), geo.NewPoint(b.X, midY), b}
			}
		default: // same side
			clearY := maxf(a.Y, b.Y) + bend
			if exit == geo.Top {
				clearY = minf(a.Y, b.Y) - bend
			}
			route = geo.Route{a, geo.NewPoint(a.X, clearY), geo.NewPoint(b.X, clearY), b}
		}
	case exit.IsVertical():
		route = geo.Route{a, geo.NewPoint(a.X, b.Y), b}
	case entry.IsVertical():
		route = geo.Route{a, geo.NewPoint(b.X, a.Y), b}
	default:
		switch {
		case exit == entry.Opposite():
			if geo.PrecisionCompare(a.Y, b.Y, geo.Epsilon) == 0 {
				route = geo.Route{a, b}
			} else {
				midX := (a.X + b.X) / 2
				route = geo.Route{a, geo.NewPoint(midX, a.Y), geo.NewPoint(midX, b.Y), b}
			}
		default:
			clearX := maxf(a.X, b.X) + bend
			if exit == geo.Left {
				clearX = minf(a.X, b.X) - bend
			}
			route = geo.Route{a, geo.NewPoint(clearX, a.Y), geo.NewPoint(clearX, b.Y), b}
		}
	}

	if !stubLeaves(route[0], route[1], exit) {
		return nil
	}
	if !stubLeaves(route[len(route)-1], route[len(route)-2], entry) {
		return nil
	}
	return route
}

// buildChannelRoute leaves toward the other pool, runs along the
// source lane's corridor to the column boundary past both endpoints (a
// vertical no node covers, since nodes center inside their columns),
// crosses the intervening lanes there, and approaches the target along
// its own corridor.
func (l *layout) buildChannelRoute(f *b2graph.Flow, toward geo.Side, srcBox, dstBox *geo.Box) geo.Route {
	srcPos, dstPos := l.positions[f.SourceRef], l.positions[f.TargetRef]
	if srcPos == nil || dstPos == nil {
		return nil
	}
	channelX := l.columnBoundary(srcPos.Lane, go2.Max(srcPos.Layer, dstPos.Layer))
	srcCorrY := l.corridorPast(srcPos.Lane, srcBox, toward)
	dstCorrY := l.corridorPast(dstPos.Lane, dstBox, toward.Opposite())

	p0 := srcBox.SideCenter(toward)
	pn := dstBox.SideCenter(toward.Opposite())
	return geo.Route{
		p0,
		geo.NewPoint(p0.X, srcCorrY),
		geo.NewPoint(channelX, srcCorrY),
		geo.NewPoint(channelX, dstCorrY),
		geo.NewPoint(pn.X, dstCorrY),
		pn,
	}
}

// corridorPast returns the corridor of the lane just past the box on
// the given side, falling back to the boundary corridor.
func (l *layout) corridorPast(laneID string, box *geo.Box, side geo.Side) float64 {
	corrs := l.corridors(laneID)
	if len(corrs) == 0 {
		if side == geo.Top {
			return box.TopLeft.Y - l.sz.CorridorOffset
		}
		return box.Bottom() + l.sz.CorridorOffset
	}
	if side == geo.Bottom {
		for _, y := range corrs {
			if y > box.Bottom() {
				return y
			}
		}
		return corrs[len(corrs)-1]
	}
	for i := len(corrs) - 1; i >= 0; i-- {
		if corrs[i] < box.TopLeft.Y {
			return corrs[i]
		}
	}
	return corrs[0]
}

// stubLeaves reports whether next lies strictly on the outward side of
// the box face the attach point p sits on.
func stubLeaves(p, next *geo.Point, side geo.Side) bool {
	switch side {
	case geo.Top:
		return next.Y < p.Y
	case geo.Bottom:
		return next.Y > p.Y
	case geo.Left:
		return next.X < p.X
	case geo.Right:
		return next.X > p.X
	}
	return false
}
