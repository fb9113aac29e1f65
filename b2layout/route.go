package b2layout

import (
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/b2/lib/geo"
	"oss.terrastruct.com/b2/lib/log"
)

// routeFlows computes waypoints for every flow. Forward flows go
// first: they are cheap and their placed segments are what the
// back-flow and message-flow routers must dodge.
func (l *layout) routeFlows(ctx context.Context) {
	var backFlows, messageFlows []string
	for _, id := range l.g.SortedFlowIDs() {
		fi := l.flows[id]
		switch {
		case fi.IsBackFlow:
			backFlows = append(backFlows, id)
		case fi.IsMessageFlow:
			messageFlows = append(messageFlows, id)
		default:
			l.routeForward(id)
		}
	}
	for _, id := range backFlows {
		l.routeBackFlow(ctx, id)
	}
	for _, id := range messageFlows {
		l.routeMessageFlow(ctx, id)
	}

	log.Debug(ctx, "routed flows",
		slog.F("forward", len(l.flows)-len(backFlows)-len(messageFlows)),
		slog.F("back", len(backFlows)),
		slog.F("message", len(messageFlows)),
	)
}

// routeForward builds the waypoints of a forward flow: a straight line
// when the attach points align, one corner otherwise. The classified
// sides are the first candidate; when their route would pass through
// another node the router falls back to alternate side pairs (cross
// exit into the facing side, late bend off the forward side) and keeps
// the classified route only when every fallback crosses too.
func (l *layout) routeForward(id string) {
	f := l.g.Flows[id]
	fi := l.flows[id]
	srcBox, dstBox := l.nodeBoxes[f.SourceRef], l.nodeBoxes[f.TargetRef]
	if srcBox == nil || dstBox == nil {
		// tolerate degenerate inputs, the flow just has no geometry
		return
	}

	s, e := fi.SrcSide.Side(), fi.DstSide.Side()
	type candidate struct {
		exit, entry geo.Side
	}
	cands := []candidate{{s, e}}
	if s.IsVertical() {
		cands = append(cands, candidate{s, s.Opposite()})
	}
	if s != geo.Right {
		cands = append(cands, candidate{geo.Right, e})
	}
	if s != geo.Right || e != geo.Left {
		cands = append(cands, candidate{geo.Right, geo.Left})
	}

	var route geo.Route
	var chosen candidate
	clean := false
	for _, c := range cands {
		r := l.buildForwardRoute(c.exit, c.entry, srcBox, dstBox)
		if r == nil {
			continue
		}
		if route == nil {
			route, chosen = r, c
		}
		if !l.routeHitsNodes(r, f.SourceRef, f.TargetRef) {
			route, chosen = r, c
			clean = true
			break
		}
	}
	if route == nil {
		return
	}
	if !clean {
		l.warnf("flow %q kept a route through other nodes, all fallbacks crossed", id)
	}

	fi.Route = compactRoute(route)
	fi.SrcSide = DirectionOf(chosen.exit)
	fi.DstSide = DirectionOf(chosen.entry)
}

// buildForwardRoute connects two side centers orthogonally. Mixed-axis
// sides make an L with the corner at the layer of whichever endpoint
// moves across; same-axis sides go straight or Z through the midline.
// Pairs whose first or last leg would cut back through the endpoint's
// own box return nil.
func (l *layout) buildForwardRoute(exit, entry geo.Side, srcBox, dstBox *geo.Box) geo.Route {
	p0 := srcBox.SideCenter(exit)
	pn := dstBox.SideCenter(entry)

	var route geo.Route
	switch {
	case exit.IsHorizontal() && entry.IsHorizontal():
		if geo.PrecisionCompare(p0.Y, pn.Y, geo.Epsilon) == 0 {
			route = geo.Route{p0, pn}
		} else {
			midX := (p0.X + pn.X) / 2
			route = geo.Route{p0, geo.NewPoint(midX, p0.Y), geo.NewPoint(midX, pn.Y), pn}
		}
	case exit.IsVertical() && entry.IsVertical():
		if geo.PrecisionCompare(p0.X, pn.X, geo.Epsilon) == 0 {
			route = geo.Route{p0, pn}
		} else {
			midY := (p0.Y + pn.Y) / 2
			route = geo.Route{p0, geo.NewPoint(p0.X, midY), geo.NewPoint(pn.X, midY), pn}
		}
	case exit.IsHorizontal() && entry.IsVertical():
		route = geo.Route{p0, geo.NewPoint(pn.X, p0.Y), pn}
	default:
		route = geo.Route{p0, geo.NewPoint(p0.X, pn.Y), pn}
	}

	if !stubLeaves(route[0], route[1], exit) {
		return nil
	}
	if !stubLeaves(route[len(route)-1], route[len(route)-2], entry) {
		return nil
	}
	return route
}

// compactRoute drops duplicate and collinear intermediate waypoints.
func compactRoute(route geo.Route) geo.Route {
	if len(route) < 2 {
		return route
	}
	out := geo.Route{route[0]}
	for i := 1; i < len(route); i++ {
		p := route[i]
		last := out[len(out)-1]
		if p.Coincides(last) {
			continue
		}
		if len(out) >= 2 {
			prev := out[len(out)-2]
			sameX := geo.PrecisionCompare(prev.X, last.X, geo.Epsilon) == 0 && geo.PrecisionCompare(last.X, p.X, geo.Epsilon) == 0
			sameY := geo.PrecisionCompare(prev.Y, last.Y, geo.Epsilon) == 0 && geo.PrecisionCompare(last.Y, p.Y, geo.Epsilon) == 0
			if sameX || sameY {
				out[len(out)-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}
