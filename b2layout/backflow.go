package b2layout

import (
	"context"
	"sort"

	"cdr.dev/slog"

	"oss.terrastruct.com/b2/lib/geo"
	"oss.terrastruct.com/b2/lib/log"
)

// routeBackFlow routes a loop edge. The route leaves the source on a
// side no forward flow claimed, travels along a corridor (a Y known to
// be free of nodes), passes the intervening layers, and enters the
// target, preferably on the same side forward flows enter it, so
// inbound arrows align. Candidate side pairs are tried in priority
// order against every placed flow; if nothing is collision-free the
// lowest-priority candidate ships anyway. A bent diagram beats none.
func (l *layout) routeBackFlow(ctx context.Context, id string) {
	f := l.g.Flows[id]
	fi := l.flows[id]
	srcBox, dstBox := l.nodeBoxes[f.SourceRef], l.nodeBoxes[f.TargetRef]
	srcPos, dstPos := l.positions[f.SourceRef], l.positions[f.TargetRef]
	if srcBox == nil || dstBox == nil || srcPos == nil || dstPos == nil {
		return
	}

	crossSide := l.loopCrossSide(srcPos, dstPos)
	corridorY := l.loopCorridor(srcPos, dstPos, crossSide, srcBox, dstBox)

	type candidate struct {
		exit, entry geo.Side
	}
	cands := []candidate{
		{crossSide, geo.Left},
		{crossSide, crossSide},
		{geo.Right, geo.Left},
		{geo.Right, crossSide},
	}
	// sides already claimed by other flows out of the source go last
	claimed := l.claimedSides(f.SourceRef, true)
	sort.SliceStable(cands, func(i, j int) bool {
		return !claimed[cands[i].exit] && claimed[cands[j].exit]
	})

	var route geo.Route
	var chosen candidate
	clean := false
	for _, c := range cands {
		r := l.buildLoopRoute(c.exit, c.entry, corridorY, srcBox, dstBox)
		if r == nil {
			continue
		}
		route, chosen = r, c
		if !l.routeCollides(r, id) && !l.routeHitsNodes(r, f.SourceRef, f.TargetRef) {
			clean = true
			break
		}
	}
	if route == nil {
		l.warnf("back flow %q could not be routed", id)
		return
	}
	if !clean {
		l.warnf("back flow %q kept a colliding route, all fallbacks collided", id)
	}

	fi.Route = compactRoute(route)
	fi.SrcSide = DirectionOf(chosen.exit)
	fi.DstSide = DirectionOf(chosen.entry)

	log.Debug(ctx, "routed back flow",
		slog.F("flow", id),
		slog.F("exit", chosen.exit.String()),
		slog.F("entry", chosen.entry.String()),
		slog.F("clean", clean),
	)
}

// loopCrossSide picks which way the loop arcs: toward the target's
// lane, or toward the target's row for same-lane loops. Equal rows
// arc below, where the assigner reserved the cell under the target.
func (l *layout) loopCrossSide(srcPos, dstPos *Position) geo.Side {
	if srcPos.Lane == dstPos.Lane {
		if dstPos.Row < srcPos.Row {
			return geo.Top
		}
		return geo.Bottom
	}
	if l.g.LaneIndex(dstPos.Lane) < l.g.LaneIndex(srcPos.Lane) {
		return geo.Top
	}
	return geo.Bottom
}

// loopCorridor picks the corridor of the source's lane nearest past
// the endpoints on the arc side. Boundary corridors guarantee one
// always exists.
func (l *layout) loopCorridor(srcPos, dstPos *Position, crossSide geo.Side, srcBox, dstBox *geo.Box) float64 {
	corrs := l.corridors(srcPos.Lane)
	if len(corrs) == 0 {
		if crossSide == geo.Top {
			return srcBox.TopLeft.Y - l.sz.CorridorOffset
		}
		return srcBox.Bottom() + l.sz.CorridorOffset
	}

	if crossSide == geo.Bottom {
		threshold := srcBox.Bottom()
		if srcPos.Lane == dstPos.Lane {
			threshold = maxf(threshold, dstBox.Bottom())
		}
		for _, y := range corrs {
			if y > threshold {
				return y
			}
		}
		return corrs[len(corrs)-1]
	}

	threshold := srcBox.TopLeft.Y
	if srcPos.Lane == dstPos.Lane {
		threshold = minf(threshold, dstBox.TopLeft.Y)
	}
	for i := len(corrs) - 1; i >= 0; i-- {
		if corrs[i] < threshold {
			return corrs[i]
		}
	}
	return corrs[0]
}

// buildLoopRoute assembles the full candidate path for one exit/entry
// side pair: exit stub to the corridor, along the corridor, then the
// approach into the target. Returns nil for pairs that cannot form a
// sane path.
func (l *layout) buildLoopRoute(exit, entry geo.Side, corridorY float64, srcBox, dstBox *geo.Box) geo.Route {
	bend := l.sz.BendMargin

	var route geo.Route
	switch exit {
	case geo.Top, geo.Bottom:
		p0 := srcBox.SideCenter(exit)
		if (exit == geo.Bottom) != (corridorY > p0.Y) {
			// corridor lies behind the exit face
			return nil
		}
		route = geo.Route{p0, geo.NewPoint(p0.X, corridorY)}
	case geo.Right:
		p0 := srcBox.SideCenter(geo.Right)
		exX := srcBox.Right() + bend
		route = geo.Route{p0, geo.NewPoint(exX, p0.Y), geo.NewPoint(exX, corridorY)}
	case geo.Left:
		p0 := srcBox.SideCenter(geo.Left)
		exX := srcBox.TopLeft.X - bend
		route = geo.Route{p0, geo.NewPoint(exX, p0.Y), geo.NewPoint(exX, corridorY)}
	default:
		return nil
	}

	switch entry {
	case geo.Left:
		pn := dstBox.SideCenter(geo.Left)
		apX := dstBox.TopLeft.X - bend
		route = append(route,
			geo.NewPoint(apX, corridorY),
			geo.NewPoint(apX, pn.Y),
			pn,
		)
	case geo.Right:
		pn := dstBox.SideCenter(geo.Right)
		apX := dstBox.Right() + bend
		route = append(route,
			geo.NewPoint(apX, corridorY),
			geo.NewPoint(apX, pn.Y),
			pn,
		)
	case geo.Top, geo.Bottom:
		pn := dstBox.SideCenter(entry)
		if (entry == geo.Bottom) != (corridorY > pn.Y) {
			return nil
		}
		route = append(route,
			geo.NewPoint(pn.X, corridorY),
			pn,
		)
	default:
		return nil
	}
	return route
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
