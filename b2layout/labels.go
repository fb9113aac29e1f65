package b2layout

import (
	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/geo"
	"oss.terrastruct.com/b2/lib/label"
	"oss.terrastruct.com/b2/lib/textmeasure"
)

// placeLabels computes external label boxes. Activities render their
// name inside the shape, so only gateways and events get a node label;
// flow labels go to named flows, with the branching-alignment rule for
// gateway fan-outs.
func (l *layout) placeLabels() {
	l.nodeLabels = make(map[string]*NodeLabel)

	for _, id := range l.g.SortedNodeIDs() {
		n := l.g.Nodes[id]
		box := l.nodeBoxes[id]
		if n.Name == "" || box == nil {
			continue
		}
		switch {
		case n.Type.IsGateway():
			l.placeGatewayLabel(n, box)
		case n.Type.IsEvent():
			l.placeEventLabel(n, box)
		}
	}

	for _, id := range l.g.SortedFlowIDs() {
		l.placeFlowLabel(id)
	}
}

// placeGatewayLabel anchors the label above-left of the gateway. The
// dimensions come from a two-entry wrap table: short or single-word
// names stay on one line, everything else wraps to two.
func (l *layout) placeGatewayLabel(n *b2graph.Node, box *geo.Box) {
	w, h := l.gatewayLabelDims(n.Name)
	pos := label.OutsideTopLeft
	l.nodeLabels[n.ID] = &NodeLabel{
		Position: pos,
		Box:      pos.Bounds(box, w, h),
	}
}

func (l *layout) gatewayLabelDims(name string) (w, h float64) {
	cells := textmeasure.CellCount(name)
	if cells <= 10 || textmeasure.WordCount(name) == 1 {
		return float64(cells) * l.sz.LabelCharWidth, l.sz.LabelLineHeight
	}
	half := (cells + 1) / 2
	return float64(half) * l.sz.LabelCharWidth, 2 * l.sz.LabelLineHeight
}

// placeEventLabel puts the label below the event, falling back to
// above, right, then left when a flow already approaches from that
// side. The fallback inspects the resolved route sides, so back flows
// and message flows count with the side they actually attached on.
func (l *layout) placeEventLabel(n *b2graph.Node, box *geo.Box) {
	occupied := l.claimedSides(n.ID, true)
	for s := range l.claimedSides(n.ID, false) {
		occupied[s] = true
	}

	pos := label.OutsideBottomCenter
	for _, cand := range []label.Position{
		label.OutsideBottomCenter,
		label.OutsideTopCenter,
		label.OutsideRightMiddle,
		label.OutsideLeftMiddle,
	} {
		if !occupied[cand.Side()] {
			pos = cand
			break
		}
	}

	w := float64(textmeasure.CellCount(n.Name)) * l.sz.LabelCharWidth
	l.nodeLabels[n.ID] = &NodeLabel{
		Position: pos,
		Box:      pos.Bounds(box, w, l.sz.LabelLineHeight),
	}
}

// placeFlowLabel computes the label box of a named flow. Labels of a
// branching fan-out whose targets all landed in the same layer align
// on a shared X, the rightmost first bend among the named siblings, so
// they read as one column of conditions. Everything else sits at its
// own first bend.
func (l *layout) placeFlowLabel(id string) {
	f := l.g.Flows[id]
	fi := l.flows[id]
	if f.Name == "" || fi == nil || len(fi.Route) < 2 {
		return
	}

	anchor := fi.Route[1]
	if alignX, ok := l.siblingAlignX(f); ok {
		anchor = routePointAtX(fi.Route, alignX)
	}

	w := float64(textmeasure.CellCount(f.Name)) * l.sz.LabelCharWidth
	fi.LabelBox = geo.NewBox(
		geo.NewPoint(anchor.X+label.PADDING, anchor.Y-l.sz.LabelLineHeight-label.PADDING),
		w, l.sz.LabelLineHeight,
	)
}

// siblingAlignX returns the shared label X for a flow that is part of
// a converging fan-out: the source branches, every sibling target sits
// in the same layer, and the alignment point is the rightmost first
// bend among them.
func (l *layout) siblingAlignX(f *b2graph.Flow) (float64, bool) {
	src := l.g.Nodes[f.SourceRef]
	if src == nil {
		return 0, false
	}
	var siblings []*FlowInfo
	layer := -1
	for _, outID := range src.Outgoing {
		out := l.g.Flows[outID]
		sfi := l.flows[outID]
		if out == nil || sfi == nil || sfi.IsBackFlow || sfi.IsMessageFlow {
			continue
		}
		pos := l.positions[out.TargetRef]
		if pos == nil || len(sfi.Route) < 2 {
			return 0, false
		}
		if layer == -1 {
			layer = pos.Layer
		} else if pos.Layer != layer {
			return 0, false
		}
		siblings = append(siblings, sfi)
	}
	if len(siblings) < 2 {
		return 0, false
	}
	alignX := siblings[0].Route[1].X
	for _, sfi := range siblings[1:] {
		alignX = maxf(alignX, sfi.Route[1].X)
	}
	return alignX, true
}

// routePointAtX projects an alignment X onto the route: the point on
// the first horizontal segment spanning that X, or the first bend when
// none does.
func routePointAtX(route geo.Route, x float64) *geo.Point {
	for _, seg := range route.Segments() {
		if !seg.IsHorizontal() {
			continue
		}
		p := geo.NewPoint(x, seg.Start.Y)
		if p.OnOrthogonalSegment(seg.Start, seg.End) {
			return p
		}
	}
	return route[1]
}
