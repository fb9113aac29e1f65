package b2layout

import (
	"oss.terrastruct.com/b2/lib/geo"
)

// pathsCollide reports whether two routed paths share a coincident
// horizontal or vertical stretch. Crossing at a point is fine, only
// running on top of each other is a collision. The tolerance absorbs
// rounding noise from row centering.
func pathsCollide(a, b geo.Route, tolerance float64) bool {
	for _, sa := range a.Segments() {
		for _, sb := range b.Segments() {
			if sa.Overlaps(sb, tolerance) {
				return true
			}
		}
	}
	return false
}

// routeCollides tests a candidate route against every already-placed
// flow except the one being routed.
func (l *layout) routeCollides(candidate geo.Route, flowID string) bool {
	for _, otherID := range l.g.SortedFlowIDs() {
		if otherID == flowID {
			continue
		}
		other := l.flows[otherID]
		if other == nil || len(other.Route) == 0 {
			continue
		}
		if pathsCollide(candidate, other.Route, l.sz.CollisionTolerance) {
			return true
		}
	}
	return false
}

// routeHitsNodes reports whether any segment of the route passes
// through a node's interior. The route's own endpoints touch their
// nodes' borders, which does not count.
func (l *layout) routeHitsNodes(route geo.Route, exclude ...string) bool {
	skip := make(map[string]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	for _, seg := range route.Segments() {
		for id, box := range l.nodeBoxes {
			if skip[id] {
				continue
			}
			if box.IntersectsSegment(seg) {
				return true
			}
		}
	}
	return false
}

// claimedSides collects the box sides of a node already used by
// routed flows, as exits (outgoing) or entries (incoming).
func (l *layout) claimedSides(nodeID string, exits bool) map[geo.Side]bool {
	claimed := make(map[geo.Side]bool)
	n := l.g.Nodes[nodeID]
	if n == nil {
		return claimed
	}
	flowIDs := n.Incoming
	if exits {
		flowIDs = n.Outgoing
	}
	for _, id := range flowIDs {
		fi := l.flows[id]
		if fi == nil {
			continue
		}
		d := fi.DstSide
		if exits {
			d = fi.SrcSide
		}
		if s := d.Side(); s != geo.NONE {
			claimed[s] = true
		}
	}
	return claimed
}

// sideFree reports whether any placed route already attaches at the
// exact center of the given side of the node, waypoint for waypoint.
// The message-flow router works off this rather than corridors.
func (l *layout) sideFree(nodeID string, side geo.Side) bool {
	box := l.nodeBoxes[nodeID]
	if box == nil {
		return false
	}
	attach := box.SideCenter(side)
	for _, id := range l.g.SortedFlowIDs() {
		fi := l.flows[id]
		if fi == nil {
			continue
		}
		for _, p := range fi.Route {
			if p.Coincides(attach) {
				return false
			}
		}
	}
	return true
}
