package b2layout

import (
	"context"
	"fmt"
	"sort"

	"cdr.dev/slog"

	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/go2"
	"oss.terrastruct.com/b2/lib/log"
)

type cell struct {
	lane  string
	layer int
	row   int
}

// cellReserved marks a cell held free for loop routing rather than
// occupied by a node.
const cellReserved = ""

// assigner walks the graph forward from its start nodes and gives
// every node a (lane, layer, row). Rules depend on how an edge
// relates source and target: same-lane edges continue straight,
// cross-lane edges jump or bend, gateway fan-outs spread
// symmetrically, loop edges are deferred entirely to the router.
type assigner struct {
	g         *b2graph.Graph
	backEdges map[string]bool

	positions map[string]*Position
	occupied  map[cell]string

	// targets of back edges get the cell after them reserved, so loop
	// entries always have an approach free of nodes
	loopTargets map[string]bool

	flowInfos map[string]*FlowInfo

	warnings []string
}

func newAssigner(g *b2graph.Graph, backEdges map[string]bool) *assigner {
	a := &assigner{
		g:           g,
		backEdges:   backEdges,
		positions:   make(map[string]*Position),
		occupied:    make(map[cell]string),
		loopTargets: make(map[string]bool),
		flowInfos:   make(map[string]*FlowInfo),
	}
	for id := range backEdges {
		if f := g.Flows[id]; f != nil {
			a.loopTargets[f.TargetRef] = true
		}
	}
	return a
}

func (a *assigner) run(ctx context.Context) {
	for _, id := range a.g.SortedFlowIDs() {
		f := a.g.Flows[id]
		fi := &FlowInfo{}
		if a.backEdges[id] {
			fi.IsBackFlow = true
		} else if !a.samePool(f.SourceRef, f.TargetRef) {
			fi.IsMessageFlow = true
		}
		a.flowInfos[id] = fi
	}

	queue := []string{}
	for _, start := range a.g.StartNodes() {
		laneID := a.laneID(start.ID)
		a.place(start.ID, laneID, 0, 0)
		queue = append(queue, start.ID)
	}

	// Bounded: a node re-enqueues only when its layer grows, and
	// layers never shrink.
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := a.g.Nodes[id]
		if n == nil || a.positions[id] == nil {
			continue
		}

		outs := a.forwardOutgoing(n)
		var moved []string
		if len(outs) > 1 {
			moved = a.assignFanOut(n, outs)
		} else if len(outs) == 1 {
			moved = a.assignSuccessor(n, outs[0])
		}
		queue = append(queue, moved...)
	}

	// Every node must end up positioned; a gap is a data bug in the
	// source graph, not a reason to fail the layout.
	for _, id := range a.g.SortedNodeIDs() {
		if a.positions[id] != nil {
			continue
		}
		laneID := a.laneID(id)
		a.place(id, laneID, 0, 0)
		a.warnings = append(a.warnings, fmt.Sprintf("node %q is not reachable from any start event, defaulted to the first position of lane %q", id, laneID))
	}

	a.finalizeFlowSides()

	log.Debug(ctx, "assigned positions", slog.F("nodes", len(a.positions)))
}

// forwardOutgoing filters a node's outgoing flows down to the ones
// that drive layering: no back edges, no message flows.
func (a *assigner) forwardOutgoing(n *b2graph.Node) []*b2graph.Flow {
	var outs []*b2graph.Flow
	for _, id := range n.Outgoing {
		f := a.g.Flows[id]
		if f == nil {
			continue
		}
		fi := a.flowInfos[id]
		if fi.IsBackFlow || fi.IsMessageFlow {
			continue
		}
		outs = append(outs, f)
	}
	return outs
}

func (a *assigner) laneID(nodeID string) string {
	if lane := a.g.LaneOf(nodeID); lane != nil {
		return lane.ID
	}
	// gateways spanning lanes and orphans fall back to the lane of the
	// first positioned predecessor, else the first lane
	if n := a.g.Nodes[nodeID]; n != nil {
		for _, inID := range n.Incoming {
			f := a.g.Flows[inID]
			if f == nil {
				continue
			}
			if pos := a.positions[f.SourceRef]; pos != nil {
				return pos.Lane
			}
		}
	}
	if leaves := a.g.LeafLanes(); len(leaves) > 0 {
		return leaves[0].ID
	}
	return ""
}

// assignSuccessor positions the target of a single forward edge.
func (a *assigner) assignSuccessor(src *b2graph.Node, f *b2graph.Flow) []string {
	srcPos := a.positions[src.ID]
	dstLane := a.laneID(f.TargetRef)

	if a.positions[f.TargetRef] != nil {
		return a.pullForward(f.TargetRef, a.requiredLayer(srcPos, dstLane))
	}

	switch {
	case dstLane == srcPos.Lane:
		// straight continuation
		a.place(f.TargetRef, dstLane, srcPos.Layer+1, srcPos.Row)
	case a.freePath(srcPos.Lane, dstLane, srcPos.Layer):
		// straight perpendicular jump into the neighboring lane
		a.place(f.TargetRef, dstLane, srcPos.Layer, 0)
	default:
		// something sits between the lanes, an L route is needed
		a.place(f.TargetRef, dstLane, srcPos.Layer+1, 0)
	}
	return []string{f.TargetRef}
}

// assignFanOut positions every output of a branching node at the next
// layer. Same-lane outputs spread symmetrically around the gateway's
// row; cross-lane outputs pin to row 0 of their lane. Outputs are
// ordered same lane first, then by lane distance, so rows read
// top to bottom.
func (a *assigner) assignFanOut(gw *b2graph.Node, outs []*b2graph.Flow) []string {
	gwPos := a.positions[gw.ID]

	type out struct {
		flow     *b2graph.Flow
		lane     string
		laneDist int
		order    int
	}
	all := make([]out, 0, len(outs))
	gwLaneIdx := a.g.LaneIndex(gwPos.Lane)
	for i, f := range outs {
		lane := a.laneID(f.TargetRef)
		dist := go2.Abs(a.g.LaneIndex(lane) - gwLaneIdx)
		if lane == gwPos.Lane {
			dist = 0
		}
		all = append(all, out{flow: f, lane: lane, laneDist: dist, order: i})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].laneDist != all[j].laneDist {
			return all[i].laneDist < all[j].laneDist
		}
		return all[i].order < all[j].order
	})

	var sameLane, crossLane []out
	for _, o := range all {
		if o.lane == gwPos.Lane {
			sameLane = append(sameLane, o)
		} else {
			crossLane = append(crossLane, o)
		}
	}

	// N same-lane outputs get row offsets forming a contiguous range
	// of length N around the gateway row: [-N/2 .. N/2] when N is odd,
	// [-(N/2-1) .. N/2] when N is even. A single output stays put.
	n := len(sameLane)
	start := 0
	if n > 0 {
		if n%2 == 1 {
			start = -(n / 2)
		} else {
			start = -(n/2 - 1)
		}
	}

	var moved []string
	for i, o := range sameLane {
		dst := o.flow.TargetRef
		if a.positions[dst] != nil {
			moved = append(moved, a.pullForward(dst, gwPos.Layer+1)...)
			continue
		}
		a.place(dst, gwPos.Lane, gwPos.Layer+1, gwPos.Row+start+i)
		moved = append(moved, dst)
	}
	for _, o := range crossLane {
		dst := o.flow.TargetRef
		if a.positions[dst] != nil {
			moved = append(moved, a.pullForward(dst, gwPos.Layer+1)...)
			continue
		}
		a.place(dst, o.lane, gwPos.Layer+1, 0)
		moved = append(moved, dst)
	}
	return moved
}

// requiredLayer is the minimum layer the target of a forward edge may
// sit at: one past the source for same-lane edges, the source's own
// layer for cross-lane jumps.
func (a *assigner) requiredLayer(srcPos *Position, dstLane string) int {
	if dstLane == srcPos.Lane {
		return srcPos.Layer + 1
	}
	return srcPos.Layer
}

// pullForward moves an already-positioned multi-input node forward to
// the given layer if it currently sits too early. Positions are never
// pushed backward; first writer wins otherwise.
func (a *assigner) pullForward(id string, minLayer int) []string {
	pos := a.positions[id]
	if pos.Layer >= minLayer {
		return nil
	}
	a.unplace(id)
	a.place(id, pos.Lane, minLayer, pos.Row)
	return []string{id}
}

// place claims the first free row at or spiraling out from the wanted
// row and records the position. Cells already claimed, including loop
// reservations, are never overwritten.
func (a *assigner) place(id, lane string, layer, row int) {
	row = a.freeRow(lane, layer, row)
	a.positions[id] = &Position{Lane: lane, Layer: layer, Row: row}
	a.occupied[cell{lane, layer, row}] = id

	if a.loopTargets[id] {
		below := cell{lane, layer, row + 1}
		if _, taken := a.occupied[below]; !taken {
			a.occupied[below] = cellReserved
		}
	}
}

func (a *assigner) unplace(id string) {
	pos := a.positions[id]
	if pos == nil {
		return
	}
	c := cell{pos.Lane, pos.Layer, pos.Row}
	if a.occupied[c] == id {
		delete(a.occupied, c)
	}
	if a.loopTargets[id] {
		below := cell{pos.Lane, pos.Layer, pos.Row + 1}
		if a.occupied[below] == cellReserved {
			delete(a.occupied, below)
		}
	}
	delete(a.positions, id)
}

// freeRow probes row, row+1, row-1, row+2, ... until a free cell.
func (a *assigner) freeRow(lane string, layer, row int) int {
	for delta := 0; ; delta++ {
		if _, taken := a.occupied[cell{lane, layer, row + delta}]; !taken {
			return row + delta
		}
		if delta > 0 {
			if _, taken := a.occupied[cell{lane, layer, row - delta}]; !taken {
				return row - delta
			}
		}
	}
}

// freePath reports whether no node occupies any lane strictly between
// two lanes at the given layer, i.e. a straight perpendicular jump
// cannot hit anything.
func (a *assigner) freePath(laneA, laneB string, layer int) bool {
	ia, ib := a.g.LaneIndex(laneA), a.g.LaneIndex(laneB)
	if ia < 0 || ib < 0 {
		return false
	}
	lo, hi := go2.Min(ia, ib), go2.Max(ia, ib)
	leaves := a.g.LeafLanes()
	for i := lo + 1; i < hi; i++ {
		if a.occupiedAt(leaves[i].ID, layer) {
			return false
		}
	}
	return true
}

func (a *assigner) occupiedAt(lane string, layer int) bool {
	for _, pos := range a.positions {
		if pos.Lane == lane && pos.Layer == layer {
			return true
		}
	}
	return false
}

func (a *assigner) samePool(nodeA, nodeB string) bool {
	la, lb := a.g.LaneOf(nodeA), a.g.LaneOf(nodeB)
	if la == nil || lb == nil {
		return true
	}
	return a.g.SamePool(la.ID, lb.ID)
}

// finalizeFlowSides derives exit/entry direction tokens for every
// forward flow from the final positions. Done in one pass at the end
// because pull-forwards can reclassify edges assigned earlier. Back
// flows and message flows keep null sides: their routers own that
// decision.
func (a *assigner) finalizeFlowSides() {
	for _, id := range a.g.SortedFlowIDs() {
		f := a.g.Flows[id]
		fi := a.flowInfos[id]
		if fi.IsBackFlow || fi.IsMessageFlow {
			continue
		}
		srcPos, dstPos := a.positions[f.SourceRef], a.positions[f.TargetRef]
		if srcPos == nil || dstPos == nil {
			continue
		}
		branching := len(a.forwardOutgoing(a.g.Nodes[f.SourceRef])) > 1
		fi.SrcSide, fi.DstSide = a.classifySides(srcPos, dstPos, branching)
	}
}

func (a *assigner) classifySides(srcPos, dstPos *Position, branching bool) (srcSide, dstSide Direction) {
	if srcPos.Lane == dstPos.Lane {
		if srcPos.Row == dstPos.Row {
			// straight continuation
			return DirectionForward, DirectionBackward
		}
		toward := DirectionCrossForward
		if dstPos.Row < srcPos.Row {
			toward = DirectionCrossBackward
		}
		if branching {
			// fan-out to another row: drop or rise out of the source,
			// then enter the target the way forward flows do
			return toward, DirectionBackward
		}
		// converging on a node in another row: leave forward along the
		// source's own row, then bend into the side facing it. Bending
		// at the source's layer instead would cut through the sibling
		// the target lines up with.
		return DirectionForward, toward.Opposite()
	}

	srcIdx, dstIdx := a.g.LaneIndex(srcPos.Lane), a.g.LaneIndex(dstPos.Lane)
	toward := DirectionCrossForward
	if dstIdx < srcIdx {
		toward = DirectionCrossBackward
	}
	if srcPos.Layer == dstPos.Layer {
		// straight perpendicular jump
		return toward, toward.Opposite()
	}
	if dstPos.Layer > srcPos.Layer {
		if branching {
			// a fan-out sibling may sit straight ahead of the gateway,
			// so cross-lane outputs leave through the cross side
			return toward, DirectionBackward
		}
		// L route: out along the flow axis, then across into the lane
		return DirectionForward, toward.Opposite()
	}
	// forward cross edge landing at an earlier layer: enter like a
	// forward flow would
	return toward, DirectionBackward
}
