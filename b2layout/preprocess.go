package b2layout

import (
	"context"

	"cdr.dev/slog"

	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/log"
)

// collapseXORMerges removes exclusive gateways that only merge
// (two or more incoming, exactly one outgoing) and re-points their
// incoming flows to the outgoing flow's target, preserving flow ids.
// The merge point then renders as multiple arrows converging on the
// downstream node instead of a diamond.
func collapseXORMerges(ctx context.Context, g *b2graph.Graph) {
	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if n.Type != b2graph.ExclusiveGateway {
			continue
		}
		if len(n.Incoming) < 2 || len(n.Outgoing) != 1 {
			continue
		}
		out := g.Flows[n.Outgoing[0]]
		if out == nil {
			// malformed, leave the gateway alone
			continue
		}
		target := g.Nodes[out.TargetRef]
		if target == nil {
			continue
		}

		log.Debug(ctx, "collapsing exclusive merge gateway", slog.F("gateway", n.ID), slog.F("target", target.ID))

		// the gateway's outgoing flow disappears with it
		target.Incoming = removeID(target.Incoming, out.ID)
		delete(g.Flows, out.ID)

		for _, inID := range n.Incoming {
			in := g.Flows[inID]
			if in == nil {
				continue
			}
			in.TargetRef = target.ID
			target.Incoming = append(target.Incoming, in.ID)
		}

		delete(g.Nodes, n.ID)
		if lane := g.LaneOf(n.ID); lane != nil {
			lane.Nodes = removeID(lane.Nodes, n.ID)
		}
	}
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, cur := range ids {
		if cur != id {
			out = append(out, cur)
		}
	}
	return out
}

// detectBackEdges finds the flows that close cycles: a depth-first
// traversal from every start node, where a flow into a node still on
// the traversal stack is a back edge. A flow into a node that was
// visited but already popped is an ordinary forward cross edge.
//
// The DFS is iterative with an explicit frame stack so deep graphs
// cannot blow the goroutine stack.
func detectBackEdges(g *b2graph.Graph) map[string]bool {
	back := make(map[string]bool)
	visited := make(map[string]bool)
	onStack := make(map[string]bool)

	type frame struct {
		id string
		i  int
	}

	for _, start := range g.StartNodes() {
		if visited[start.ID] {
			continue
		}
		visited[start.ID] = true
		onStack[start.ID] = true
		stack := []frame{{id: start.ID}}

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			n := g.Nodes[f.id]
			if n == nil || f.i >= len(n.Outgoing) {
				onStack[f.id] = false
				stack = stack[:len(stack)-1]
				continue
			}
			flowID := n.Outgoing[f.i]
			f.i++

			flow := g.Flows[flowID]
			if flow == nil {
				continue
			}
			target := flow.TargetRef
			if onStack[target] {
				back[flowID] = true
				continue
			}
			if visited[target] {
				continue
			}
			visited[target] = true
			onStack[target] = true
			stack = append(stack, frame{id: target})
		}
	}
	return back
}
