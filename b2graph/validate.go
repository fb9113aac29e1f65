package b2graph

import (
	"fmt"
	"strings"
)

// ValidationError aggregates every structural problem found in a
// graph. Layout never runs on a graph that failed validation.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "\n")
}

// Validate checks the structural contract of the graph: flow endpoints
// resolve, node types are known, lane references resolve, and there is
// at least one start and one end node. It returns a *ValidationError
// or nil.
func (g *Graph) Validate() error {
	var errs []string

	for _, id := range g.SortedNodeIDs() {
		n := g.Nodes[id]
		if !isKnownNodeType(n.Type) {
			msg := fmt.Sprintf("node %q has unknown type %q", n.ID, n.Type)
			if suggestion := closestNodeType(n.Type); suggestion != "" {
				msg += fmt.Sprintf(" (did you mean %q?)", suggestion)
			}
			errs = append(errs, msg)
		}
	}

	for _, id := range g.SortedFlowIDs() {
		f := g.Flows[id]
		if _, ok := g.Nodes[f.SourceRef]; !ok {
			errs = append(errs, fmt.Sprintf("flow %q references unknown source %q", f.ID, f.SourceRef))
		}
		if _, ok := g.Nodes[f.TargetRef]; !ok {
			errs = append(errs, fmt.Sprintf("flow %q references unknown target %q", f.ID, f.TargetRef))
		}
	}

	for _, l := range g.Lanes {
		for _, nid := range l.Nodes {
			if _, ok := g.Nodes[nid]; !ok {
				errs = append(errs, fmt.Sprintf("lane %q references unknown node %q", l.ID, nid))
			}
		}
		if l.ParentLane != "" && g.Lane(l.ParentLane) == nil {
			errs = append(errs, fmt.Sprintf("lane %q references unknown parent lane %q", l.ID, l.ParentLane))
		}
		if l.PoolID != "" && g.Pool(l.PoolID) == nil {
			errs = append(errs, fmt.Sprintf("lane %q references unknown pool %q", l.ID, l.PoolID))
		}
	}
	for _, p := range g.Pools {
		for _, lid := range p.Lanes {
			if g.Lane(lid) == nil {
				errs = append(errs, fmt.Sprintf("pool %q references unknown lane %q", p.ID, lid))
			}
		}
	}

	hasStart, hasEnd := false, false
	for _, n := range g.Nodes {
		if n.Type.IsStart() {
			hasStart = true
		}
		if n.Type.IsEnd() {
			hasEnd = true
		}
	}
	if !hasStart {
		errs = append(errs, "graph has no start event")
	}
	if !hasEnd {
		errs = append(errs, "graph has no end event")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func isKnownNodeType(t NodeType) bool {
	for _, known := range KnownNodeTypes {
		if t == known {
			return true
		}
	}
	return false
}

// closestNodeType recovers the likely intended token for a
// case-mismatched type, e.g. "StartEvent" -> "startEvent".
func closestNodeType(t NodeType) NodeType {
	for _, known := range KnownNodeTypes {
		if strings.EqualFold(string(t), string(known)) {
			return known
		}
	}
	return ""
}
