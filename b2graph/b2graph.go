// Package b2graph holds the BPMN process graph consumed by the layout
// pipeline: nodes, sequence flows, lanes and pools. How the graph was
// parsed out of a document is not this package's concern.
package b2graph

import (
	"sort"
)

type NodeType string

const (
	StartEvent             NodeType = "startEvent"
	EndEvent               NodeType = "endEvent"
	IntermediateCatchEvent NodeType = "intermediateCatchEvent"
	IntermediateThrowEvent NodeType = "intermediateThrowEvent"

	Task             NodeType = "task"
	UserTask         NodeType = "userTask"
	ServiceTask      NodeType = "serviceTask"
	ScriptTask       NodeType = "scriptTask"
	ManualTask       NodeType = "manualTask"
	SendTask         NodeType = "sendTask"
	ReceiveTask      NodeType = "receiveTask"
	BusinessRuleTask NodeType = "businessRuleTask"
	CallActivity     NodeType = "callActivity"
	SubProcess       NodeType = "subProcess"

	ExclusiveGateway  NodeType = "exclusiveGateway"
	ParallelGateway   NodeType = "parallelGateway"
	InclusiveGateway  NodeType = "inclusiveGateway"
	EventBasedGateway NodeType = "eventBasedGateway"
)

var KnownNodeTypes = []NodeType{
	StartEvent,
	EndEvent,
	IntermediateCatchEvent,
	IntermediateThrowEvent,
	Task,
	UserTask,
	ServiceTask,
	ScriptTask,
	ManualTask,
	SendTask,
	ReceiveTask,
	BusinessRuleTask,
	CallActivity,
	SubProcess,
	ExclusiveGateway,
	ParallelGateway,
	InclusiveGateway,
	EventBasedGateway,
}

func (t NodeType) IsStart() bool {
	return t == StartEvent
}

func (t NodeType) IsEnd() bool {
	return t == EndEvent
}

func (t NodeType) IsEvent() bool {
	switch t {
	case StartEvent, EndEvent, IntermediateCatchEvent, IntermediateThrowEvent:
		return true
	}
	return false
}

func (t NodeType) IsGateway() bool {
	switch t {
	case ExclusiveGateway, ParallelGateway, InclusiveGateway, EventBasedGateway:
		return true
	}
	return false
}

func (t NodeType) IsActivity() bool {
	return t != "" && !t.IsEvent() && !t.IsGateway()
}

// Node is a single process element. Incoming and Outgoing hold flow
// ids in document order; the layout pipeline relies on that order when
// fanning out gateway outputs.
type Node struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`
	Name string   `json:"name,omitempty"`

	Incoming []string `json:"incoming,omitempty"`
	Outgoing []string `json:"outgoing,omitempty"`
}

// Flow is a directed sequence flow between two nodes. A flow whose
// endpoints live in different pools is a message flow.
type Flow struct {
	ID        string `json:"id"`
	SourceRef string `json:"sourceRef"`
	TargetRef string `json:"targetRef"`
	Name      string `json:"name,omitempty"`
}

// Lane is a band of the diagram grouping nodes. Lanes are ordered: the
// slice order on Graph defines which lane is above which, and the
// routers decide up versus down from it. A lane with child lanes is a
// lane group and holds no nodes itself.
type Lane struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	Nodes      []string `json:"elements,omitempty"`
	ParentLane string   `json:"parentLane,omitempty"`
	ChildLanes []string `json:"childLanes,omitempty"`
	PoolID     string   `json:"poolId,omitempty"`
}

func (l *Lane) IsGroup() bool {
	return len(l.ChildLanes) > 0
}

// Pool is a top-level participant container. Pools only matter when
// message flows connect independent participants.
type Pool struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`

	Lanes []string `json:"lanes,omitempty"`
}

type Graph struct {
	Nodes map[string]*Node
	Flows map[string]*Flow

	// document order, defines lane stacking
	Lanes []*Lane
	Pools []*Pool
}

func NewGraph() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Flows: make(map[string]*Flow),
	}
}

func (g *Graph) Lane(id string) *Lane {
	for _, l := range g.Lanes {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (g *Graph) Pool(id string) *Pool {
	for _, p := range g.Pools {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// LeafLanes returns the lanes that actually hold nodes, in stacking
// order. Lane groups are skipped; their bounds are derived from their
// children.
func (g *Graph) LeafLanes() []*Lane {
	var out []*Lane
	for _, l := range g.Lanes {
		if !l.IsGroup() {
			out = append(out, l)
		}
	}
	return out
}

// LaneIndex is the stacking position of a leaf lane, or -1.
func (g *Graph) LaneIndex(id string) int {
	for i, l := range g.LeafLanes() {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// LaneOf returns the leaf lane a node belongs to, or nil.
func (g *Graph) LaneOf(nodeID string) *Lane {
	for _, l := range g.LeafLanes() {
		for _, id := range l.Nodes {
			if id == nodeID {
				return l
			}
		}
	}
	return nil
}

// PoolOf returns the pool of a lane, walking up through lane groups.
func (g *Graph) PoolOf(laneID string) *Pool {
	l := g.Lane(laneID)
	for l != nil {
		if l.PoolID != "" {
			return g.Pool(l.PoolID)
		}
		if l.ParentLane == "" {
			break
		}
		l = g.Lane(l.ParentLane)
	}
	return nil
}

// SamePool reports whether two lanes belong to the same pool. Lanes
// outside any pool count as one implicit pool.
func (g *Graph) SamePool(laneA, laneB string) bool {
	pa, pb := g.PoolOf(laneA), g.PoolOf(laneB)
	if pa == nil || pb == nil {
		return pa == pb
	}
	return pa.ID == pb.ID
}

// SortedNodeIDs is for deterministic iteration over the node map.
func (g *Graph) SortedNodeIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SortedFlowIDs is for deterministic iteration over the flow map.
func (g *Graph) SortedFlowIDs() []string {
	ids := make([]string, 0, len(g.Flows))
	for id := range g.Flows {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StartNodes returns the start-type nodes in deterministic order.
func (g *Graph) StartNodes() []*Node {
	var out []*Node
	for _, id := range g.SortedNodeIDs() {
		if g.Nodes[id].Type.IsStart() {
			out = append(out, g.Nodes[id])
		}
	}
	return out
}

// Copy deep-copies the graph. The preprocessor rewrites edge lists
// when collapsing merge gateways, and callers keep their input intact.
func (g *Graph) Copy() *Graph {
	g2 := NewGraph()
	for id, n := range g.Nodes {
		n2 := *n
		n2.Incoming = append([]string(nil), n.Incoming...)
		n2.Outgoing = append([]string(nil), n.Outgoing...)
		g2.Nodes[id] = &n2
	}
	for id, f := range g.Flows {
		f2 := *f
		g2.Flows[id] = &f2
	}
	for _, l := range g.Lanes {
		l2 := *l
		l2.Nodes = append([]string(nil), l.Nodes...)
		l2.ChildLanes = append([]string(nil), l.ChildLanes...)
		g2.Lanes = append(g2.Lanes, &l2)
	}
	for _, p := range g.Pools {
		p2 := *p
		p2.Lanes = append([]string(nil), p.Lanes...)
		g2.Pools = append(g2.Pools, &p2)
	}
	return g2
}
