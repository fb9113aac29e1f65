package b2graph

import (
	"encoding/json"
	"sort"

	"oss.terrastruct.com/xdefer"
)

// graphJSON is the document-facing shape of a graph. Elements and
// flows are keyed by id to match how they are referenced; lanes and
// pools are arrays because their order carries meaning (stacking).
type graphJSON struct {
	Elements map[string]*Node `json:"elements"`
	Flows    map[string]*Flow `json:"flows"`
	Lanes    []*Lane          `json:"lanes,omitempty"`
	Pools    []*Pool          `json:"pools,omitempty"`
}

func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(graphJSON{
		Elements: g.Nodes,
		Flows:    g.Flows,
		Lanes:    g.Lanes,
		Pools:    g.Pools,
	})
}

func (g *Graph) UnmarshalJSON(b []byte) (err error) {
	defer xdefer.Errorf(&err, "failed to unmarshal graph")

	var gj graphJSON
	err = json.Unmarshal(b, &gj)
	if err != nil {
		return err
	}

	g.Nodes = gj.Elements
	if g.Nodes == nil {
		g.Nodes = make(map[string]*Node)
	}
	g.Flows = gj.Flows
	if g.Flows == nil {
		g.Flows = make(map[string]*Flow)
	}
	g.Lanes = gj.Lanes
	g.Pools = gj.Pools

	for id, n := range g.Nodes {
		if n.ID == "" {
			n.ID = id
		}
	}
	for id, f := range g.Flows {
		if f.ID == "" {
			f.ID = id
		}
	}
	g.connectFlows()
	return nil
}

// connectFlows fills in Incoming/Outgoing lists from the flow map for
// documents that only carry sourceRef/targetRef. Lists already present
// are kept as-is, their order is meaningful.
func (g *Graph) connectFlows() {
	needs := make(map[string]bool)
	for _, n := range g.Nodes {
		needs[n.ID] = len(n.Incoming) == 0 && len(n.Outgoing) == 0
	}

	flowIDs := make([]string, 0, len(g.Flows))
	for id := range g.Flows {
		flowIDs = append(flowIDs, id)
	}
	sort.Strings(flowIDs)

	for _, id := range flowIDs {
		f := g.Flows[id]
		if src, ok := g.Nodes[f.SourceRef]; ok && needs[src.ID] {
			src.Outgoing = append(src.Outgoing, f.ID)
		}
		if dst, ok := g.Nodes[f.TargetRef]; ok && needs[dst.ID] {
			dst.Incoming = append(dst.Incoming, f.ID)
		}
	}
}
