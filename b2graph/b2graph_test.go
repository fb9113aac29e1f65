package b2graph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/b2/b2graph"
)

func mustGraph(t *testing.T, s string) *b2graph.Graph {
	t.Helper()
	var g b2graph.Graph
	err := json.Unmarshal([]byte(s), &g)
	assert.NoError(t, err)
	return &g
}

func TestUnmarshalConnectsFlows(t *testing.T) {
	t.Parallel()

	g := mustGraph(t, `{
		"elements": {
			"start": {"type": "startEvent"},
			"a": {"type": "task"},
			"end": {"type": "endEvent"}
		},
		"flows": {
			"f1": {"sourceRef": "start", "targetRef": "a"},
			"f2": {"sourceRef": "a", "targetRef": "end"}
		}
	}`)

	assert.Equal(t, "start", g.Nodes["start"].ID)
	assert.Equal(t, []string{"f1"}, g.Nodes["start"].Outgoing)
	assert.Equal(t, []string{"f1"}, g.Nodes["a"].Incoming)
	assert.Equal(t, []string{"f2"}, g.Nodes["a"].Outgoing)
	assert.Equal(t, []string{"f2"}, g.Nodes["end"].Incoming)
}

func TestUnmarshalKeepsExplicitEdgeLists(t *testing.T) {
	t.Parallel()

	// document order of outgoing flows drives fan-out rows, so an
	// explicit list must survive as given, not get rebuilt sorted
	g := mustGraph(t, `{
		"elements": {
			"start": {"type": "startEvent", "outgoing": ["f2", "f1"]},
			"a": {"type": "task"},
			"b": {"type": "task"}
		},
		"flows": {
			"f1": {"sourceRef": "start", "targetRef": "a"},
			"f2": {"sourceRef": "start", "targetRef": "b"}
		}
	}`)

	assert.Equal(t, []string{"f2", "f1"}, g.Nodes["start"].Outgoing)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		graph string
		exp   []string
	}{
		{
			name: "valid",
			graph: `{
				"elements": {
					"start": {"type": "startEvent"},
					"end": {"type": "endEvent"}
				},
				"flows": {"f1": {"sourceRef": "start", "targetRef": "end"}}
			}`,
		},
		{
			name: "unknown type with suggestion",
			graph: `{
				"elements": {
					"start": {"type": "StartEvent"},
					"end": {"type": "endEvent"}
				}
			}`,
			exp: []string{
				`node "start" has unknown type "StartEvent" (did you mean "startEvent"?)`,
				"graph has no start event",
			},
		},
		{
			name: "dangling flow",
			graph: `{
				"elements": {
					"start": {"type": "startEvent"},
					"end": {"type": "endEvent"}
				},
				"flows": {"f1": {"sourceRef": "start", "targetRef": "ghost"}}
			}`,
			exp: []string{`flow "f1" references unknown target "ghost"`},
		},
		{
			name: "no start or end",
			graph: `{
				"elements": {"a": {"type": "task"}}
			}`,
			exp: []string{
				"graph has no start event",
				"graph has no end event",
			},
		},
		{
			name: "lane references",
			graph: `{
				"elements": {
					"start": {"type": "startEvent"},
					"end": {"type": "endEvent"}
				},
				"lanes": [{"id": "l1", "elements": ["ghost"], "poolId": "nope"}]
			}`,
			exp: []string{
				`lane "l1" references unknown node "ghost"`,
				`lane "l1" references unknown pool "nope"`,
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := mustGraph(t, tc.graph).Validate()
			if len(tc.exp) == 0 {
				assert.NoError(t, err)
				return
			}
			var verr *b2graph.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.exp, verr.Errors)
		})
	}
}

func TestCopyIsDeep(t *testing.T) {
	t.Parallel()

	g := mustGraph(t, `{
		"elements": {
			"start": {"type": "startEvent"},
			"end": {"type": "endEvent"}
		},
		"flows": {"f1": {"sourceRef": "start", "targetRef": "end"}},
		"lanes": [{"id": "l1", "elements": ["start", "end"]}]
	}`)

	g2 := g.Copy()
	g2.Nodes["start"].Outgoing[0] = "mutated"
	g2.Flows["f1"].TargetRef = "mutated"
	g2.Lanes[0].Nodes[0] = "mutated"

	assert.Equal(t, []string{"f1"}, g.Nodes["start"].Outgoing)
	assert.Equal(t, "end", g.Flows["f1"].TargetRef)
	assert.Equal(t, "start", g.Lanes[0].Nodes[0])
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	g := mustGraph(t, `{
		"elements": {
			"start": {"type": "startEvent", "name": "go"},
			"end": {"type": "endEvent"}
		},
		"flows": {"f1": {"sourceRef": "start", "targetRef": "end", "name": "done"}},
		"lanes": [{"id": "l1", "name": "Lane", "elements": ["start", "end"], "poolId": "p1"}],
		"pools": [{"id": "p1", "name": "Pool", "lanes": ["l1"]}]
	}`)

	b, err := json.Marshal(g)
	assert.NoError(t, err)

	var g2 b2graph.Graph
	assert.NoError(t, json.Unmarshal(b, &g2))
	assert.Equal(t, g.SortedNodeIDs(), g2.SortedNodeIDs())
	assert.Equal(t, g.Flows["f1"].Name, g2.Flows["f1"].Name)
	assert.Equal(t, g.Lanes[0].ID, g2.Lanes[0].ID)
	assert.Equal(t, g.Pools[0].Lanes, g2.Pools[0].Lanes)
}
