package b2layout

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/log"
)

func mustGraph(t *testing.T, s string) *b2graph.Graph {
	t.Helper()
	var g b2graph.Graph
	err := json.Unmarshal([]byte(s), &g)
	assert.NoError(t, err)
	return &g
}

func TestDetectBackEdges(t *testing.T) {
	t.Parallel()

	t.Run("loop", func(t *testing.T) {
		t.Parallel()

		// start -> a -> b -> c -> end, with c looping back to a
		g := mustGraph(t, `{
			"elements": {
				"start": {"type": "startEvent"},
				"a": {"type": "task"},
				"b": {"type": "task"},
				"c": {"type": "exclusiveGateway"},
				"end": {"type": "endEvent"}
			},
			"flows": {
				"f1": {"sourceRef": "start", "targetRef": "a"},
				"f2": {"sourceRef": "a", "targetRef": "b"},
				"f3": {"sourceRef": "b", "targetRef": "c"},
				"f4": {"sourceRef": "c", "targetRef": "end"},
				"f5": {"sourceRef": "c", "targetRef": "a"}
			}
		}`)

		back := detectBackEdges(g)
		assert.Equal(t, map[string]bool{"f5": true}, back)
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		t.Parallel()

		// two branches reconverging: the second edge into the join is a
		// forward cross edge, not a back edge
		g := mustGraph(t, `{
			"elements": {
				"start": {"type": "startEvent"},
				"a": {"type": "task"},
				"b": {"type": "task"},
				"join": {"type": "task"},
				"end": {"type": "endEvent"}
			},
			"flows": {
				"f1": {"sourceRef": "start", "targetRef": "a"},
				"f2": {"sourceRef": "start", "targetRef": "b"},
				"f3": {"sourceRef": "a", "targetRef": "join"},
				"f4": {"sourceRef": "b", "targetRef": "join"},
				"f5": {"sourceRef": "join", "targetRef": "end"}
			}
		}`)

		assert.Empty(t, detectBackEdges(g))
	})

	t.Run("nested loops", func(t *testing.T) {
		t.Parallel()

		g := mustGraph(t, `{
			"elements": {
				"start": {"type": "startEvent"},
				"a": {"type": "task"},
				"b": {"type": "task"},
				"end": {"type": "endEvent"}
			},
			"flows": {
				"f1": {"sourceRef": "start", "targetRef": "a"},
				"f2": {"sourceRef": "a", "targetRef": "b"},
				"f3": {"sourceRef": "b", "targetRef": "a"},
				"f4": {"sourceRef": "b", "targetRef": "b"},
				"f5": {"sourceRef": "b", "targetRef": "end"}
			}
		}`)

		back := detectBackEdges(g)
		assert.True(t, back["f3"])
		assert.True(t, back["f4"], "self loop is a back edge")
		assert.False(t, back["f1"])
		assert.False(t, back["f2"])
		assert.False(t, back["f5"])
	})
}

func TestCollapseXORMerges(t *testing.T) {
	t.Parallel()

	t.Run("merge gateway collapses", func(t *testing.T) {
		t.Parallel()

		g := mustGraph(t, `{
			"elements": {
				"start": {"type": "startEvent"},
				"a": {"type": "task"},
				"b": {"type": "task"},
				"merge": {"type": "exclusiveGateway"},
				"end": {"type": "endEvent"}
			},
			"flows": {
				"f1": {"sourceRef": "start", "targetRef": "a"},
				"f2": {"sourceRef": "start", "targetRef": "b"},
				"f3": {"sourceRef": "a", "targetRef": "merge"},
				"f4": {"sourceRef": "b", "targetRef": "merge"},
				"f5": {"sourceRef": "merge", "targetRef": "end"}
			},
			"lanes": [{"id": "l1", "elements": ["start", "a", "b", "merge", "end"]}]
		}`)

		ctx := log.WithTB(context.Background(), t)
		collapseXORMerges(ctx, g)

		assert.Nil(t, g.Nodes["merge"])
		assert.Nil(t, g.Flows["f5"])
		assert.Equal(t, "end", g.Flows["f3"].TargetRef)
		assert.Equal(t, "end", g.Flows["f4"].TargetRef)
		assert.ElementsMatch(t, []string{"f3", "f4"}, g.Nodes["end"].Incoming)
		assert.NotContains(t, g.Lanes[0].Nodes, "merge")
	})

	t.Run("branching gateway stays", func(t *testing.T) {
		t.Parallel()

		g := mustGraph(t, `{
			"elements": {
				"start": {"type": "startEvent"},
				"gw": {"type": "exclusiveGateway"},
				"a": {"type": "endEvent"},
				"b": {"type": "endEvent"}
			},
			"flows": {
				"f1": {"sourceRef": "start", "targetRef": "gw"},
				"f2": {"sourceRef": "gw", "targetRef": "a"},
				"f3": {"sourceRef": "gw", "targetRef": "b"}
			}
		}`)

		ctx := log.WithTB(context.Background(), t)
		collapseXORMerges(ctx, g)

		assert.NotNil(t, g.Nodes["gw"])
		assert.Len(t, g.Flows, 3)
	})

	t.Run("parallel merge stays", func(t *testing.T) {
		t.Parallel()

		g := mustGraph(t, `{
			"elements": {
				"start": {"type": "startEvent"},
				"a": {"type": "task"},
				"b": {"type": "task"},
				"merge": {"type": "parallelGateway"},
				"end": {"type": "endEvent"}
			},
			"flows": {
				"f1": {"sourceRef": "start", "targetRef": "a"},
				"f2": {"sourceRef": "start", "targetRef": "b"},
				"f3": {"sourceRef": "a", "targetRef": "merge"},
				"f4": {"sourceRef": "b", "targetRef": "merge"},
				"f5": {"sourceRef": "merge", "targetRef": "end"}
			}
		}`)

		ctx := log.WithTB(context.Background(), t)
		collapseXORMerges(ctx, g)

		assert.NotNil(t, g.Nodes["merge"])
	})
}
