package b2_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/b2"
	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/log"
)

func TestLayoutSuccessEnvelope(t *testing.T) {
	t.Parallel()

	var g b2graph.Graph
	err := json.Unmarshal([]byte(`{
		"elements": {
			"start": {"type": "startEvent"},
			"work": {"type": "task", "name": "Work"},
			"end": {"type": "endEvent"}
		},
		"flows": {
			"f1": {"sourceRef": "start", "targetRef": "work"},
			"f2": {"sourceRef": "work", "targetRef": "end"}
		},
		"lanes": [{"id": "l1", "elements": ["start", "work", "end"]}]
	}`), &g)
	assert.NoError(t, err)

	ctx := log.WithTB(context.Background(), t)
	res, err := b2.Layout(ctx, &g, nil)
	assert.NoError(t, err)

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.NotNil(t, res.Diagram)
	assert.Len(t, res.Diagram.Shapes, 3)

	b, err := json.Marshal(res)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"success":true`)
	assert.Contains(t, string(b), `"geometry"`)
}

func TestLayoutValidationFailureEnvelope(t *testing.T) {
	t.Parallel()

	var g b2graph.Graph
	err := json.Unmarshal([]byte(`{
		"elements": {
			"work": {"type": "task"}
		},
		"flows": {
			"f1": {"sourceRef": "work", "targetRef": "ghost"}
		}
	}`), &g)
	assert.NoError(t, err)

	ctx := log.WithTB(context.Background(), t)
	res, err := b2.Layout(ctx, &g, nil)
	assert.NoError(t, err, "validation failures are part of the envelope, not an error")

	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Errors)
	assert.Nil(t, res.Diagram)

	b, err := json.Marshal(res)
	assert.NoError(t, err)
	assert.Contains(t, string(b), `"success":false`)
	assert.NotContains(t, string(b), `"geometry"`)
}
