package b2target_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/b2/b2target"
)

func TestBoundingBox(t *testing.T) {
	t.Parallel()

	d := &b2target.Diagram{
		Shapes: []b2target.Shape{
			{ID: "a", Pos: b2target.Point{X: 10, Y: 20}, Width: 100, Height: 80},
		},
		Connections: []b2target.Connection{
			{ID: "f", Route: []b2target.Point{{X: 110, Y: 60}, {X: 300, Y: 60}}},
		},
		Lanes: []b2target.LaneBox{
			{ID: "l", Box: b2target.Box{X: 0, Y: 0, Width: 400, Height: 150}},
		},
	}

	bb := d.BoundingBox()
	assert.Equal(t, b2target.Box{X: 0, Y: 0, Width: 400, Height: 150}, bb)

	var empty *b2target.Diagram
	assert.Equal(t, b2target.Box{}, empty.BoundingBox())
}

func TestLookups(t *testing.T) {
	t.Parallel()

	d := &b2target.Diagram{
		Shapes:      []b2target.Shape{{ID: "a"}, {ID: "b"}},
		Connections: []b2target.Connection{{ID: "f1"}},
	}

	assert.Equal(t, "b", d.Shape("b").ID)
	assert.Nil(t, d.Shape("missing"))
	assert.Equal(t, "f1", d.Connection("f1").ID)
	assert.Nil(t, d.Connection("missing"))
}
