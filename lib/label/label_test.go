package label_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/b2/lib/geo"
	"oss.terrastruct.com/b2/lib/label"
)

func TestPositionStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range []label.Position{
		label.OutsideTopLeft,
		label.OutsideTopCenter,
		label.OutsideLeftMiddle,
		label.OutsideRightMiddle,
		label.OutsideBottomCenter,
	} {
		assert.Equal(t, p, label.FromString(p.String()))
	}
	assert.Equal(t, label.Unset, label.FromString("nonsense"))
}

func TestBounds(t *testing.T) {
	t.Parallel()

	node := geo.NewBox(geo.NewPoint(100, 100), 40, 40)

	below := label.OutsideBottomCenter.Bounds(node, 70, 16)
	assert.Equal(t, 85., below.TopLeft.X, "centered under the node")
	assert.Equal(t, 145., below.TopLeft.Y, "padded off the bottom border")

	topLeft := label.OutsideTopLeft.Bounds(node, 70, 16)
	assert.Equal(t, 50., topLeft.TopLeft.X, "right edge anchored at the node center")
	assert.Equal(t, 79., topLeft.TopLeft.Y)

	right := label.OutsideRightMiddle.Bounds(node, 70, 16)
	assert.Equal(t, 145., right.TopLeft.X)
	assert.Equal(t, 112., right.TopLeft.Y)

	assert.Nil(t, label.OutsideTopCenter.Bounds(nil, 10, 10))
}

func TestFromSide(t *testing.T) {
	t.Parallel()

	assert.Equal(t, label.OutsideBottomCenter, label.FromSide(geo.Bottom))
	assert.Equal(t, label.OutsideTopCenter, label.FromSide(geo.Top))
	assert.Equal(t, geo.Bottom, label.OutsideBottomCenter.Side())
	assert.Equal(t, geo.Top, label.OutsideTopLeft.Side())
}
