package textmeasure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oss.terrastruct.com/b2/lib/textmeasure"
)

func TestCellCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, textmeasure.CellCount("hello"))
	assert.Equal(t, 5, textmeasure.CellCount("héllo"), "accented runes are one cell, not their byte count")
	assert.Equal(t, 4, textmeasure.CellCount("注文"), "wide runes are two cells")
	assert.Equal(t, 0, textmeasure.CellCount(""))
}

func TestWordCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2, textmeasure.WordCount("approve order"))
	assert.Equal(t, 1, textmeasure.WordCount("approve"))
	assert.Equal(t, 0, textmeasure.WordCount("  "))
}
