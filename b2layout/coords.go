package b2layout

import (
	"sort"

	"oss.terrastruct.com/b2/b2graph"
	"oss.terrastruct.com/b2/lib/geo"
	"oss.terrastruct.com/b2/lib/go2"
)

// synthesizeCoordinates turns discrete positions into pixel bounds:
// rows are normalized per lane, lanes stack along the cross axis,
// nodes center inside their (layer, row) cell.
func (l *layout) synthesizeCoordinates() {
	l.normalizeRows()
	l.computeLaneBoxes()
	l.computeNodeBoxes()
	l.computeGroupAndPoolBoxes()
}

// normalizeRows shifts rows per lane so the minimum is 0. Symmetric
// branching assigns negative rows on purpose.
func (l *layout) normalizeRows() {
	minRow := make(map[string]int)
	maxRow := make(map[string]int)
	seen := make(map[string]bool)

	for _, pos := range l.positions {
		if !seen[pos.Lane] {
			minRow[pos.Lane], maxRow[pos.Lane] = pos.Row, pos.Row
			seen[pos.Lane] = true
			continue
		}
		minRow[pos.Lane] = go2.Min(minRow[pos.Lane], pos.Row)
		maxRow[pos.Lane] = go2.Max(maxRow[pos.Lane], pos.Row)
	}

	l.maxRows = make(map[string]int)
	l.maxLayer = 0
	for _, lane := range l.g.LeafLanes() {
		if !seen[lane.ID] {
			l.maxRows[lane.ID] = 1
			continue
		}
		l.maxRows[lane.ID] = maxRow[lane.ID] - minRow[lane.ID] + 1
	}
	for _, pos := range l.positions {
		pos.Row -= minRow[pos.Lane]
		l.maxLayer = go2.Max(l.maxLayer, pos.Layer)
	}
}

func (l *layout) laneHeight(laneID string) float64 {
	rows := go2.Max(l.maxRows[laneID], 1)
	return l.sz.LaneBaseHeight + float64(rows-1)*l.sz.RowIncrement
}

func (l *layout) laneWidth() float64 {
	return l.sz.LaneLabelGutter + float64(l.maxLayer+1)*l.sz.ColumnWidth
}

// computeLaneBoxes stacks leaf lanes top to bottom in document order,
// inserting a gap whenever the pool changes.
func (l *layout) computeLaneBoxes() {
	x := 0.
	if len(l.g.Pools) > 0 {
		x = l.sz.PoolLabelGutter
	}
	width := l.laneWidth()

	y := 0.
	var prevPool *b2graph.Pool
	for i, lane := range l.g.LeafLanes() {
		pool := l.g.PoolOf(lane.ID)
		if i > 0 && !samePoolPtr(pool, prevPool) {
			y += l.sz.PoolGap
		}
		prevPool = pool

		h := l.laneHeight(lane.ID)
		l.laneBoxes[lane.ID] = geo.NewBox(geo.NewPoint(x, y), width, h)
		y += h
	}
}

// rowCenter is the Y of a row's center: maxRows rows and maxRows+1
// gaps exactly fill the lane, so spacing stays even no matter how many
// rows there are.
func (l *layout) rowCenter(laneID string, row int) float64 {
	laneBox := l.laneBoxes[laneID]
	if laneBox == nil {
		return 0
	}
	rows := go2.Max(l.maxRows[laneID], 1)
	step := laneBox.Height / float64(rows+1)
	return laneBox.TopLeft.Y + float64(row+1)*step
}

// layerCenter is the X of a layer's column center within a lane.
func (l *layout) layerCenter(laneID string, layer int) float64 {
	laneBox := l.laneBoxes[laneID]
	if laneBox == nil {
		return 0
	}
	return laneBox.TopLeft.X + l.sz.LaneLabelGutter + (float64(layer)+0.5)*l.sz.ColumnWidth
}

func (l *layout) computeNodeBoxes() {
	for _, id := range l.g.SortedNodeIDs() {
		n := l.g.Nodes[id]
		pos := l.positions[id]
		if pos == nil {
			continue
		}
		w, h := l.sz.Footprint(l.classOf(n))
		cx := l.layerCenter(pos.Lane, pos.Layer)
		cy := l.rowCenter(pos.Lane, pos.Row)
		l.nodeBoxes[id] = geo.NewBox(geo.NewPoint(cx-w/2, cy-h/2), w, h)
	}
}

// computeGroupAndPoolBoxes derives lane-group bounds as the union of
// their children, then pool bounds as the union of member lanes plus
// margin and a label gutter.
func (l *layout) computeGroupAndPoolBoxes() {
	// deepest groups first so nested groups union already-computed children
	groups := go2.Filter(l.g.Lanes, func(lane *b2graph.Lane) bool { return lane.IsGroup() })
	sort.SliceStable(groups, func(i, j int) bool {
		return l.laneDepth(groups[i]) > l.laneDepth(groups[j])
	})
	for _, group := range groups {
		var box *geo.Box
		for _, childID := range group.ChildLanes {
			box = box.Union(l.laneBoxes[childID])
		}
		if box != nil {
			l.laneBoxes[group.ID] = box
		}
	}

	for _, pool := range l.g.Pools {
		var box *geo.Box
		for _, laneID := range pool.Lanes {
			box = box.Union(l.laneBoxes[laneID])
		}
		if box == nil {
			continue
		}
		tl := geo.NewPoint(box.TopLeft.X-l.sz.PoolLabelGutter, box.TopLeft.Y-l.sz.PoolMargin)
		l.poolBoxes[pool.ID] = geo.NewBox(tl,
			box.Width+l.sz.PoolLabelGutter+l.sz.PoolMargin,
			box.Height+2*l.sz.PoolMargin,
		)
	}
}

func (l *layout) laneDepth(lane *b2graph.Lane) int {
	depth := 0
	for lane != nil && lane.ParentLane != "" {
		depth++
		lane = l.g.Lane(lane.ParentLane)
	}
	return depth
}

func samePoolPtr(a, b *b2graph.Pool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// columnBoundary is the X of the boundary between layer and layer+1.
// Nodes center inside their columns, so a vertical at a boundary never
// covers one.
func (l *layout) columnBoundary(laneID string, layer int) float64 {
	laneBox := l.laneBoxes[laneID]
	if laneBox == nil {
		return 0
	}
	return laneBox.TopLeft.X + l.sz.LaneLabelGutter + float64(layer+1)*l.sz.ColumnWidth
}

// corridors returns the Ys a back-flow can travel along inside a
// lane without crossing any node: the midpoints between consecutive
// row centers, plus one corridor hugging each lane boundary.
func (l *layout) corridors(laneID string) []float64 {
	laneBox := l.laneBoxes[laneID]
	if laneBox == nil {
		return nil
	}
	rows := go2.Max(l.maxRows[laneID], 1)

	out := []float64{laneBox.TopLeft.Y + l.sz.CorridorOffset}
	for r := 0; r < rows-1; r++ {
		out = append(out, (l.rowCenter(laneID, r)+l.rowCenter(laneID, r+1))/2)
	}
	out = append(out, laneBox.Bottom()-l.sz.CorridorOffset)
	return out
}
