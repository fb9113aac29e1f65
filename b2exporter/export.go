// Package b2exporter flattens a layout result into the serializable
// geometry contract. Missing boxes or routes produce partial geometry,
// never a panic.
package b2exporter

import (
	"oss.terrastruct.com/b2/b2layout"
	"oss.terrastruct.com/b2/b2target"
	"oss.terrastruct.com/b2/lib/geo"
)

// Export converts the layout result into a Diagram. Shapes,
// connections, lanes and pools come out in deterministic order:
// sorted ids for shapes and connections, document order for lanes and
// pools.
func Export(res *b2layout.Result) *b2target.Diagram {
	d := &b2target.Diagram{}

	for _, id := range res.Graph.SortedNodeIDs() {
		n := res.Graph.Nodes[id]
		box := res.NodeBoxes[id]
		if box == nil {
			continue
		}
		s := b2target.Shape{
			ID:     id,
			Type:   string(n.Type),
			Label:  n.Name,
			Pos:    point(box.TopLeft),
			Width:  box.Width,
			Height: box.Height,
		}
		if nl := res.NodeLabels[id]; nl != nil {
			s.LabelPosition = nl.Position.String()
			s.LabelBox = boxPtr(nl.Box)
		}
		d.Shapes = append(d.Shapes, s)
	}

	for _, id := range res.Graph.SortedFlowIDs() {
		f := res.Graph.Flows[id]
		fi := res.Flows[id]
		if fi == nil {
			continue
		}
		c := b2target.Connection{
			ID:            id,
			Src:           f.SourceRef,
			Dst:           f.TargetRef,
			Label:         f.Name,
			SrcSide:       fi.SrcSide.Side().String(),
			DstSide:       fi.DstSide.Side().String(),
			IsBackFlow:    fi.IsBackFlow,
			IsMessageFlow: fi.IsMessageFlow,
			LabelBox:      boxPtr(fi.LabelBox),
		}
		for _, p := range fi.Route {
			c.Route = append(c.Route, point(p))
		}
		d.Connections = append(d.Connections, c)
	}

	for _, lane := range res.Graph.Lanes {
		box := res.LaneBoxes[lane.ID]
		if box == nil {
			continue
		}
		d.Lanes = append(d.Lanes, b2target.LaneBox{
			ID:     lane.ID,
			Label:  lane.Name,
			Box:    boxVal(box),
			Parent: lane.ParentLane,
		})
	}

	for _, pool := range res.Graph.Pools {
		box := res.PoolBoxes[pool.ID]
		if box == nil {
			continue
		}
		d.Pools = append(d.Pools, b2target.PoolBox{
			ID:    pool.ID,
			Label: pool.Name,
			Box:   boxVal(box),
		})
	}

	return d
}

// Coordinates are truncated so the exported geometry is stable across
// machines. Row centering divides lane heights, which can produce
// long float tails.
func point(p *geo.Point) b2target.Point {
	if p == nil {
		return b2target.Point{}
	}
	return b2target.Point{X: geo.TruncateDecimals(p.X), Y: geo.TruncateDecimals(p.Y)}
}

func boxVal(b *geo.Box) b2target.Box {
	if b == nil {
		return b2target.Box{}
	}
	return b2target.Box{
		X:      geo.TruncateDecimals(b.TopLeft.X),
		Y:      geo.TruncateDecimals(b.TopLeft.Y),
		Width:  b.Width,
		Height: b.Height,
	}
}

func boxPtr(b *geo.Box) *b2target.Box {
	if b == nil {
		return nil
	}
	v := boxVal(b)
	return &v
}
