// Package b2target is the serializable output contract of the layout
// engine. Everything here is plain data: the serialization collaborator
// maps it back into a concrete document format.
package b2target

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Shape is the pixel geometry of one node.
type Shape struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`

	Pos    Point   `json:"pos"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	LabelPosition string `json:"labelPosition,omitempty"`
	LabelBox      *Box   `json:"labelBox,omitempty"`
}

// Connection is the routed geometry of one flow: ordered orthogonal
// waypoints from the source border to the target border.
type Connection struct {
	ID    string `json:"id"`
	Src   string `json:"src"`
	Dst   string `json:"dst"`
	Label string `json:"label,omitempty"`

	Route []Point `json:"route"`

	SrcSide string `json:"srcSide,omitempty"`
	DstSide string `json:"dstSide,omitempty"`

	IsBackFlow    bool `json:"isBackFlow,omitempty"`
	IsMessageFlow bool `json:"isMessageFlow,omitempty"`

	LabelBox *Box `json:"labelBox,omitempty"`
}

type LaneBox struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Box   Box    `json:"box"`

	// Parent is set for lanes nested in a lane group.
	Parent string `json:"parent,omitempty"`
}

type PoolBox struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Box   Box    `json:"box"`
}

type Diagram struct {
	Shapes      []Shape      `json:"shapes"`
	Connections []Connection `json:"connections"`
	Lanes       []LaneBox    `json:"lanes,omitempty"`
	Pools       []PoolBox    `json:"pools,omitempty"`
}

// Result is the envelope handed back to callers: either a diagram or
// the list of reasons there is none.
type Result struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
	Diagram *Diagram `json:"geometry,omitempty"`
}

func (d *Diagram) Shape(id string) *Shape {
	for i := range d.Shapes {
		if d.Shapes[i].ID == id {
			return &d.Shapes[i]
		}
	}
	return nil
}

func (d *Diagram) Connection(id string) *Connection {
	for i := range d.Connections {
		if d.Connections[i].ID == id {
			return &d.Connections[i]
		}
	}
	return nil
}

// BoundingBox is the smallest box enclosing every shape, waypoint,
// lane and pool of the diagram.
func (d *Diagram) BoundingBox() Box {
	if d == nil {
		return Box{}
	}
	first := true
	var minX, minY, maxX, maxY float64
	grow := func(x, y float64) {
		if first {
			minX, minY, maxX, maxY = x, y, x, y
			first = false
			return
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	for _, s := range d.Shapes {
		grow(s.Pos.X, s.Pos.Y)
		grow(s.Pos.X+s.Width, s.Pos.Y+s.Height)
	}
	for _, c := range d.Connections {
		for _, p := range c.Route {
			grow(p.X, p.Y)
		}
	}
	for _, l := range d.Lanes {
		grow(l.Box.X, l.Box.Y)
		grow(l.Box.X+l.Box.Width, l.Box.Y+l.Box.Height)
	}
	for _, p := range d.Pools {
		grow(p.Box.X, p.Box.Y)
		grow(p.Box.X+p.Box.Width, p.Box.Y+p.Box.Height)
	}
	return Box{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
