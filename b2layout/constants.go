package b2layout

// Default pixel constants. They only enter the pipeline through a
// Sizing value, so runs never share mutable configuration and tests
// can shrink or stretch the grid freely.
const (
	DEFAULT_TASK_WIDTH  = 100.
	DEFAULT_TASK_HEIGHT = 80.

	// circular events are smaller than tasks, diamond gateways smallest
	DEFAULT_EVENT_SIDE   = 40.
	DEFAULT_GATEWAY_SIDE = 34.

	// distance between consecutive layer centers along the flow axis
	DEFAULT_COLUMN_WIDTH = 160.

	// a single-row lane is this tall; every extra row adds the increment
	DEFAULT_LANE_BASE_HEIGHT = 150.
	DEFAULT_ROW_INCREMENT    = 110.

	// strip at the start of a lane reserved for its name
	DEFAULT_LANE_LABEL_GUTTER = 30.

	DEFAULT_POOL_MARGIN       = 20.
	DEFAULT_POOL_LABEL_GUTTER = 30.
	DEFAULT_POOL_GAP          = 50.

	// corridors hug lane boundaries at this offset
	DEFAULT_CORRIDOR_OFFSET = 20.

	// how far a back-flow travels away from a node border before bending
	DEFAULT_BEND_MARGIN = 20.

	// two parallel segments closer than this collide
	DEFAULT_COLLISION_TOLERANCE = 2.

	DEFAULT_LABEL_CHAR_WIDTH  = 7.
	DEFAULT_LABEL_LINE_HEIGHT = 16.
)

type Sizing struct {
	TaskWidth  float64
	TaskHeight float64

	EventSide   float64
	GatewaySide float64

	ColumnWidth float64

	LaneBaseHeight  float64
	RowIncrement    float64
	LaneLabelGutter float64

	PoolMargin      float64
	PoolLabelGutter float64
	PoolGap         float64

	CorridorOffset float64
	BendMargin     float64

	CollisionTolerance float64

	LabelCharWidth  float64
	LabelLineHeight float64
}

func DefaultSizing() *Sizing {
	return &Sizing{
		TaskWidth:  DEFAULT_TASK_WIDTH,
		TaskHeight: DEFAULT_TASK_HEIGHT,

		EventSide:   DEFAULT_EVENT_SIDE,
		GatewaySide: DEFAULT_GATEWAY_SIDE,

		ColumnWidth: DEFAULT_COLUMN_WIDTH,

		LaneBaseHeight:  DEFAULT_LANE_BASE_HEIGHT,
		RowIncrement:    DEFAULT_ROW_INCREMENT,
		LaneLabelGutter: DEFAULT_LANE_LABEL_GUTTER,

		PoolMargin:      DEFAULT_POOL_MARGIN,
		PoolLabelGutter: DEFAULT_POOL_LABEL_GUTTER,
		PoolGap:         DEFAULT_POOL_GAP,

		CorridorOffset: DEFAULT_CORRIDOR_OFFSET,
		BendMargin:     DEFAULT_BEND_MARGIN,

		CollisionTolerance: DEFAULT_COLLISION_TOLERANCE,

		LabelCharWidth:  DEFAULT_LABEL_CHAR_WIDTH,
		LabelLineHeight: DEFAULT_LABEL_LINE_HEIGHT,
	}
}

// Footprint is the fixed pixel size of a node type. Sizes are
// constants per shape class, never computed from content.
func (sz *Sizing) Footprint(t nodeClass) (width, height float64) {
	switch t {
	case classEvent:
		return sz.EventSide, sz.EventSide
	case classGateway:
		return sz.GatewaySide, sz.GatewaySide
	default:
		return sz.TaskWidth, sz.TaskHeight
	}
}

type nodeClass int

const (
	classActivity nodeClass = iota
	classEvent
	classGateway
)
