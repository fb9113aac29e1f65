package b2layout

import (
	"oss.terrastruct.com/b2/lib/geo"
)

// Orientation decides which axis lanes stack along. The pipeline
// always computes in the horizontal frame (lanes stacked
// top-to-bottom, flow left-to-right) and transposes the finished
// geometry once for the vertical orientation, so no stage ever
// branches on it.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// Direction is the abstract vocabulary every stage speaks instead of
// compass sides: along the process-flow axis (forward/backward) or
// along the lane-stacking axis (crossForward/crossBackward).
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
	DirectionCrossForward
	DirectionCrossBackward
)

func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	case DirectionCrossForward:
		return "crossForward"
	case DirectionCrossBackward:
		return "crossBackward"
	default:
		return ""
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case DirectionForward:
		return DirectionBackward
	case DirectionBackward:
		return DirectionForward
	case DirectionCrossForward:
		return DirectionCrossBackward
	case DirectionCrossBackward:
		return DirectionCrossForward
	default:
		return d
	}
}

// Side maps a direction token to the concrete box side in the
// horizontal frame. This is the only place the mapping exists.
func (d Direction) Side() geo.Side {
	switch d {
	case DirectionForward:
		return geo.Right
	case DirectionBackward:
		return geo.Left
	case DirectionCrossForward:
		return geo.Bottom
	case DirectionCrossBackward:
		return geo.Top
	default:
		return geo.NONE
	}
}

// DirectionOf is the inverse of Direction.Side.
func DirectionOf(s geo.Side) Direction {
	switch s {
	case geo.Right:
		return DirectionForward
	case geo.Left:
		return DirectionBackward
	case geo.Bottom:
		return DirectionCrossForward
	case geo.Top:
		return DirectionCrossBackward
	default:
		return DirectionNone
	}
}
