package label

import (
	"oss.terrastruct.com/b2/lib/geo"
)

// This is the space between a node border and its outside label
const PADDING = 5

type Position int8

const (
	Unset Position = iota

	OutsideTopLeft
	OutsideTopCenter

	OutsideLeftMiddle
	OutsideRightMiddle

	OutsideBottomCenter
)

func FromString(s string) Position {
	switch s {
	case "OUTSIDE_TOP_LEFT":
		return OutsideTopLeft
	case "OUTSIDE_TOP_CENTER":
		return OutsideTopCenter
	case "OUTSIDE_LEFT_MIDDLE":
		return OutsideLeftMiddle
	case "OUTSIDE_RIGHT_MIDDLE":
		return OutsideRightMiddle
	case "OUTSIDE_BOTTOM_CENTER":
		return OutsideBottomCenter
	default:
		return Unset
	}
}

func (position Position) String() string {
	switch position {
	case OutsideTopLeft:
		return "OUTSIDE_TOP_LEFT"
	case OutsideTopCenter:
		return "OUTSIDE_TOP_CENTER"
	case OutsideLeftMiddle:
		return "OUTSIDE_LEFT_MIDDLE"
	case OutsideRightMiddle:
		return "OUTSIDE_RIGHT_MIDDLE"
	case OutsideBottomCenter:
		return "OUTSIDE_BOTTOM_CENTER"
	default:
		return ""
	}
}

// FromSide maps the free side of a node to the label position hugging
// that side.
func FromSide(side geo.Side) Position {
	switch side {
	case geo.Top:
		return OutsideTopCenter
	case geo.Bottom:
		return OutsideBottomCenter
	case geo.Left:
		return OutsideLeftMiddle
	case geo.Right:
		return OutsideRightMiddle
	default:
		return Unset
	}
}

func (position Position) Side() geo.Side {
	switch position {
	case OutsideTopLeft, OutsideTopCenter:
		return geo.Top
	case OutsideBottomCenter:
		return geo.Bottom
	case OutsideLeftMiddle:
		return geo.Left
	case OutsideRightMiddle:
		return geo.Right
	default:
		return geo.NONE
	}
}

// Bounds computes the pixel box of a width x height label anchored at
// the given position relative to the node box.
func (position Position) Bounds(node *geo.Box, width, height float64) *geo.Box {
	if node == nil {
		return nil
	}
	c := node.Center()
	var tl *geo.Point
	switch position {
	case OutsideTopLeft:
		tl = geo.NewPoint(c.X-width, node.TopLeft.Y-height-PADDING)
	case OutsideTopCenter:
		tl = geo.NewPoint(c.X-width/2, node.TopLeft.Y-height-PADDING)
	case OutsideBottomCenter:
		tl = geo.NewPoint(c.X-width/2, node.Bottom()+PADDING)
	case OutsideLeftMiddle:
		tl = geo.NewPoint(node.TopLeft.X-width-PADDING, c.Y-height/2)
	case OutsideRightMiddle:
		tl = geo.NewPoint(node.Right()+PADDING, c.Y-height/2)
	default:
		tl = geo.NewPoint(c.X-width/2, c.Y-height/2)
	}
	return geo.NewBox(tl, width, height)
}
