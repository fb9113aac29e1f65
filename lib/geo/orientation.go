package geo

// Side is one of the four faces of an axis-aligned box. Flows exit and
// enter nodes through sides, so most routing decisions reduce to
// picking a pair of sides.
type Side int

const (
	NONE Side = iota
	Top
	Right
	Bottom
	Left
)

func (s Side) String() string {
	switch s {
	case Top:
		return "Top"
	case Right:
		return "Right"
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	default:
		return ""
	}
}

func (s Side) IsHorizontal() bool {
	return s == Left || s == Right
}

func (s Side) IsVertical() bool {
	return s == Top || s == Bottom
}

func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	default:
		return s
	}
}

// Transpose maps a side to its equivalent after swapping the axes,
// e.g. a Right exit becomes a Bottom exit when lanes are stacked
// left-to-right instead of top-to-bottom.
func (s Side) Transpose() Side {
	switch s {
	case Top:
		return Left
	case Left:
		return Top
	case Bottom:
		return Right
	case Right:
		return Bottom
	default:
		return s
	}
}
