package ui

// Face is the state of the reset button.
type Face int

const (
	FaceSmile   Face = iota // Waiting for a move
	FaceOoh                 // A press is held over the board
	FacePressed             // The face itself is held down
	FaceWin
	FaceDead
)

// Text returns the three-column glyph for the face.
func (f Face) Text() string {
	switch f {
	case FaceOoh:
		return ":o "
	case FacePressed:
		return "(:)"
	case FaceWin:
		return "B) "
	case FaceDead:
		return "X( "
	default:
		return ":) "
	}
}

// String returns a human-readable face name.
func (f Face) String() string {
	switch f {
	case FaceSmile:
		return "smile"
	case FaceOoh:
		return "ooh"
	case FacePressed:
		return "pressed"
	case FaceWin:
		return "win"
	case FaceDead:
		return "dead"
	default:
		return "unknown"
	}
}
