// Package game provides the main loop that connects the terminal to a
// Minesweeper session.
package game

// Gesture is what the held primary button started on.
type Gesture int

const (
	// GestureNone means the primary button is up.
	GestureNone Gesture = iota
	// GestureBoard is a press that began on a cell. It previews the cells
	// it would open and acts on release.
	GestureBoard
	// GestureFace is a press that began on the face. It resets the game if
	// released over the face.
	GestureFace
)

// String returns a human-readable gesture name.
func (g Gesture) String() string {
	switch g {
	case GestureNone:
		return "none"
	case GestureBoard:
		return "board"
	case GestureFace:
		return "face"
	default:
		return "unknown"
	}
}
