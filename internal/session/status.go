package session

import "github.com/AdamLandfrasz/sweeper-of-mines/internal/field"

// Status represents where a session is in its lifecycle.
type Status int

const (
	// StatusNotStarted is a fresh session; mines are laid out on the first reveal.
	StatusNotStarted Status = iota
	// StatusInProgress is a running game.
	StatusInProgress
	// StatusWon means every safe cell is revealed.
	StatusWon
	// StatusLost means a mine was revealed.
	StatusLost
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Over returns true for the terminal states.
func (s Status) Over() bool {
	return s == StatusWon || s == StatusLost
}

// Code tells a caller what a command did, or why it did nothing.
type Code int

const (
	// Applied means the command changed the game.
	Applied Code = iota
	// GameOver means the session is terminal and accepts no more moves.
	GameOver
	// AlreadyRevealed means the target cell is already open.
	AlreadyRevealed
	// Flagged means the target cell is flagged and cannot be revealed.
	Flagged
	// NoFlagsLeft means every available flag is placed.
	NoFlagsLeft
	// NotRevealed means a chord was released over an unopened cell.
	NotRevealed
	// NotEnoughFlags means a chord target has fewer flagged neighbors than its number.
	NotEnoughFlags
	// NoPress means a press update arrived with no press held.
	NoPress
)

// String returns a human-readable code name.
func (c Code) String() string {
	switch c {
	case Applied:
		return "applied"
	case GameOver:
		return "game_over"
	case AlreadyRevealed:
		return "already_revealed"
	case Flagged:
		return "flagged"
	case NoFlagsLeft:
		return "no_flags_left"
	case NotRevealed:
		return "not_revealed"
	case NotEnoughFlags:
		return "not_enough_flags"
	case NoPress:
		return "no_press"
	default:
		return "unknown"
	}
}

// Result is the outcome of a command.
type Result struct {
	Code    Code
	Changed []field.Point // Cells whose view changed and need redrawing
}

// Applied returns true if the command changed the game.
func (r Result) Applied() bool {
	return r.Code == Applied
}

// State is what the player can see of a cell.
type State int

const (
	Hidden State = iota
	Revealed
	FlagPlaced
)

// Content is what a revealed cell shows.
type Content int

const (
	ContentNone Content = iota // Unrevealed
	ContentNumber
	ContentMine
	ContentExploded
)

// View is the presentation-facing picture of a single cell. Hidden cells
// never expose their kind.
type View struct {
	State   State
	Content Content
	Number  int  // Adjacent mines, for ContentNumber
	Pressed bool // Shown pressed by a held press
}
