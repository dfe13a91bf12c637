package session

import (
	"context"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/field"
)

// PressStart begins a press gesture at (x, y). While the press is held a
// hidden cell under it, or the hidden neighbors of a revealed cell under
// it, are shown pressed. The board itself is not touched.
func (s *Session) PressStart(x, y int) (Result, error) {
	if !s.board.InBounds(x, y) {
		_, err := s.board.CellAt(x, y)
		return Result{}, err
	}
	if s.status.Over() {
		return Result{Code: GameOver}, nil
	}

	changed := s.clearPress()
	s.press = &field.Point{X: x, Y: y}
	changed = append(changed, s.highlight(x, y)...)
	return Result{Changed: changed}, nil
}

// PressMove moves a held press to (x, y), as when the pointer is dragged
// across cells with the button down.
func (s *Session) PressMove(x, y int) (Result, error) {
	if s.press == nil {
		return Result{Code: NoPress}, nil
	}
	if *s.press == (field.Point{X: x, Y: y}) {
		return Result{}, nil
	}
	return s.PressStart(x, y)
}

// PressEnd releases a press at (x, y). Releasing over a revealed number
// chords it. Releasing over a hidden cell only clears the preview; the
// reveal itself is PrimaryAction.
func (s *Session) PressEnd(ctx context.Context, x, y int) (Result, error) {
	if !s.board.InBounds(x, y) {
		_, err := s.board.CellAt(x, y)
		return Result{}, err
	}

	cleared := s.clearPress()
	res, err := s.chord(ctx, x, y)
	if err != nil {
		return Result{}, err
	}
	res.Changed = append(cleared, res.Changed...)
	return res, nil
}

// PressCancel drops a held press without acting, as when the pointer
// leaves the board.
func (s *Session) PressCancel() Result {
	if s.press == nil {
		return Result{Code: NoPress}
	}
	return Result{Changed: s.clearPress()}
}

// PressActive returns true while a press is held over the board.
func (s *Session) PressActive() bool {
	return s.press != nil
}

// Pressed returns true if (x, y) is shown pressed by the held press.
func (s *Session) Pressed(x, y int) bool {
	return s.preview[field.Point{X: x, Y: y}]
}

// highlight fills the preview for a press at (x, y).
func (s *Session) highlight(x, y int) []field.Point {
	cell, _ := s.board.CellAt(x, y)

	var targets []field.Point
	switch {
	case cell.Flagged:
	case cell.Revealed:
		targets, _ = s.board.ChordTargets(x, y)
	default:
		targets = []field.Point{cell.Point()}
	}

	for _, p := range targets {
		s.preview[p] = true
	}
	return targets
}

// clearPress drops the press and returns the cells that were previewed.
func (s *Session) clearPress() []field.Point {
	s.press = nil
	if len(s.preview) == 0 {
		return nil
	}
	cleared := make([]field.Point, 0, len(s.preview))
	for p := range s.preview {
		cleared = append(cleared, p)
		delete(s.preview, p)
	}
	return cleared
}
