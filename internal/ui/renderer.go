package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/gamedata"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/session"
)

const (
	buttonsRow    = 0
	panelRow      = 2
	boardTop      = 4
	boardLeft     = 2
	cellWidth     = 2  // Terminal columns per cell
	minPanelWidth = 15 // Room for both counters and the face
)

// TargetKind is what lies under a screen position.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetCell
	TargetFace
	TargetDifficulty
)

// Target is the result of hit-testing a screen position.
type Target struct {
	Kind       TargetKind
	X, Y       int    // Board coordinates, for TargetCell
	Difficulty string // Preset ID, for TargetDifficulty
}

type button struct {
	x0, x1 int // Inclusive column range
	id     string
}

// Renderer handles drawing the game to the screen and mapping screen
// positions back to what was drawn there.
type Renderer struct {
	screen       *Screen
	palette      *gamedata.PaletteDef
	difficulties []gamedata.DifficultyDef

	// Layout of the last frame
	width, height int
	faceX         int
	buttons       []button
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen, palette *gamedata.PaletteDef, difficulties []gamedata.DifficultyDef) *Renderer {
	return &Renderer{
		screen:       screen,
		palette:      palette,
		difficulties: difficulties,
	}
}

// Render draws the difficulty buttons, counters, face, board and status line.
func (r *Renderer) Render(s *session.Session, face Face, activeDifficulty string) {
	r.screen.Clear()
	r.layout(s.Width(), s.Height())

	r.renderButtons(activeDifficulty)
	r.renderPanel(s, face)

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			view, err := s.CellView(x, y)
			if err != nil {
				continue
			}
			ch, style := r.cellGlyph(view)
			sx, sy := r.CellPosition(x, y)
			r.screen.SetContent(sx, sy, ch, style)
			r.screen.SetContent(sx+1, sy, ' ', style)
		}
	}

	messageRow := boardTop + s.Height() + 1
	r.RenderMessage(statusMessage(s.Status()), messageRow)
	if w, h := r.screen.Size(); w < r.minWidth() || h < messageRow+1 {
		r.RenderMessage(fmt.Sprintf("Terminal too small: need %dx%d", r.minWidth(), messageRow+1), 0)
	}

	r.screen.Show()
}

// RenderMessage displays a message at the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, ch := range msg {
		r.screen.SetContent(i, y, ch, style)
	}
}

// CellPosition returns the screen position of a board cell's first column.
func (r *Renderer) CellPosition(x, y int) (int, int) {
	return boardLeft + x*cellWidth, boardTop + y
}

// FacePosition returns the screen position of the face's first column.
func (r *Renderer) FacePosition() (int, int) {
	return r.faceX, panelRow
}

// ButtonPosition returns the screen position of a difficulty button.
func (r *Renderer) ButtonPosition(id string) (int, int, bool) {
	for _, b := range r.buttons {
		if b.id == id {
			return b.x0, buttonsRow, true
		}
	}
	return 0, 0, false
}

// HitTest reports what the last frame drew at a screen position.
func (r *Renderer) HitTest(sx, sy int) Target {
	switch {
	case sy == buttonsRow:
		for _, b := range r.buttons {
			if sx >= b.x0 && sx <= b.x1 {
				return Target{Kind: TargetDifficulty, Difficulty: b.id}
			}
		}
	case sy == panelRow:
		if sx >= r.faceX && sx < r.faceX+len(FaceSmile.Text()) {
			return Target{Kind: TargetFace}
		}
	case sy >= boardTop && sy < boardTop+r.height && sx >= boardLeft:
		x := (sx - boardLeft) / cellWidth
		if x < r.width {
			return Target{Kind: TargetCell, X: x, Y: sy - boardTop}
		}
	}
	return Target{Kind: TargetNone}
}

// layout computes the positions of the frame's widgets.
func (r *Renderer) layout(width, height int) {
	r.width, r.height = width, height
	r.faceX = boardLeft + r.panelWidth()/2 - 1

	r.buttons = r.buttons[:0]
	x := boardLeft
	for _, d := range r.difficulties {
		label := buttonLabel(d)
		r.buttons = append(r.buttons, button{x0: x, x1: x + len(label) - 1, id: d.ID})
		x += len(label) + 1
	}
}

func (r *Renderer) panelWidth() int {
	return max(r.width*cellWidth, minPanelWidth)
}

func (r *Renderer) minWidth() int {
	w := boardLeft + r.panelWidth()
	if n := len(r.buttons); n > 0 {
		w = max(w, r.buttons[n-1].x1+1)
	}
	return w
}

func (r *Renderer) renderButtons(active string) {
	for i, d := range r.difficulties {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if d.ID == active {
			style = style.Reverse(true)
		}
		for j, ch := range buttonLabel(d) {
			r.screen.SetContent(r.buttons[i].x0+j, buttonsRow, ch, style)
		}
	}
}

func (r *Renderer) renderPanel(s *session.Session, face Face) {
	counter := tcell.StyleDefault.
		Foreground(r.palette.CounterColor()).
		Background(r.palette.PanelColor()).
		Bold(true)

	r.drawText(boardLeft, panelRow, counterText(s.RemainingFlags()), counter)
	r.drawText(boardLeft+r.panelWidth()-3, panelRow, counterText(s.Elapsed()), counter)

	faceStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	if face == FacePressed {
		faceStyle = faceStyle.Reverse(true)
	}
	r.drawText(r.faceX, panelRow, face.Text(), faceStyle)
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		r.screen.SetContent(x+i, y, ch, style)
	}
}

// cellGlyph returns the rune and style for a cell.
func (r *Renderer) cellGlyph(v session.View) (rune, tcell.Style) {
	hidden := tcell.StyleDefault.Background(r.palette.HiddenColor()).Foreground(tcell.ColorBlack)
	revealed := tcell.StyleDefault.Background(r.palette.RevealedColor())

	switch v.State {
	case session.FlagPlaced:
		return 'F', hidden.Foreground(r.palette.FlagColor()).Bold(true)
	case session.Hidden:
		if v.Pressed {
			return ' ', tcell.StyleDefault.Background(r.palette.PressedColor())
		}
		return '#', hidden
	}

	switch v.Content {
	case session.ContentExploded:
		return '*', revealed.Background(r.palette.ExplodedColor()).Foreground(r.palette.MineColor()).Bold(true)
	case session.ContentMine:
		return '*', revealed.Foreground(r.palette.MineColor()).Bold(true)
	case session.ContentNumber:
		if v.Number == 0 {
			return ' ', revealed
		}
		return rune('0' + v.Number), revealed.Foreground(r.palette.NumberColor(v.Number)).Bold(true)
	default:
		return '?', revealed
	}
}

func buttonLabel(d gamedata.DifficultyDef) string {
	return "[" + d.Key + "] " + d.Name
}

// counterText formats a counter as three digits, clamped to 000..999.
func counterText(n int) string {
	return fmt.Sprintf("%03d", min(max(n, 0), 999))
}

func statusMessage(status session.Status) string {
	switch status {
	case session.StatusWon:
		return "Cleared! r: new game  q: quit"
	case session.StatusLost:
		return "Boom. r: new game  q: quit"
	default:
		return "left: reveal  right: flag  r: reset  q: quit"
	}
}
