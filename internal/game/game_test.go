package game

import (
	"context"
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/field"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/session"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/ui"
)

func newTestGame(t *testing.T, cfg Config) *Game {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	screen, err := ui.NewScreenFrom(sim)
	if err != nil {
		t.Fatalf("NewScreenFrom() error: %v", err)
	}
	sim.SetSize(100, 30)

	g, err := newGame(screen, cfg)
	if err != nil {
		t.Fatalf("newGame() error: %v", err)
	}
	t.Cleanup(g.Close)

	if err := g.startSession(context.Background()); err != nil {
		t.Fatalf("startSession() error: %v", err)
	}
	g.render()
	return g
}

func (g *Game) mouse(sx, sy int, buttons tcell.ButtonMask) {
	g.handleEvent(context.Background(), tcell.NewEventMouse(sx, sy, buttons, tcell.ModNone))
	g.render()
}

func (g *Game) key(k tcell.Key, r rune) {
	g.handleEvent(context.Background(), tcell.NewEventKey(k, r, tcell.ModNone))
	g.render()
}

// click presses and releases a button over a cell.
func (g *Game) click(x, y int, button tcell.ButtonMask) {
	sx, sy := g.renderer.CellPosition(x, y)
	g.mouse(sx, sy, button)
	g.mouse(sx, sy, tcell.ButtonNone)
}

func (g *Game) clickFace() {
	fx, fy := g.renderer.FacePosition()
	g.mouse(fx, fy, tcell.ButtonPrimary)
	g.mouse(fx, fy, tcell.ButtonNone)
}

func viewAt(t *testing.T, s *session.Session, x, y int) session.View {
	t.Helper()
	v, err := s.CellView(x, y)
	if err != nil {
		t.Fatalf("CellView(%d,%d) error: %v", x, y, err)
	}
	return v
}

func TestNewGameBoardSize(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		difficulty string
		w, h, m    int
	}{
		{"default preset", Config{}, "beginner", 9, 9, 10},
		{"named preset", Config{Difficulty: "expert"}, "expert", 30, 16, 99},
		{"custom board", Config{Width: 5, Height: 4, Mines: 3}, "", 5, 4, 3},
		{"custom overrides preset", Config{Difficulty: "expert", Width: 6, Height: 6, Mines: 1}, "", 6, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, tt.cfg)
			if g.board.difficulty != tt.difficulty {
				t.Errorf("difficulty = %q, want %q", g.board.difficulty, tt.difficulty)
			}
			s := g.session
			if s.Width() != tt.w || s.Height() != tt.h || s.MineCount() != tt.m {
				t.Errorf("session = %dx%d/%d, want %dx%d/%d",
					s.Width(), s.Height(), s.MineCount(), tt.w, tt.h, tt.m)
			}
		})
	}
}

func TestNewGameRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown preset", Config{Difficulty: "nightmare"}},
		{"partial custom", Config{Width: 5}},
		{"negative mines", Config{Width: 5, Height: 5, Mines: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim := tcell.NewSimulationScreen("UTF-8")
			screen, err := ui.NewScreenFrom(sim)
			if err != nil {
				t.Fatalf("NewScreenFrom() error: %v", err)
			}
			defer screen.Close()

			if _, err := newGame(screen, tt.cfg); err == nil {
				t.Error("newGame() succeeded, want error")
			}
		})
	}
}

func TestClickRevealsAndStartsTimer(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})

	if g.timer.Running() {
		t.Fatal("timer running before first click")
	}

	g.click(4, 4, tcell.ButtonPrimary)

	if g.session.Status() != session.StatusInProgress {
		t.Errorf("Status() = %v, want in_progress", g.session.Status())
	}
	if v := viewAt(t, g.session, 4, 4); v.State != session.Revealed {
		t.Errorf("clicked cell state = %v, want revealed", v.State)
	}
	if !g.timer.Running() {
		t.Error("timer not running after first reveal")
	}
	if g.face() != ui.FaceSmile {
		t.Errorf("face() = %v, want smile", g.face())
	}
}

func TestRightClickTogglesFlag(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})

	g.click(0, 0, tcell.ButtonSecondary)
	if v := viewAt(t, g.session, 0, 0); v.State != session.FlagPlaced {
		t.Fatalf("state after right click = %v, want flag", v.State)
	}
	if got := g.session.RemainingFlags(); got != 9 {
		t.Errorf("RemainingFlags() = %d, want 9", got)
	}
	if g.timer.Running() {
		t.Error("flagging started the timer")
	}

	g.click(0, 0, tcell.ButtonSecondary)
	if v := viewAt(t, g.session, 0, 0); v.State != session.Hidden {
		t.Errorf("state after second right click = %v, want hidden", v.State)
	}
}

func TestBoardPressPreview(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})

	sx, sy := g.renderer.CellPosition(2, 2)
	g.mouse(sx, sy, tcell.ButtonPrimary)
	if !g.session.Pressed(2, 2) {
		t.Error("pressed cell not previewed")
	}
	if g.face() != ui.FaceOoh {
		t.Errorf("face() while pressing = %v, want ooh", g.face())
	}

	nx, ny := g.renderer.CellPosition(3, 2)
	g.mouse(nx, ny, tcell.ButtonPrimary)
	if g.session.Pressed(2, 2) || !g.session.Pressed(3, 2) {
		t.Error("preview did not follow the drag")
	}

	// Dragging off the board drops the preview and the release does nothing.
	g.mouse(0, 0, tcell.ButtonPrimary)
	if g.session.PressActive() {
		t.Error("press still active off the board")
	}
	if g.face() != ui.FaceSmile {
		t.Errorf("face() off the board = %v, want smile", g.face())
	}
	g.mouse(0, 0, tcell.ButtonNone)
	if g.session.Status() != session.StatusNotStarted {
		t.Errorf("Status() = %v, want not_started", g.session.Status())
	}
	if g.gesture != GestureNone {
		t.Errorf("gesture = %v, want none", g.gesture)
	}
}

func TestFaceClickResets(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})
	g.click(4, 4, tcell.ButtonPrimary)
	old := g.session.ID()

	fx, fy := g.renderer.FacePosition()
	g.mouse(fx, fy, tcell.ButtonPrimary)
	if g.face() != ui.FacePressed {
		t.Errorf("face() while held = %v, want pressed", g.face())
	}
	g.mouse(fx, fy, tcell.ButtonNone)

	if g.session.ID() == old {
		t.Fatal("face click kept the old session")
	}
	if g.session.Status() != session.StatusNotStarted || g.session.Elapsed() != 0 {
		t.Errorf("new session = %v at %ds, want not_started at 0s", g.session.Status(), g.session.Elapsed())
	}
	if g.timer.Running() {
		t.Error("timer still running after reset")
	}
}

func TestDragErrorStopsGame(t *testing.T) {
	g := newTestGame(t, Config{Difficulty: "expert", Seed: 1})
	ctx := context.Background()

	// Swap in a smaller board without redrawing, so the last frame's
	// layout still maps screen columns to expert-width cells.
	g.board = presetSize(g.difficulties.GetByID("beginner"))
	if err := g.startSession(ctx); err != nil {
		t.Fatalf("startSession() error: %v", err)
	}

	sx, sy := g.renderer.CellPosition(0, 0)
	g.handleEvent(ctx, tcell.NewEventMouse(sx, sy, tcell.ButtonPrimary, tcell.ModNone))
	if !g.running {
		t.Fatalf("press on a valid cell stopped the game: %v", g.err)
	}

	dx, dy := g.renderer.CellPosition(20, 0)
	g.handleEvent(ctx, tcell.NewEventMouse(dx, dy, tcell.ButtonPrimary, tcell.ModNone))

	if !errors.Is(g.err, field.ErrOutOfBounds) {
		t.Errorf("err = %v, want ErrOutOfBounds", g.err)
	}
	if g.running {
		t.Error("game still running after a drag error")
	}
}

func TestFacePressReleasedElsewhere(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})
	old := g.session.ID()

	fx, fy := g.renderer.FacePosition()
	g.mouse(fx, fy, tcell.ButtonPrimary)

	sx, sy := g.renderer.CellPosition(0, 0)
	g.mouse(sx, sy, tcell.ButtonPrimary)
	if g.face() != ui.FaceSmile {
		t.Errorf("face() after leaving = %v, want smile", g.face())
	}
	if g.session.PressActive() {
		t.Error("face gesture pressed a cell")
	}

	g.mouse(sx, sy, tcell.ButtonNone)
	if g.session.ID() != old {
		t.Error("release off the face reset the game")
	}
	if g.session.Status() != session.StatusNotStarted {
		t.Error("release off the face revealed a cell")
	}
}

func TestResetKey(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})
	old := g.session.ID()

	g.key(tcell.KeyRune, 'r')

	if g.session.ID() == old {
		t.Error("r did not replace the session")
	}
	if !g.running {
		t.Error("reset stopped the game")
	}
}

func TestDifficultySwitch(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})
	g.click(4, 4, tcell.ButtonPrimary)

	g.key(tcell.KeyRune, '3')
	if g.board.difficulty != "expert" || g.session.Width() != 30 || g.session.Height() != 16 {
		t.Errorf("after '3': %q %dx%d, want expert 30x16",
			g.board.difficulty, g.session.Width(), g.session.Height())
	}
	if g.timer.Running() {
		t.Error("timer still running after switch")
	}

	bx, by, ok := g.renderer.ButtonPosition("intermediate")
	if !ok {
		t.Fatal("intermediate button not drawn")
	}
	g.mouse(bx, by, tcell.ButtonPrimary)
	g.mouse(bx, by, tcell.ButtonNone)
	if g.board.difficulty != "intermediate" || g.session.MineCount() != 40 {
		t.Errorf("after button: %q with %d mines, want intermediate with 40",
			g.board.difficulty, g.session.MineCount())
	}

	// Reset keeps the current preset.
	g.key(tcell.KeyRune, 'r')
	if g.session.Width() != 16 {
		t.Errorf("Width() after reset = %d, want 16", g.session.Width())
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{"q", tcell.KeyRune, 'q'},
		{"Q", tcell.KeyRune, 'Q'},
		{"escape", tcell.KeyEscape, 0},
		{"ctrl-c", tcell.KeyCtrlC, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, Config{Seed: 1})
			g.key(tt.key, tt.r)
			if g.running {
				t.Error("game still running")
			}
			if g.err != nil {
				t.Errorf("quit recorded error: %v", g.err)
			}
		})
	}
}

func TestStaleTickIgnored(t *testing.T) {
	g := newTestGame(t, Config{Seed: 1})
	ctx := context.Background()
	g.click(4, 4, tcell.ButtonPrimary)
	old := g.session.ID()

	g.handleEvent(ctx, newTickEvent(old))
	if got := g.session.Elapsed(); got != 1 {
		t.Fatalf("Elapsed() = %d, want 1", got)
	}

	g.key(tcell.KeyRune, 'r')
	g.handleEvent(ctx, newTickEvent(old))
	if got := g.session.Elapsed(); got != 0 {
		t.Errorf("stale tick advanced new session to %d", got)
	}

	g.handleEvent(ctx, newTickEvent(g.session.ID()))
	if got := g.session.Elapsed(); got != 0 {
		t.Errorf("tick before first reveal advanced clock to %d", got)
	}
}

func TestFirstClickWin(t *testing.T) {
	g := newTestGame(t, Config{Width: 2, Height: 2, Mines: 3, Seed: 1})

	g.click(0, 0, tcell.ButtonPrimary)

	if g.session.Status() != session.StatusWon {
		t.Fatalf("Status() = %v, want won", g.session.Status())
	}
	if g.face() != ui.FaceWin {
		t.Errorf("face() = %v, want win", g.face())
	}
	if g.timer.Running() {
		t.Error("timer running after win")
	}
}

func TestChordViaPressRelease(t *testing.T) {
	// On a 3x1 board with one mine the middle cell always shows 1. Flagging
	// the left cell and chording the middle either opens the last safe cell
	// or detonates the mine.
	for seed := int64(1); seed <= 5; seed++ {
		g := newTestGame(t, Config{Width: 3, Height: 1, Mines: 1, StarterZone: 1, Seed: seed})

		g.click(1, 0, tcell.ButtonPrimary)
		if v := viewAt(t, g.session, 1, 0); v.Content != session.ContentNumber || v.Number != 1 {
			t.Fatalf("seed %d: middle cell = %+v, want 1", seed, v)
		}

		g.click(0, 0, tcell.ButtonSecondary)
		g.click(1, 0, tcell.ButtonPrimary)

		switch g.session.Status() {
		case session.StatusWon:
			if g.face() != ui.FaceWin {
				t.Errorf("seed %d: face() = %v, want win", seed, g.face())
			}
		case session.StatusLost:
			if g.face() != ui.FaceDead {
				t.Errorf("seed %d: face() = %v, want dead", seed, g.face())
			}
		default:
			t.Fatalf("seed %d: Status() = %v after chord, want game over", seed, g.session.Status())
		}
		if g.timer.Running() {
			t.Errorf("seed %d: timer running after game over", seed)
		}
	}
}

func TestSeedReproducible(t *testing.T) {
	a := newTestGame(t, Config{Seed: 99})
	b := newTestGame(t, Config{Seed: 99})

	a.click(4, 4, tcell.ButtonPrimary)
	b.click(4, 4, tcell.ButtonPrimary)

	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			if va, vb := viewAt(t, a.session, x, y), viewAt(t, b.session, x, y); va != vb {
				t.Fatalf("cell (%d,%d) differs: %+v vs %+v", x, y, va, vb)
			}
		}
	}
}

func TestGestureString(t *testing.T) {
	tests := []struct {
		gesture  Gesture
		expected string
	}{
		{GestureNone, "none"},
		{GestureBoard, "board"},
		{GestureFace, "face"},
		{Gesture(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.gesture.String(); got != tt.expected {
			t.Errorf("Gesture(%d).String() = %q, want %q", tt.gesture, got, tt.expected)
		}
	}
}
