package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/gamedata"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/session"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/telemetry"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/ui"
)

// tickInterval is how often the seconds counter advances.
const tickInterval = time.Second

// Game holds the entire game state.
type Game struct {
	screen       *ui.Screen
	renderer     *ui.Renderer
	difficulties *gamedata.DifficultyRegistry
	tracer       trace.Tracer

	cfg     Config
	board   boardSize
	rng     *rand.Rand
	session *session.Session
	timer   *Timer

	// Pointer state
	buttons  tcell.ButtonMask // Buttons held at the last mouse event
	gesture  Gesture
	overFace bool // Pointer is on the face during a GestureFace

	running bool
	err     error
}

// New creates a new game instance on the terminal.
func New(cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}

	g, err := newGame(screen, cfg)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

// newGame builds a game on an initialized screen.
func newGame(screen *ui.Screen, cfg Config) (*Game, error) {
	difficulties, err := gamedata.LoadDifficultyRegistry()
	if err != nil {
		return nil, err
	}
	palette, err := gamedata.LoadPalette()
	if err != nil {
		return nil, err
	}
	board, err := cfg.resolve(difficulties)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Game{
		screen:       screen,
		renderer:     ui.NewRenderer(screen, palette, difficulties.All()),
		difficulties: difficulties,
		tracer:       telemetry.Tracer("game"),
		cfg:          cfg,
		board:        board,
		rng:          rand.New(rand.NewSource(seed)),
		timer:        NewTimer(screen.PostEvent, tickInterval),
		running:      true,
	}, nil
}

// Run executes the main game loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	ctx, initSpan := g.tracer.Start(ctx, "game.init")
	err := g.startSession(ctx)
	initSpan.SetAttributes(g.boardAttributes()...)
	if err != nil {
		initSpan.RecordError(err)
		initSpan.End()
		g.screen.Close()
		return err
	}
	initSpan.End()

	for g.running {
		g.render()

		ev := g.screen.PollEvent()
		if ev == nil {
			break
		}
		g.handleEvent(ctx, ev)
	}

	g.timer.Stop()
	g.screen.Close()
	return g.err
}

func (g *Game) render() {
	g.renderer.Render(g.session, g.face(), g.board.difficulty)
}

// handleEvent processes a single input event.
func (g *Game) handleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventMouse:
		g.handleMouseEvent(ctx, ev)
	case *tickEvent:
		g.handleTick(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q', 'Q':
			g.running = false
		case 'r', 'R':
			g.reset(ctx)
		default:
			if d := g.difficulties.GetByKey(r); d != nil {
				g.switchDifficulty(ctx, d.ID)
			}
		}
	}
}

// handleMouseEvent turns button transitions into presses, drags and
// releases. tcell reports the full button mask on every event, so edges
// are found against the previous mask.
func (g *Game) handleMouseEvent(ctx context.Context, ev *tcell.EventMouse) {
	sx, sy := ev.Position()
	target := g.renderer.HitTest(sx, sy)

	held := ev.Buttons()
	pressed := held &^ g.buttons
	released := g.buttons &^ held
	g.buttons = held

	switch {
	case pressed&tcell.ButtonPrimary != 0:
		g.primaryDown(ctx, target)
	case released&tcell.ButtonPrimary != 0:
		g.primaryUp(ctx, target)
	case held&tcell.ButtonPrimary != 0:
		g.primaryDrag(ctx, target)
	}

	if pressed&tcell.ButtonSecondary != 0 && target.Kind == ui.TargetCell {
		g.act(ctx, func() (session.Result, error) {
			return g.session.SecondaryAction(ctx, target.X, target.Y)
		})
	}
}

func (g *Game) primaryDown(ctx context.Context, target ui.Target) {
	switch target.Kind {
	case ui.TargetCell:
		g.gesture = GestureBoard
		g.act(ctx, func() (session.Result, error) {
			return g.session.PressStart(target.X, target.Y)
		})
	case ui.TargetFace:
		g.gesture = GestureFace
		g.overFace = true
	case ui.TargetDifficulty:
		g.switchDifficulty(ctx, target.Difficulty)
	}
}

func (g *Game) primaryDrag(ctx context.Context, target ui.Target) {
	switch g.gesture {
	case GestureBoard:
		g.act(ctx, func() (session.Result, error) {
			switch {
			case target.Kind != ui.TargetCell:
				return g.session.PressCancel(), nil
			case g.session.PressActive():
				return g.session.PressMove(target.X, target.Y)
			default:
				return g.session.PressStart(target.X, target.Y)
			}
		})
	case GestureFace:
		g.overFace = target.Kind == ui.TargetFace
	}
}

func (g *Game) primaryUp(ctx context.Context, target ui.Target) {
	gesture := g.gesture
	g.gesture = GestureNone
	g.overFace = false

	switch gesture {
	case GestureBoard:
		g.act(ctx, func() (session.Result, error) {
			if target.Kind != ui.TargetCell {
				return g.session.PressCancel(), nil
			}
			res, err := g.session.PressEnd(ctx, target.X, target.Y)
			if err != nil || res.Code != session.NotRevealed {
				return res, err
			}
			return g.session.PrimaryAction(ctx, target.X, target.Y)
		})
	case GestureFace:
		if target.Kind == ui.TargetFace {
			g.reset(ctx)
		}
	}
}

// handleTick advances the clock of the session that queued the tick.
func (g *Game) handleTick(ctx context.Context, ev *tickEvent) {
	if ev.sessionID != g.session.ID() {
		return
	}
	g.session.Tick()
	g.syncTimer(ctx)
}

// act runs a session command and keeps the timer in step with it.
func (g *Game) act(ctx context.Context, cmd func() (session.Result, error)) {
	if _, err := cmd(); err != nil {
		g.fail(err)
		return
	}
	g.syncTimer(ctx)
}

// syncTimer runs the timer exactly while the session's clock advances.
func (g *Game) syncTimer(ctx context.Context) {
	running := g.session.TimerRunning()
	switch {
	case running && !g.timer.Running():
		g.timer.Start(ctx, g.session.ID())
	case !running && g.timer.Running():
		g.timer.Stop()
	}
}

// face returns the face for the current session and pointer state.
func (g *Game) face() ui.Face {
	switch {
	case g.gesture == GestureFace && g.overFace:
		return ui.FacePressed
	case g.session.Status() == session.StatusWon:
		return ui.FaceWin
	case g.session.Status() == session.StatusLost:
		return ui.FaceDead
	case g.gesture == GestureBoard && g.session.PressActive():
		return ui.FaceOoh
	default:
		return ui.FaceSmile
	}
}

// reset discards the session and starts a fresh board of the same shape.
func (g *Game) reset(ctx context.Context) {
	ctx, span := g.tracer.Start(ctx, "game.reset")
	defer span.End()

	if g.session != nil {
		span.SetAttributes(
			attribute.String("previous.session_id", g.session.ID().String()),
			attribute.String("previous.status", g.session.Status().String()),
		)
	}
	err := g.startSession(ctx)
	span.SetAttributes(g.boardAttributes()...)
	if err != nil {
		span.RecordError(err)
		g.fail(err)
	}
}

// switchDifficulty starts a new game on the given preset.
func (g *Game) switchDifficulty(ctx context.Context, id string) {
	d, err := g.difficulties.Lookup(id)
	if err != nil {
		g.fail(err)
		return
	}
	g.board = presetSize(d)
	g.reset(ctx)
}

// startSession stops the clock and installs a new session. Ticks still
// queued for the old session are dropped by handleTick.
func (g *Game) startSession(ctx context.Context) error {
	g.timer.Stop()

	s, err := session.New(ctx, session.Config{
		Width:       g.board.width,
		Height:      g.board.height,
		Mines:       g.board.mines,
		StarterZone: g.cfg.StarterZone,
		Seed:        g.nextSeed(),
	})
	if err != nil {
		return err
	}

	g.session = s
	g.gesture = GestureNone
	g.overFace = false
	return nil
}

// nextSeed draws a non-zero seed for the next board.
func (g *Game) nextSeed() int64 {
	for {
		if seed := g.rng.Int63(); seed != 0 {
			return seed
		}
	}
}

func (g *Game) boardAttributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("difficulty", g.board.difficulty),
		attribute.Int("board.width", g.board.width),
		attribute.Int("board.height", g.board.height),
		attribute.Int("board.mines", g.board.mines),
	}
	if g.session != nil {
		attrs = append(attrs,
			attribute.String("session_id", g.session.ID().String()),
			attribute.Int64("seed", g.session.Seed()),
		)
	}
	return attrs
}

// fail stops the loop with an error that Run returns.
func (g *Game) fail(err error) {
	if g.err == nil {
		g.err = err
	}
	g.running = false
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.timer.Stop()
	if g.screen != nil {
		g.screen.Close()
	}
}
