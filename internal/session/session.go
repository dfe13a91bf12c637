// Package session runs a single game of Minesweeper: it owns the board,
// drives the not-started/in-progress/won/lost state machine and exposes
// the commands and queries a presentation layer needs.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/field"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/telemetry"
)

// MaxElapsed is the ceiling of the seconds counter.
const MaxElapsed = 999

// Config holds the options for a new session.
type Config struct {
	Width  int
	Height int
	Mines  int

	// StarterZone is the number of cells kept free of mines around the
	// first click. Zero means field.DefaultStarterZone. On boards with fewer
	// than StarterZone mine-free cells the zone shrinks to Width*Height-Mines;
	// Session.StarterZone reports the size in effect.
	StarterZone int

	// Seed for mine placement. A seed of 0 means a random seed will be generated.
	Seed int64
}

// Session is one game. It is the only mutator of its board and is not
// safe for concurrent use.
type Session struct {
	id          uuid.UUID
	board       *field.Board
	rng         *rand.Rand
	seed        int64
	mineCount   int
	starterZone int
	status      Status
	elapsed     int

	press   *field.Point
	preview map[field.Point]bool
}

// New validates the configuration and creates a session with an empty,
// unrevealed board.
func New(ctx context.Context, cfg Config) (*Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	board, err := field.NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	zone := cfg.StarterZone
	if zone == 0 {
		zone = field.DefaultStarterZone
	}
	// The zone never claims cells the mines need
	if free := board.Size() - cfg.Mines; zone > free {
		zone = free
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		id:          uuid.New(),
		board:       board,
		rng:         rand.New(rand.NewSource(seed)),
		seed:        seed,
		mineCount:   cfg.Mines,
		starterZone: zone,
		status:      StatusNotStarted,
		preview:     make(map[field.Point]bool),
	}

	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "session.new")
	span.SetAttributes(
		attribute.String("session.id", s.id.String()),
		attribute.Int("session.width", cfg.Width),
		attribute.Int("session.height", cfg.Height),
		attribute.Int("session.mines", cfg.Mines),
		attribute.Int("session.starter_zone", zone),
		attribute.Int64("session.seed", seed),
	)
	span.End()

	return s, nil
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: board size %dx%d", field.ErrInvalidConfiguration, c.Width, c.Height)
	}
	if c.Mines < 0 || c.Mines >= c.Width*c.Height {
		return fmt.Errorf("%w: %d mines on a %dx%d board", field.ErrInvalidConfiguration, c.Mines, c.Width, c.Height)
	}
	if c.StarterZone < 0 {
		return fmt.Errorf("%w: starter zone %d", field.ErrInvalidConfiguration, c.StarterZone)
	}
	return nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID { return s.id }

// Seed returns the seed used for mine placement.
func (s *Session) Seed() int64 { return s.seed }

// Width returns the number of columns.
func (s *Session) Width() int { return s.board.Width }

// Height returns the number of rows.
func (s *Session) Height() int { return s.board.Height }

// StarterZone returns the size of the first-click safe zone after any
// shrinking for a crowded board.
func (s *Session) StarterZone() int { return s.starterZone }

// MineCount returns the number of mines on the board.
func (s *Session) MineCount() int { return s.mineCount }

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Elapsed returns the seconds counted since the first reveal.
func (s *Session) Elapsed() int { return s.elapsed }

// RemainingFlags returns how many flags may still be placed.
func (s *Session) RemainingFlags() int {
	return s.mineCount - s.board.FlaggedCount()
}

// TimerRunning returns true while the seconds counter should advance.
func (s *Session) TimerRunning() bool {
	return s.status == StatusInProgress && s.elapsed < MaxElapsed
}

// Tick advances the seconds counter by one. It is a no-op unless the game
// is in progress and below MaxElapsed. Returns true if the counter moved.
func (s *Session) Tick() bool {
	if !s.TimerRunning() {
		return false
	}
	s.elapsed++
	return true
}

// CellView returns what the player sees at (x, y).
func (s *Session) CellView(x, y int) (View, error) {
	cell, err := s.board.CellAt(x, y)
	if err != nil {
		return View{}, err
	}

	view := View{Pressed: s.preview[cell.Point()]}
	switch {
	case cell.Flagged:
		view.State = FlagPlaced
	case !cell.Revealed:
		view.State = Hidden
	case cell.Exploded:
		view.State = Revealed
		view.Content = ContentExploded
	case cell.Kind.IsMine():
		view.State = Revealed
		view.Content = ContentMine
	default:
		view.State = Revealed
		view.Content = ContentNumber
		view.Number = cell.Kind.Count()
	}
	return view, nil
}
