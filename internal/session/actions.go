package session

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/field"
	"github.com/AdamLandfrasz/sweeper-of-mines/internal/telemetry"
)

// PrimaryAction reveals the cell at (x, y). The first reveal of a session
// lays out the mines around it and starts the game.
func (s *Session) PrimaryAction(ctx context.Context, x, y int) (Result, error) {
	ctx, span := s.startSpan(ctx, "session.reveal", x, y)
	defer span.End()

	cell, err := s.board.CellAt(x, y)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	var res Result
	switch {
	case s.status.Over():
		res.Code = GameOver
	case cell.Flagged:
		res.Code = Flagged
	case cell.Revealed:
		res.Code = AlreadyRevealed
	}
	if res.Code != Applied {
		span.SetAttributes(attribute.String("code", res.Code.String()))
		return res, nil
	}

	if s.status == StatusNotStarted {
		if err := s.board.Generate(ctx, s.rng, x, y, s.mineCount, s.starterZone); err != nil {
			span.RecordError(err)
			return Result{}, err
		}
		s.status = StatusInProgress
	}

	sweep, err := s.board.Reveal(x, y)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	res.Changed = s.settle(ctx, sweep)

	span.SetAttributes(
		attribute.String("code", res.Code.String()),
		attribute.Int("opened", len(sweep.Opened)),
		attribute.String("status", s.status.String()),
	)
	return res, nil
}

// SecondaryAction toggles the flag on the cell at (x, y). A new flag is
// refused once RemainingFlags reaches zero.
func (s *Session) SecondaryAction(ctx context.Context, x, y int) (Result, error) {
	_, span := s.startSpan(ctx, "session.flag", x, y)
	defer span.End()

	cell, err := s.board.CellAt(x, y)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	var res Result
	switch {
	case s.status.Over():
		res.Code = GameOver
	case cell.Revealed:
		res.Code = AlreadyRevealed
	case !cell.Flagged && s.RemainingFlags() <= 0:
		res.Code = NoFlagsLeft
	default:
		if _, err := s.board.ToggleFlag(x, y, s.mineCount); err != nil {
			span.RecordError(err)
			return Result{}, err
		}
		res.Changed = []field.Point{{X: x, Y: y}}
	}

	span.SetAttributes(
		attribute.String("code", res.Code.String()),
		attribute.Int("remaining_flags", s.RemainingFlags()),
	)
	return res, nil
}

// chord reveals the neighbors of a revealed number once enough of them
// are flagged.
func (s *Session) chord(ctx context.Context, x, y int) (Result, error) {
	ctx, span := s.startSpan(ctx, "session.chord", x, y)
	defer span.End()

	cell, err := s.board.CellAt(x, y)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	var res Result
	switch {
	case s.status.Over():
		res.Code = GameOver
	case !cell.Revealed:
		res.Code = NotRevealed
	default:
		flags, _ := s.board.FlaggedNeighbors(x, y)
		if flags < cell.Kind.Count() {
			res.Code = NotEnoughFlags
		}
	}
	if res.Code != Applied {
		span.SetAttributes(attribute.String("code", res.Code.String()))
		return res, nil
	}

	sweep, err := s.board.Chord(x, y)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	res.Changed = s.settle(ctx, sweep)

	span.SetAttributes(
		attribute.String("code", res.Code.String()),
		attribute.Int("opened", len(sweep.Opened)),
		attribute.String("status", s.status.String()),
	)
	return res, nil
}

// settle applies the end-of-game rules after a reveal and returns every
// cell that changed.
func (s *Session) settle(ctx context.Context, sweep field.Sweep) []field.Point {
	changed := sweep.Opened
	switch {
	case sweep.Detonated:
		s.status = StatusLost
		more, _ := s.board.Explode(sweep.Mine.X, sweep.Mine.Y)
		changed = append(changed, more...)
	case s.board.Cleared():
		s.status = StatusWon
		changed = append(changed, s.board.FlagAllMines()...)
	default:
		return changed
	}

	changed = append(changed, s.clearPress()...)
	s.recordEnd(ctx)
	return changed
}

// recordEnd traces the outcome of a finished game.
func (s *Session) recordEnd(ctx context.Context) {
	tracer := telemetry.Tracer("session")
	_, span := tracer.Start(ctx, "session.end")
	span.SetAttributes(
		attribute.String("session.id", s.id.String()),
		attribute.String("outcome", s.status.String()),
		attribute.Int("elapsed", s.elapsed),
		attribute.Int("revealed", s.board.RevealedSafeCount()),
	)
	span.End()
}

func (s *Session) startSpan(ctx context.Context, name string, x, y int) (context.Context, trace.Span) {
	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(
		attribute.String("session.id", s.id.String()),
		attribute.Int("x", x),
		attribute.Int("y", y),
	)
	return ctx, span
}
