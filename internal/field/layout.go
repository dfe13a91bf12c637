package field

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/telemetry"
)

// DefaultStarterZone is the minimum number of cells protected around the first click.
const DefaultStarterZone = 15

// Generate lays out a board for a first click at (x, y): it marks the
// starter zone, places mines outside it and computes the numbers.
func (b *Board) Generate(ctx context.Context, rng *rand.Rand, x, y, mineCount, zoneSize int) error {
	tracer := telemetry.Tracer("field")
	_, span := tracer.Start(ctx, "field.generate")
	defer span.End()

	startTime := time.Now()

	zone, err := b.MarkStarterZone(x, y, zoneSize)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := b.LayoutMines(rng, mineCount, zone); err != nil {
		span.RecordError(err)
		return err
	}
	if err := b.ComputeNumbers(); err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttributes(
		attribute.Int("field.width", b.Width),
		attribute.Int("field.height", b.Height),
		attribute.Int("field.mines", len(b.mines)),
		attribute.Int("field.starter_zone", len(zone)),
		attribute.Int("field.first_x", x),
		attribute.Int("field.first_y", y),
		attribute.Int64("field.generation_us", time.Since(startTime).Microseconds()),
	)
	return nil
}

// MarkStarterZone marks cells as starter breadth-first from (x, y) until
// size cells are marked or the board runs out. The clicked cell is always
// marked. Returns the zone in marking order.
func (b *Board) MarkStarterZone(x, y, size int) ([]Point, error) {
	if !b.InBounds(x, y) {
		return nil, outOfBounds(x, y)
	}
	if size < 1 {
		size = 1
	}

	start := Point{x, y}
	b.at(start).Starter = true
	zone := []Point{start}

	for i := 0; i < len(zone) && len(zone) < size; i++ {
		for _, n := range b.neighborPoints(zone[i]) {
			if len(zone) >= size {
				break
			}
			cell := b.at(n)
			if cell.Starter {
				continue
			}
			cell.Starter = true
			zone = append(zone, n)
		}
	}

	return zone, nil
}

// LayoutMines places mineCount mines on uniformly random cells outside
// the protected set.
func (b *Board) LayoutMines(rng *rand.Rand, mineCount int, protected []Point) error {
	if b.numbered || len(b.mines) > 0 {
		return ErrAlreadyNumbered
	}

	excluded := make([]bool, b.Size())
	blocked := 0
	for _, p := range protected {
		if !b.InBounds(p.X, p.Y) {
			return outOfBounds(p.X, p.Y)
		}
		i := p.Y*b.Width + p.X
		if !excluded[i] {
			excluded[i] = true
			blocked++
		}
	}

	if mineCount < 0 || mineCount+blocked > b.Size() {
		return fmt.Errorf("%w: %d mines with %d protected cells on a %dx%d board",
			ErrInvalidConfiguration, mineCount, blocked, b.Width, b.Height)
	}

	mines := make([]Point, 0, mineCount)
	for len(mines) < mineCount {
		i := rng.Intn(b.Size())
		p := Point{X: i % b.Width, Y: i / b.Width}
		cell := b.at(p)
		if excluded[i] || cell.Kind.IsMine() {
			continue
		}
		cell.Kind = Mine
		mines = append(mines, p)
	}

	b.mines = mines
	return nil
}

// ComputeNumbers sets every non-mine cell to its adjacent-mine count.
// It runs once; the counts are frozen afterwards.
func (b *Board) ComputeNumbers() error {
	if b.numbered {
		return ErrAlreadyNumbered
	}

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cell := &b.cells[y][x]
			if cell.Kind.IsMine() {
				continue
			}
			count := 0
			for _, n := range b.neighborPoints(Point{x, y}) {
				if b.at(n).Kind.IsMine() {
					count++
				}
			}
			cell.Kind = Number(count)
		}
	}

	b.numbered = true
	return nil
}
