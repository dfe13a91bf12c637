package game

import (
	"fmt"

	"github.com/AdamLandfrasz/sweeper-of-mines/internal/gamedata"
)

// Config holds game configuration options.
type Config struct {
	// Difficulty is the preset ID to start with. Empty means the registry default.
	Difficulty string

	// Width, Height and Mines describe a custom board. When any of them is
	// set all three are required and Difficulty is ignored.
	Width  int
	Height int
	Mines  int

	// StarterZone is the number of cells kept free of mines around the
	// first click. Zero means the engine default.
	StarterZone int

	// Seed for random number generation. Each new board draws its seed from
	// a generator seeded with this value, so a run of games is reproducible.
	// A seed of 0 means a random seed will be generated.
	Seed int64
}

// Custom returns true if the config describes a custom board.
func (c Config) Custom() bool {
	return c.Width != 0 || c.Height != 0 || c.Mines != 0
}

// boardSize is the shape of the board the next session is built with.
type boardSize struct {
	difficulty string // Preset ID, empty for a custom board
	width      int
	height     int
	mines      int
}

func presetSize(d *gamedata.DifficultyDef) boardSize {
	return boardSize{difficulty: d.ID, width: d.Width, height: d.Height, mines: d.Mines}
}

// resolve picks the starting board for the config.
func (c Config) resolve(registry *gamedata.DifficultyRegistry) (boardSize, error) {
	if c.Custom() {
		if c.Width <= 0 || c.Height <= 0 || c.Mines < 0 {
			return boardSize{}, fmt.Errorf("custom board needs width, height and mines: got %dx%d with %d mines",
				c.Width, c.Height, c.Mines)
		}
		return boardSize{width: c.Width, height: c.Height, mines: c.Mines}, nil
	}

	if c.Difficulty == "" {
		return presetSize(registry.Default()), nil
	}
	d, err := registry.Lookup(c.Difficulty)
	if err != nil {
		return boardSize{}, err
	}
	return presetSize(d), nil
}
