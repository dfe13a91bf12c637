package gamedata

import "github.com/gdamore/tcell/v2"

// PaletteDef holds the board colors loaded from JSON, as hex strings.
type PaletteDef struct {
	Numbers  []string `json:"numbers"` // Indexed by adjacent-mine count
	Hidden   string   `json:"hidden"`
	Revealed string   `json:"revealed"`
	Pressed  string   `json:"pressed"`
	Flag     string   `json:"flag"`
	Mine     string   `json:"mine"`
	Exploded string   `json:"exploded"`
	Counter  string   `json:"counter"`
	Panel    string   `json:"panel"`
}

// NumberColor returns the color for an adjacent-mine count.
func (p *PaletteDef) NumberColor(n int) tcell.Color {
	if n < 0 || n >= len(p.Numbers) {
		return tcell.ColorWhite
	}
	return color(p.Numbers[n])
}

// HiddenColor returns the background of an unopened cell.
func (p *PaletteDef) HiddenColor() tcell.Color { return color(p.Hidden) }

// RevealedColor returns the background of an opened cell.
func (p *PaletteDef) RevealedColor() tcell.Color { return color(p.Revealed) }

// PressedColor returns the background of a cell previewed by a held press.
func (p *PaletteDef) PressedColor() tcell.Color { return color(p.Pressed) }

// FlagColor returns the foreground of a flag.
func (p *PaletteDef) FlagColor() tcell.Color { return color(p.Flag) }

// MineColor returns the foreground of a mine.
func (p *PaletteDef) MineColor() tcell.Color { return color(p.Mine) }

// ExplodedColor returns the background of the mine that ended the game.
func (p *PaletteDef) ExplodedColor() tcell.Color { return color(p.Exploded) }

// CounterColor returns the foreground of the flag and time counters.
func (p *PaletteDef) CounterColor() tcell.Color { return color(p.Counter) }

// PanelColor returns the background of the counter panel.
func (p *PaletteDef) PanelColor() tcell.Color { return color(p.Panel) }

// color parses hex, falling back to white.
func color(hex string) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		return tcell.ColorWhite
	}
	return c
}

// LoadPalette loads the board colors from the embedded palette.json file.
func LoadPalette() (*PaletteDef, error) {
	palette, err := Load[PaletteDef]("palette.json")
	if err != nil {
		return nil, err
	}
	return &palette, nil
}

// MustLoadPalette loads the palette, panicking on error.
func MustLoadPalette() *PaletteDef {
	palette, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return palette
}
