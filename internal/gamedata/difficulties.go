package gamedata

import "fmt"

// DifficultyDef defines a board preset loaded from JSON.
type DifficultyDef struct {
	ID     string `json:"id"`     // Unique identifier (e.g., "expert")
	Name   string `json:"name"`   // Display name (e.g., "Expert")
	Key    string `json:"key"`    // Keyboard shortcut that selects the preset
	Width  int    `json:"width"`  // Columns
	Height int    `json:"height"` // Rows
	Mines  int    `json:"mines"`  // Number of mines
}

// KeyRune returns the shortcut as a rune.
func (d *DifficultyDef) KeyRune() rune {
	if len(d.Key) == 0 {
		return 0
	}
	return rune(d.Key[0])
}

// Validate reports presets that cannot form a playable board.
func (d *DifficultyDef) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("difficulty %q: invalid size %dx%d", d.ID, d.Width, d.Height)
	}
	if d.Mines < 0 || d.Mines >= d.Width*d.Height {
		return fmt.Errorf("difficulty %q: %d mines do not fit a %dx%d board", d.ID, d.Mines, d.Width, d.Height)
	}
	return nil
}

// DifficultiesFile represents the structure of difficulties.json.
type DifficultiesFile struct {
	Default      string          `json:"default"`
	Difficulties []DifficultyDef `json:"difficulties"`
}

// LoadDifficulties loads the presets from the embedded difficulties.json file.
func LoadDifficulties() (DifficultiesFile, error) {
	file, err := Load[DifficultiesFile]("difficulties.json")
	if err != nil {
		return file, err
	}
	for i := range file.Difficulties {
		if err := file.Difficulties[i].Validate(); err != nil {
			return file, err
		}
	}
	return file, nil
}
