package common

import (
	"fmt"
	"sort"

	"github.com/ankurkotwal/bindchain/binder/classify"
)

// GameData holds optional additions to the built-in classification tables
type GameData struct {
	// Action identifier -> display name
	ActionNames map[string]string `yaml:"ActionNames"`
	// Action map -> gameplay mode name
	ActionMapModes map[string]string `yaml:"ActionMapModes"`
	// Gameplay mode name -> card band colour
	ModeColours ModeToColours `yaml:"ModeColours"`
}

// ModeToColours is a mapping of gameplay modes to colours used for visual grouping
type ModeToColours map[string]string

// Keys returns the mode names
func (m ModeToColours) Keys() []string {
	array := make([]string, 0, len(m))
	for k := range m {
		array = append(array, k)
	}
	return array
}

// LoadGameData reads the game data file. An empty filename yields empty data.
// Mode colours have to name known gameplay modes.
func LoadGameData(filename string, log *Logger) (*GameData, error) {
	data := &GameData{}
	if len(filename) == 0 {
		return data, nil
	}
	if err := LoadYaml(filename, data, "GameData", log); err != nil {
		return nil, err
	}
	modes := data.ModeColours.Keys()
	sort.Strings(modes)
	for _, mode := range modes {
		if _, err := classify.ParseMode(mode); err != nil {
			return nil, fmt.Errorf("mode colours: %w", err)
		}
	}
	return data, nil
}

// Classifier returns the built-in tables extended with this game data
func (g *GameData) Classifier() (*classify.Tables, error) {
	if g == nil || (len(g.ActionNames) == 0 && len(g.ActionMapModes) == 0) {
		return classify.Default(), nil
	}
	tables, err := classify.New(g.ActionNames, g.ActionMapModes)
	if err != nil {
		return nil, fmt.Errorf("game data: %w", err)
	}
	return tables, nil
}
