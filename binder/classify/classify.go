// Package classify maps game action maps to gameplay modes and action
// identifiers to display names.
package classify

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode - the gameplay context an action belongs to
type Mode string

const (
	ModeGeneral   Mode = "General"
	ModeFlight    Mode = "Flight"
	ModeFPS       Mode = "FPS"
	ModeEVA       Mode = "EVA"
	ModeVehicle   Mode = "Vehicle"
	ModeMining    Mode = "Mining"
	ModeSalvage   Mode = "Salvage"
	ModeScanning  Mode = "Scanning"
	ModeTurret    Mode = "Turret"
	ModeInventory Mode = "Inventory"
	ModeMobiglass Mode = "Mobiglass"
	ModeCamera    Mode = "Camera"
	ModeSocial    Mode = "Social"
	// ModeUnknown is used for action maps that are not classified
	ModeUnknown Mode = "Unknown"
)

// Modes lists every mode in display order
var Modes = []Mode{ModeGeneral, ModeFlight, ModeFPS, ModeEVA, ModeVehicle, ModeMining,
	ModeSalvage, ModeScanning, ModeTurret, ModeInventory, ModeMobiglass, ModeCamera,
	ModeSocial, ModeUnknown}

// ParseMode matches a mode name case-insensitively
func ParseMode(name string) (Mode, error) {
	for _, mode := range Modes {
		if strings.EqualFold(string(mode), strings.TrimSpace(name)) {
			return mode, nil
		}
	}
	return ModeUnknown, fmt.Errorf("unknown gameplay mode %q", name)
}

// prefixes stripped from identifiers before formatting
var prefixes = []string{"v_", "fps_", "eva_", "vehicle_"}

// Tables classifies action maps and names actions. The zero value is not
// usable, use Default or New.
type Tables struct {
	names map[string]string
	modes map[string]Mode
}

var defaultTables = &Tables{names: actionNames, modes: actionMapModes}

// Default returns the built-in tables
func Default() *Tables {
	return defaultTables
}

// New returns the built-in tables extended with extra display names and
// action map modes. Extra entries win over built-in ones.
func New(names map[string]string, modes map[string]string) (*Tables, error) {
	tables := &Tables{
		names: make(map[string]string, len(actionNames)+len(names)),
		modes: make(map[string]Mode, len(actionMapModes)+len(modes)),
	}
	for action, name := range actionNames {
		tables.names[action] = name
	}
	for action, name := range names {
		tables.names[action] = name
	}
	for actionMap, mode := range actionMapModes {
		tables.modes[actionMap] = mode
	}
	for actionMap, name := range modes {
		mode, err := ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("action map %s: %w", actionMap, err)
		}
		tables.modes[actionMap] = mode
	}
	return tables, nil
}

// Mode returns the gameplay mode of an action map
func (t *Tables) Mode(actionMap string) Mode {
	if mode, found := t.modes[actionMap]; found {
		return mode
	}
	return ModeUnknown
}

// DisplayName returns the known display name of an action or a formatted
// version of its identifier
func (t *Tables) DisplayName(action string) string {
	if name, found := t.names[action]; found {
		return name
	}
	return FormatActionName(action)
}

// FormatActionName strips one known prefix and upper cases the first letter
// of the remaining underscore separated words, e.g. "v_toggle_mining_mode" -> "Toggle Mining Mode"
func FormatActionName(action string) string {
	for _, prefix := range prefixes {
		if strings.HasPrefix(action, prefix) {
			action = action[len(prefix):]
			break
		}
	}
	// Casers are stateful, so one per call
	caser := cases.Upper(language.English)
	words := strings.Split(action, "_")
	for idx, word := range words {
		if len(word) == 0 {
			continue
		}
		_, size := utf8.DecodeRuneInString(word)
		// Only the first letter changes, "3d" stays "3d"
		words[idx] = caser.String(word[:size]) + word[size:]
	}
	return strings.Join(words, " ")
}
