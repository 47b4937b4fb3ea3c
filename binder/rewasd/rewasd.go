// Package rewasd parses controller remapper configurations into the keyboard
// keys each physical button produces.
package rewasd

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/zyedidia/generic/mapset"

	"github.com/ankurkotwal/bindchain/binder/canon"
)

// ErrNoDocument is returned when there is no configuration document at all
var ErrNoDocument = errors.New("rewasd: no configuration document")

// Layer - a remap layer (shift) referenced by mappings
type Layer struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
}

// MacroStep - one key of a macro and how long it is held, if known
type MacroStep struct {
	Key  string        `json:"key" yaml:"key"`
	Hold time.Duration `json:"hold,omitempty" yaml:"hold,omitempty"`
}

// Mapping - a physical button (optionally chorded or layered) and the keys it emits
type Mapping struct {
	MaskID      int           `json:"maskId" yaml:"maskId"`
	Button      string        `json:"button" yaml:"button"`
	Modifier    string        `json:"modifier,omitempty" yaml:"modifier,omitempty"`
	Layer       *Layer        `json:"layer,omitempty" yaml:"layer,omitempty"`
	Activator   ActivatorType `json:"activator" yaml:"activator"`
	Mode        ActivatorMode `json:"mode" yaml:"mode"`
	Steps       []MacroStep   `json:"steps" yaml:"steps"`
	OutputKeys  []string      `json:"outputKeys" yaml:"outputKeys"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// KeyIndex - lower case key (or "+" joined chord) -> mappings that emit it
type KeyIndex map[string][]*Mapping

// Result - everything extracted from one configuration
type Result struct {
	Mappings []*Mapping
	Layers   []Layer
	Index    KeyIndex
	Errors   []string
}

// maskInfo is the resolved physical side of a mask
type maskInfo struct {
	button   string
	modifier string
}

// ParseJSON decodes and parses a configuration. A document that cannot be
// decoded yields an empty result carrying the decode error; only a null
// document is fatal.
func ParseJSON(data []byte) (*Result, error) {
	var config *Config
	if err := json.Unmarshal(data, &config); err != nil {
		result := newResult()
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to parse JSON: %s", err))
		return result, nil
	}
	return Parse(config)
}

// Parse extracts button -> key mappings from a decoded configuration
func Parse(config *Config) (*Result, error) {
	if config == nil {
		return nil, ErrNoDocument
	}
	result := newResult()

	masks := buildMasks(config.Masks)
	layers := make(map[int]Layer, len(config.Shifts))
	for _, shift := range config.Shifts {
		layer := Layer{ID: shift.ID, Description: shift.Description, Type: shift.Type}
		result.Layers = append(result.Layers, layer)
		layers[shift.ID] = layer
	}

	for _, entry := range config.Mappings {
		// Layer jumps switch shifts, they emit nothing to the game
		if entry.JumpToLayer != nil {
			continue
		}
		// Stick, radial and other entries without a button mask
		if entry.Condition.Mask == nil || entry.Condition.Mask.ID == nil {
			continue
		}
		maskID := *entry.Condition.Mask.ID
		mask, found := masks[maskID]
		if !found {
			result.Errors = append(result.Errors, fmt.Sprintf("Unknown mask ID: %d", maskID))
			continue
		}

		steps := extractKeySteps(entry.Macros)
		if len(steps) == 0 {
			// Gamepad, mouse or rumble only output
			continue
		}

		mapping := &Mapping{
			MaskID:      maskID,
			Button:      mask.button,
			Modifier:    mask.modifier,
			Activator:   ActivatorSingle,
			Mode:        ModeOneTime,
			Steps:       steps,
			Description: entry.Description,
		}
		for _, step := range steps {
			mapping.OutputKeys = append(mapping.OutputKeys, step.Key)
		}
		if activator := entry.Condition.Mask.Activator; activator != nil {
			if activator.Type != "" {
				mapping.Activator = activator.Type
			}
			if activator.Mode != "" {
				mapping.Mode = activator.Mode
			}
		}
		if shiftID := entry.Condition.ShiftID; shiftID != nil {
			if layer, found := layers[*shiftID]; found {
				mapping.Layer = &layer
				if mapping.Modifier == "" && layer.Description != "" {
					mapping.Modifier = canon.ButtonName(layer.Description)
				}
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("Unknown shift ID: %d", *shiftID))
			}
		}
		result.Mappings = append(result.Mappings, mapping)
	}

	result.Index = BuildKeyIndex(result.Mappings)
	return result, nil
}

func newResult() *Result {
	return &Result{
		Mappings: make([]*Mapping, 0),
		Layers:   make([]Layer, 0),
		Index:    make(KeyIndex),
		Errors:   make([]string, 0),
	}
}

// buildMasks resolves each mask to its physical button. A mask with several
// buttons is a chord: the last button is the one pressed, the rest are held.
func buildMasks(masks []Mask) map[int]maskInfo {
	infos := make(map[int]maskInfo, len(masks))
	for _, mask := range masks {
		if len(mask.Set) == 0 {
			continue
		}
		info := maskInfo{button: maskButtonName(mask.Set[len(mask.Set)-1])}
		if len(mask.Set) > 1 {
			modifiers := make([]string, 0, len(mask.Set)-1)
			for _, held := range mask.Set[:len(mask.Set)-1] {
				modifiers = append(modifiers, maskButtonName(held))
			}
			info.modifier = strings.Join(modifiers, "+")
		}
		infos[mask.ID] = info
	}
	return infos
}

func maskButtonName(button MaskButton) string {
	if !canon.IsKnownButtonCode(button.ButtonID) && len(button.Description) > 0 {
		return canon.ButtonName(button.Description)
	}
	return canon.ButtonNameForCode(button.ButtonID)
}

// extractKeySteps returns the keyboard keys of a macro in first-press order.
// Down/up pairs collapse to one step; a pause directly after a key press is
// recorded as that key's hold time.
func extractKeySteps(macros []MacroItem) []MacroStep {
	steps := make([]MacroStep, 0)
	seen := mapset.New[string]()
	last := -1
	for _, item := range macros {
		switch {
		case item.Keyboard != nil:
			name := keyName(item.Keyboard)
			if seen.Has(name) {
				last = -1
				continue
			}
			seen.Put(name)
			steps = append(steps, MacroStep{Key: name})
			last = len(steps) - 1
		case item.Pause != nil:
			if last >= 0 && item.Pause.Value > 0 {
				steps[last].Hold += time.Duration(item.Pause.Value) * time.Millisecond
			}
		default:
			last = -1
		}
	}
	return steps
}

func keyName(action *KeyAction) string {
	if len(action.Description) > 0 {
		return canon.KeyName(action.Description)
	}
	return canon.KeyNameForCode(action.ButtonID)
}

// JoinKeys returns the lower case "+" joined lookup form of a key sequence
func JoinKeys(keys []string) string {
	return strings.ToLower(strings.Join(keys, "+"))
}

// BuildKeyIndex indexes mappings by each emitted key and, for multi-key
// output, by the whole chord. Mappings reaching the same key are all kept.
func BuildKeyIndex(mappings []*Mapping) KeyIndex {
	index := make(KeyIndex)
	for _, mapping := range mappings {
		for _, key := range mapping.OutputKeys {
			normalised := strings.ToLower(key)
			index[normalised] = append(index[normalised], mapping)
		}
		if len(mapping.OutputKeys) > 1 {
			chord := JoinKeys(mapping.OutputKeys)
			index[chord] = append(index[chord], mapping)
		}
	}
	return index
}

// FormatMapping returns a one line human description of a mapping
func FormatMapping(mapping *Mapping) string {
	parts := make([]string, 0, 4)
	if len(mapping.Modifier) > 0 {
		parts = append(parts, fmt.Sprintf("%s + %s", mapping.Modifier, mapping.Button))
	} else {
		parts = append(parts, mapping.Button)
	}
	if mapping.Activator != ActivatorSingle {
		parts = append(parts, fmt.Sprintf("(%s)", mapping.Activator))
	}
	parts = append(parts, "→", strings.Join(mapping.OutputKeys, " + "))
	return strings.Join(parts, " ")
}
