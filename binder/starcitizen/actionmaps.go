// Package starcitizen parses the game's binding profiles (user actionmaps and
// the default profile) and its localization store.
package starcitizen

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformedXML is returned when a document is not well formed XML
var ErrMalformedXML = errors.New("starcitizen: malformed XML")

// ErrNoActionMaps is returned when a default profile contains no action maps
var ErrNoActionMaps = errors.New("starcitizen: no action maps found")

// Binding - one game action bound to one input
type Binding struct {
	ActionMap      string   `json:"actionMap" yaml:"actionMap"`
	Version        string   `json:"version,omitempty" yaml:"version,omitempty"`
	Action         string   `json:"action" yaml:"action"`
	Device         Device   `json:"device" yaml:"device"`
	Instance       int      `json:"instance" yaml:"instance"`
	Key            string   `json:"key" yaml:"key"`
	Modifiers      []string `json:"modifiers" yaml:"modifiers"`
	ActivationMode string   `json:"activationMode,omitempty" yaml:"activationMode,omitempty"`
	MultiTap       int      `json:"multiTap,omitempty" yaml:"multiTap,omitempty"`
	RawInput       string   `json:"rawInput" yaml:"rawInput"`
}

// Chord returns the lower case "+" joined modifiers and key
func (b *Binding) Chord() string {
	if len(b.Modifiers) == 0 {
		return strings.ToLower(b.Key)
	}
	return strings.ToLower(strings.Join(b.Modifiers, "+") + "+" + b.Key)
}

// BindingIndex - lower case chord -> bindings
type BindingIndex map[string][]*Binding

// BindingResult - everything extracted from one actionmaps document
type BindingResult struct {
	ProfileName  string
	Bindings     []*Binding
	KeyIndex     BindingIndex
	GamepadIndex BindingIndex
	Errors       []string
}

// ParseActionMaps reads a user actionmaps document. Inputs that cannot be
// understood are reported in Errors and skipped. A document that is not
// well formed XML is fatal.
func ParseActionMaps(data []byte) (*BindingResult, error) {
	result := &BindingResult{
		Bindings: make([]*Binding, 0),
		Errors:   make([]string, 0),
	}

	var actionMap, version, action string
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedXML, err)
		}

		switch ty := token.(type) {
		case xml.StartElement:
			switch ty.Name.Local {
			case "ActionMaps":
				result.ProfileName = attr(ty, "profileName")
			case "actionmap":
				actionMap = attr(ty, "name")
				version = attr(ty, "version")
			case "action":
				action = attr(ty, "name")
			case "rebind":
				input, found := lookupAttr(ty, "input")
				if !found || len(input) == 0 {
					continue
				}
				binding, err := newBinding(actionMap, version, action, input, ty)
				if err != nil {
					result.Errors = append(result.Errors, err.Error())
					continue
				}
				if binding != nil {
					result.Bindings = append(result.Bindings, binding)
				}
			}
		case xml.EndElement:
			switch ty.Name.Local {
			case "actionmap":
				actionMap, version = "", ""
			case "action":
				action = ""
			}
		}
	}

	result.KeyIndex = BuildIndex(result.Bindings, DeviceKeyboard)
	result.GamepadIndex = BuildIndex(result.Bindings, DeviceGamepad)
	return result, nil
}

// newBinding returns nil, nil for a cleared (blank) input
func newBinding(actionMap, version, action, input string,
	element xml.StartElement) (*Binding, error) {
	parsed, ok := ParseInput(input)
	if !ok {
		return nil, fmt.Errorf("Could not parse input: %s", input)
	}
	if parsed.IsBlank() {
		return nil, nil
	}
	key, modifiers := parsed.Canonical()
	binding := &Binding{
		ActionMap:      actionMap,
		Version:        version,
		Action:         action,
		Device:         parsed.Device,
		Instance:       parsed.Instance,
		Key:            key,
		Modifiers:      modifiers,
		ActivationMode: attr(element, "activationMode"),
		RawInput:       input,
	}
	if multiTap := attr(element, "multiTap"); len(multiTap) > 0 {
		count, err := strconv.Atoi(multiTap)
		if err != nil {
			return nil, fmt.Errorf("Invalid multiTap %q for %s", multiTap, action)
		}
		binding.MultiTap = count
	}
	return binding, nil
}

func lookupAttr(element xml.StartElement, name string) (string, bool) {
	for _, a := range element.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func attr(element xml.StartElement, name string) string {
	value, _ := lookupAttr(element, name)
	return value
}

// BuildIndex indexes the bindings of one device class by chord
func BuildIndex(bindings []*Binding, device Device) BindingIndex {
	index := make(BindingIndex)
	for _, binding := range bindings {
		if binding.Device != device {
			continue
		}
		chord := binding.Chord()
		index[chord] = append(index[chord], binding)
	}
	return index
}

// ActionMapNames returns the sorted unique action map names
func ActionMapNames(bindings []*Binding) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, binding := range bindings {
		if !seen[binding.ActionMap] {
			seen[binding.ActionMap] = true
			names = append(names, binding.ActionMap)
		}
	}
	sort.Strings(names)
	return names
}

// FilterByDevice returns the bindings of one device class
func FilterByDevice(bindings []*Binding, device Device) []*Binding {
	filtered := make([]*Binding, 0)
	for _, binding := range bindings {
		if binding.Device == device {
			filtered = append(filtered, binding)
		}
	}
	return filtered
}
