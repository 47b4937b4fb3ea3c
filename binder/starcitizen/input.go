package starcitizen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ankurkotwal/bindchain/binder/canon"
)

// Device - class of input device a binding belongs to
type Device string

const (
	// DeviceKeyboard - kb<n>_
	DeviceKeyboard Device = "keyboard"
	// DeviceMouse - mo<n>_ (or mouse<n>_)
	DeviceMouse Device = "mouse"
	// DeviceGamepad - gp<n>_
	DeviceGamepad Device = "gamepad"
	// DeviceJoystick - js<n>_
	DeviceJoystick Device = "joystick"
)

// Devices lists the device classes in display order
var Devices = []Device{DeviceKeyboard, DeviceMouse, DeviceGamepad, DeviceJoystick}

func isDigits(text string) bool {
	if len(text) == 0 {
		return false
	}
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}

// ParseDevice matches a device class name case-insensitively
func ParseDevice(name string) (Device, error) {
	for _, device := range Devices {
		if strings.EqualFold(string(device), strings.TrimSpace(name)) {
			return device, nil
		}
	}
	return "", fmt.Errorf("unknown device class %q", name)
}

// devicePrefixes is checked in order, so "mouse" has to precede "mo"
var devicePrefixes = []struct {
	prefix string
	device Device
}{
	{"kb", DeviceKeyboard},
	{"gp", DeviceGamepad},
	{"js", DeviceJoystick},
	{"mouse", DeviceMouse},
	{"mo", DeviceMouse},
}

// Input - a parsed input string such as "kb1_lalt+1"
type Input struct {
	Device    Device
	Instance  int
	Key       string
	Modifiers []string
}

// ParseInput splits an input string of the form
// <prefix><instance>_<modifier+>*<key>. The last "+" separated token is the
// key and the preceding ones are modifiers. Returns false for unknown
// prefixes, a missing instance number or an empty key.
func ParseInput(input string) (Input, bool) {
	var parsed Input
	underscore := strings.IndexByte(input, '_')
	if underscore < 0 {
		return parsed, false
	}
	head, rest := input[:underscore], input[underscore+1:]

	found := false
	for _, candidate := range devicePrefixes {
		if !strings.HasPrefix(head, candidate.prefix) {
			continue
		}
		digits := head[len(candidate.prefix):]
		if !isDigits(digits) {
			return parsed, false
		}
		instance, err := strconv.Atoi(digits)
		if err != nil {
			return parsed, false
		}
		parsed.Device = candidate.device
		parsed.Instance = instance
		found = true
		break
	}
	if !found || len(rest) == 0 {
		return parsed, false
	}

	tokens := strings.Split(rest, "+")
	parsed.Key = tokens[len(tokens)-1]
	parsed.Modifiers = make([]string, 0, len(tokens)-1)
	for _, modifier := range tokens[:len(tokens)-1] {
		if len(modifier) > 0 {
			parsed.Modifiers = append(parsed.Modifiers, modifier)
		}
	}
	if len(parsed.Key) == 0 {
		return parsed, false
	}
	return parsed, true
}

// IsBlank reports whether the key is the game's "unbound" placeholder
func (i Input) IsBlank() bool {
	return len(strings.TrimSpace(i.Key)) == 0
}

// Canonical returns the key and modifiers in canonical naming for the device
func (i Input) Canonical() (string, []string) {
	var normalise func(string) string
	switch i.Device {
	case DeviceKeyboard:
		normalise = canon.KeyName
	case DeviceGamepad:
		normalise = canon.ButtonName
	default:
		return i.Key, append([]string(nil), i.Modifiers...)
	}
	modifiers := make([]string, len(i.Modifiers))
	for idx, modifier := range i.Modifiers {
		modifiers[idx] = normalise(modifier)
	}
	return normalise(i.Key), modifiers
}
