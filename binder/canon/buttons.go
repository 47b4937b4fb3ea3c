package canon

import (
	"fmt"
	"strings"
)

// buttonCodes maps remapper controller button ids to button names
var buttonCodes = map[int]string{
	// Face buttons
	1: "A", 2: "B", 3: "X", 4: "Y",
	// Bumpers
	5: "LB", 6: "RB",
	// Centre buttons and stick clicks
	7: "View", 8: "Menu", 9: "LS", 10: "RS", 11: "Xbox",
	// Elite paddles
	29: "P1", 30: "P2", 31: "P3", 32: "P4",
	// D-pad
	33: "DpadUp", 34: "DpadDown", 35: "DpadLeft", 36: "DpadRight",
	// Left stick zones
	37: "LSUp", 38: "LSDown", 39: "LSLeft", 40: "LSRight", 41: "LSUpLeft", 42: "LSUpRight",
	// Triggers as buttons
	51: "LT", 52: "RT",
	// Right stick zones
	113: "RSUp", 114: "RSDown", 115: "RSLeft", 116: "RSRight",
}

// buttonTokens maps lower case button tokens, from either the game's gamepad
// grammar or the remapper's descriptive strings, to button names
var buttonTokens = map[string]string{
	"a": "A", "b": "B", "x": "X", "y": "Y",
	"lb": "LB", "rb": "RB", "lt": "LT", "rt": "RT", "ls": "LS", "rs": "RS",
	"view": "View", "menu": "Menu", "xbox": "Xbox", "guide": "Xbox",
	"left stick": "LS", "right stick": "RS",
	"dpadup": "DpadUp", "dpaddown": "DpadDown", "dpadleft": "DpadLeft", "dpadright": "DpadRight",
	"dpad up": "DpadUp", "dpad down": "DpadDown", "dpad left": "DpadLeft", "dpad right": "DpadRight",
	"p1": "P1", "p2": "P2", "p3": "P3", "p4": "P4",

	// Game gamepad tokens
	"shoulderl": "LB", "shoulderr": "RB",
	"triggerl_btn": "LT", "triggerr_btn": "RT",
	"thumbl": "LS", "thumbr": "RS",
	"back": "View", "start": "Menu",
	"dpad_up": "DpadUp", "dpad_down": "DpadDown", "dpad_left": "DpadLeft", "dpad_right": "DpadRight",
}

// buttonDisplayNames are the long form labels for button names
var buttonDisplayNames = map[string]string{
	"A": "A Button", "B": "B Button", "X": "X Button", "Y": "Y Button",
	"LB": "Left Bumper", "RB": "Right Bumper", "LT": "Left Trigger", "RT": "Right Trigger",
	"View": "View Button", "Menu": "Menu Button",
	"LS": "Left Stick Click", "RS": "Right Stick Click", "Xbox": "Xbox Button",
	"P1": "Upper Left Paddle", "P2": "Upper Right Paddle",
	"P3": "Lower Left Paddle", "P4": "Lower Right Paddle",
	"DpadUp": "D-Pad Up", "DpadDown": "D-Pad Down",
	"DpadLeft": "D-Pad Left", "DpadRight": "D-Pad Right",
	"LSUp": "Left Stick Up", "LSDown": "Left Stick Down",
	"LSLeft": "Left Stick Left", "LSRight": "Left Stick Right",
	"RSUp": "Right Stick Up", "RSDown": "Right Stick Down",
	"RSLeft": "Right Stick Left", "RSRight": "Right Stick Right",
}

// descriptionPrefix is prepended by the remapper to Xbox button descriptions
const descriptionPrefix = "XB:"

// ButtonNameForCode returns the button name for a remapper button id. Unknown
// ids yield "Button<code>".
func ButtonNameForCode(code int) string {
	if name, found := buttonCodes[code]; found {
		return name
	}
	return fmt.Sprintf("Button%d", code)
}

// IsKnownButtonCode reports whether code has an entry in the button table
func IsKnownButtonCode(code int) bool {
	_, found := buttonCodes[code]
	return found
}

// ButtonName returns the button name for a raw token such as "shoulderl",
// "XB: A" or "Dpad Up". Matching is case-insensitive. Unknown tokens are
// returned trimmed and without the "XB:" prefix.
func ButtonName(token string) string {
	cleaned := strings.TrimSpace(token)
	if len(cleaned) >= len(descriptionPrefix) &&
		strings.EqualFold(cleaned[:len(descriptionPrefix)], descriptionPrefix) {
		cleaned = strings.TrimSpace(cleaned[len(descriptionPrefix):])
	}
	if name, found := buttonTokens[strings.ToLower(cleaned)]; found {
		return name
	}
	return cleaned
}

// ButtonDisplayName returns the long label for a button name, or the name itself
func ButtonDisplayName(button string) string {
	if label, found := buttonDisplayNames[button]; found {
		return label
	}
	return button
}
