package canon

import (
	"fmt"
	"strings"
)

// keyCodes maps DirectInput scan codes (as written by remappers) to key names
var keyCodes = map[int]string{
	// Number row
	2: "1", 3: "2", 4: "3", 5: "4", 6: "5", 7: "6", 8: "7", 9: "8", 10: "9", 11: "0",
	12: "-", 13: "=", 14: "Backspace",

	// QWERTY row
	15: "Tab", 16: "Q", 17: "W", 18: "E", 19: "R", 20: "T", 21: "Y", 22: "U", 23: "I",
	24: "O", 25: "P", 26: "[", 27: "]", 28: "Enter",

	// ASDF row
	29: "LCtrl", 30: "A", 31: "S", 32: "D", 33: "F", 34: "G", 35: "H", 36: "J", 37: "K",
	38: "L", 39: ";", 40: "'", 41: "`", 42: "LShift", 43: "\\",

	// ZXCV row
	44: "Z", 45: "X", 46: "C", 47: "V", 48: "B", 49: "N", 50: "M", 51: ",", 52: ".",
	53: "/", 54: "RShift",

	55: "NumMult", 56: "LAlt", 57: "Space", 58: "CapsLock",

	59: "F1", 60: "F2", 61: "F3", 62: "F4", 63: "F5", 64: "F6", 65: "F7", 66: "F8",
	67: "F9", 68: "F10", 87: "F11", 88: "F12",

	// Numpad
	69: "NumLock", 70: "ScrollLock", 71: "Num7", 72: "Num8", 73: "Num9", 74: "NumMinus",
	75: "Num4", 76: "Num5", 77: "Num6", 78: "NumPlus", 79: "Num1", 80: "Num2",
	81: "Num3", 82: "Num0", 83: "NumDot",

	// Extended
	156: "NumEnter", 157: "RCtrl", 181: "NumDiv", 183: "PrintScreen", 184: "RAlt",
	197: "Pause", 199: "Home", 200: "Up", 201: "PgUp", 203: "Left", 205: "Right",
	207: "End", 208: "Down", 209: "PgDn", 210: "Insert", 211: "Delete", 219: "LWin",
	220: "RWin", 221: "Apps",
}

// dikPrefix prefixes every descriptive DirectInput key name
const dikPrefix = "DIK_"

// dikNames maps descriptive DirectInput names (upper case, without DIK_) to key names
var dikNames = map[string]string{
	"1": "1", "2": "2", "3": "3", "4": "4", "5": "5",
	"6": "6", "7": "7", "8": "8", "9": "9", "0": "0",

	"F1": "F1", "F2": "F2", "F3": "F3", "F4": "F4", "F5": "F5", "F6": "F6",
	"F7": "F7", "F8": "F8", "F9": "F9", "F10": "F10", "F11": "F11", "F12": "F12",

	"LSHIFT": "LShift", "RSHIFT": "RShift", "LCONTROL": "LCtrl", "RCONTROL": "RCtrl",
	"LMENU": "LAlt", "RMENU": "RAlt", "LWIN": "LWin", "RWIN": "RWin",

	"SPACE": "Space", "RETURN": "Enter", "ESCAPE": "Esc", "BACK": "Backspace",
	"TAB": "Tab", "CAPITAL": "CapsLock",

	"INSERT": "Insert", "DELETE": "Delete", "HOME": "Home", "END": "End",
	"PRIOR": "PgUp", "NEXT": "PgDn", "UP": "Up", "DOWN": "Down", "LEFT": "Left",
	"RIGHT": "Right",

	"NUMPAD0": "Num0", "NUMPAD1": "Num1", "NUMPAD2": "Num2", "NUMPAD3": "Num3",
	"NUMPAD4": "Num4", "NUMPAD5": "Num5", "NUMPAD6": "Num6", "NUMPAD7": "Num7",
	"NUMPAD8": "Num8", "NUMPAD9": "Num9", "NUMPADENTER": "NumEnter",
	"NUMPADPLUS": "NumPlus", "NUMPADMINUS": "NumMinus", "NUMPADSTAR": "NumMult",
	"NUMPADSLASH": "NumDiv", "DECIMAL": "NumDot", "NUMLOCK": "NumLock",

	"MINUS": "-", "EQUALS": "=", "LBRACKET": "[", "RBRACKET": "]", "SEMICOLON": ";",
	"APOSTROPHE": "'", "GRAVE": "`", "BACKSLASH": "\\", "COMMA": ",", "PERIOD": ".",
	"SLASH": "/",

	"SCROLL": "ScrollLock", "PAUSE": "Pause", "SYSRQ": "PrintScreen", "APPS": "Apps",
}

// gameKeys maps the game's lower case keyboard tokens to key names. Single
// letters, digits and function keys are handled by KeyName directly.
var gameKeys = map[string]string{
	"lalt": "LAlt", "ralt": "RAlt", "lctrl": "LCtrl", "rctrl": "RCtrl",
	"lshift": "LShift", "rshift": "RShift",
	"space": "Space", "enter": "Enter", "return": "Enter", "escape": "Esc", "esc": "Esc",
	"back": "Backspace", "backspace": "Backspace", "tab": "Tab", "capital": "CapsLock",
	"capslock": "CapsLock",
	"insert": "Insert", "delete": "Delete", "home": "Home", "end": "End",
	"prior": "PgUp", "pgup": "PgUp", "next": "PgDn", "pgdn": "PgDn",
	"up": "Up", "down": "Down", "left": "Left", "right": "Right",
	"minus": "-", "equals": "=", "lbracket": "[", "rbracket": "]", "semicolon": ";",
	"apostrophe": "'", "grave": "`", "backslash": "\\", "comma": ",", "period": ".",
	"slash": "/",
	"np_add": "NumPlus", "np_subtract": "NumMinus", "np_multiply": "NumMult",
	"np_divide": "NumDiv", "np_period": "NumDot", "np_enter": "NumEnter",
	"numlock": "NumLock", "scrolllock": "ScrollLock", "pause": "Pause", "print": "PrintScreen",
	"lwin": "LWin", "rwin": "RWin", "apps": "Apps",
}

// KeyNameForCode returns the key name for a DirectInput scan code. Unknown
// codes (including zero and negatives) yield "Key<code>".
func KeyNameForCode(code int) string {
	if name, found := keyCodes[code]; found {
		return name
	}
	return fmt.Sprintf("Key%d", code)
}

// KeyName returns the key name for a raw keyboard token. Both the remapper's
// descriptive names ("DIK_LMENU") and the game's tokens ("lalt", "np_1", "f7")
// are understood, case-insensitively. Unknown tokens come back with any DIK_
// prefix removed.
func KeyName(token string) string {
	trimmed := strings.TrimSpace(token)
	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, dikPrefix) {
		stripped := upper[len(dikPrefix):]
		if name, found := dikNames[stripped]; found {
			return name
		}
		// Single letters are not listed individually
		if len(stripped) == 1 && stripped[0] >= 'A' && stripped[0] <= 'Z' {
			return stripped
		}
		return trimmed[len(dikPrefix):]
	}

	lower := strings.ToLower(trimmed)
	if name, found := gameKeys[lower]; found {
		return name
	}
	if len(lower) == 1 {
		c := lower[0]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			return upper
		}
	}
	if isFunctionKey(lower) {
		return upper
	}
	if strings.HasPrefix(lower, "np_") {
		return "Num" + lower[len("np_"):]
	}
	if name, found := dikNames[upper]; found {
		return name
	}
	return trimmed
}

// isFunctionKey reports whether token looks like f1..f24
func isFunctionKey(token string) bool {
	if len(token) < 2 || len(token) > 3 || token[0] != 'f' {
		return false
	}
	for _, c := range token[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// KeyCodes returns a copy of the scan code table
func KeyCodes() map[int]string {
	out := make(map[int]string, len(keyCodes))
	for code, name := range keyCodes {
		out[code] = name
	}
	return out
}
