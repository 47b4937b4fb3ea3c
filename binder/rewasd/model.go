package rewasd

import "encoding/json"

// Config is the subset of a remapper configuration document that resolution needs
type Config struct {
	SchemaVersion int                    `json:"schemaVersion"`
	AppVersion    string                 `json:"appVersion"`
	Config        map[string]interface{} `json:"config"`
	Devices       map[string]interface{} `json:"devices"`
	Shifts        []Shift                `json:"shifts"`
	Masks         []Mask                 `json:"masks"`
	Mappings      []Entry                `json:"mappings"`
}

// Shift is a remap layer as written in the document
type Shift struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Mask is a named group of physical buttons
type Mask struct {
	ID  int          `json:"id"`
	Set []MaskButton `json:"set"`
}

// MaskButton is one physical button in a mask
type MaskButton struct {
	DeviceID    int    `json:"deviceId"`
	ButtonID    int    `json:"buttonId"`
	Description string `json:"description"`
}

// Entry is one mapping entry of the document
type Entry struct {
	Description string      `json:"description"`
	Condition   Condition   `json:"condition"`
	Macros      []MacroItem `json:"macros"`
	JumpToLayer *LayerJump  `json:"jumpToLayer"`
}

// Condition selects the button (mask) and layer an entry applies to
type Condition struct {
	ShiftID *int          `json:"shiftId"`
	Mask    *MaskActivate `json:"mask"`
}

// MaskActivate references a mask and how it is activated
type MaskActivate struct {
	ID        *int       `json:"id"`
	Activator *Activator `json:"activator"`
}

// Activator describes press kind and timing
type Activator struct {
	Type ActivatorType `json:"type"`
	Mode ActivatorMode `json:"mode"`
}

// LayerJump marks an entry that only switches layers
type LayerJump struct {
	Layer int `json:"layer"`
}

// MacroItem is one step of an entry's output. Only one field is set per step.
type MacroItem struct {
	Keyboard *KeyAction      `json:"keyboard,omitempty"`
	Gamepad  *KeyAction      `json:"gamepad,omitempty"`
	Mouse    *KeyAction      `json:"mouse,omitempty"`
	Pause    *PauseAction    `json:"pause,omitempty"`
	Rumble   json.RawMessage `json:"rumble,omitempty"`
}

// KeyAction is a key or button emission
type KeyAction struct {
	ButtonID    int    `json:"buttonId"`
	Description string `json:"description"`
	Action      string `json:"action,omitempty"`
}

// PauseAction is a delay in milliseconds between steps
type PauseAction struct {
	Value int `json:"value"`
}

// ActivatorType - how the physical button has to be pressed
type ActivatorType string

const (
	// ActivatorSingle - regular press
	ActivatorSingle ActivatorType = "single"
	// ActivatorLong - long press
	ActivatorLong ActivatorType = "long"
	// ActivatorDouble - double press
	ActivatorDouble ActivatorType = "double"
	// ActivatorStart - fires on press start
	ActivatorStart ActivatorType = "start"
	// ActivatorRelease - fires on release
	ActivatorRelease ActivatorType = "release"
)

// ActivatorMode - timing of the emitted output
type ActivatorMode string

const (
	// ModeOneTime - emit once
	ModeOneTime ActivatorMode = "onetime"
	// ModeHoldUntilRelease - hold output while the button is held
	ModeHoldUntilRelease ActivatorMode = "hold_until_release"
	// ModeTurbo - repeat while held
	ModeTurbo ActivatorMode = "turbo"
	// ModeToggle - toggles the output on each press
	ModeToggle ActivatorMode = "toggle"
)
