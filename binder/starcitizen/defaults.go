package starcitizen

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// BindState - whether a device class can be bound to an action, and if it is
type BindState int

const (
	// NotBindable - the device attribute is absent
	NotBindable BindState = iota
	// BindableUnbound - the attribute is present but blank
	BindableUnbound
	// Bound - the attribute carries a value
	Bound
)

func (s BindState) String() string {
	switch s {
	case BindableUnbound:
		return "unbound"
	case Bound:
		return "bound"
	default:
		return "not-bindable"
	}
}

// Bind is the default binding of one device class for an action. The zero
// value is not bindable.
type Bind struct {
	state BindState
	value string
}

// NotBindableBind returns a bind for an absent device attribute
func NotBindableBind() Bind { return Bind{state: NotBindable} }

// UnboundBind returns a bind for a bindable device with no default
func UnboundBind() Bind { return Bind{state: BindableUnbound} }

// BoundBind returns a bind carrying a default input
func BoundBind(value string) Bind { return Bind{state: Bound, value: value} }

// State of the bind
func (b Bind) State() BindState { return b.state }

// Value returns the bound input and true, or "" and false when not bound
func (b Bind) Value() (string, bool) { return b.value, b.state == Bound }

// Bindable reports whether the device class can be bound at all
func (b Bind) Bindable() bool { return b.state != NotBindable }

func (b Bind) String() string {
	if b.state == Bound {
		return b.value
	}
	return b.state.String()
}

// MarshalYAML emits the bound value, or the state name otherwise
func (b Bind) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}

// MarshalJSON emits {"state": ..., "value": ...}
func (b Bind) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		State string `json:"state"`
		Value string `json:"value,omitempty"`
	}{b.state.String(), b.value})
}

func newBind(element xml.StartElement, name string) Bind {
	value, found := lookupAttr(element, name)
	switch {
	case !found:
		return NotBindableBind()
	case len(strings.TrimSpace(value)) == 0:
		return UnboundBind()
	default:
		return BoundBind(value)
	}
}

// DefaultAction - one action of the default profile with its per-device binds
type DefaultAction struct {
	Action         string          `json:"action" yaml:"action"`
	ActionMap      string          `json:"actionMap" yaml:"actionMap"`
	Binds          map[Device]Bind `json:"binds" yaml:"binds"`
	ActivationMode string          `json:"activationMode,omitempty" yaml:"activationMode,omitempty"`
	Category       string          `json:"category,omitempty" yaml:"category,omitempty"`
	UICategory     string          `json:"uiCategory,omitempty" yaml:"uiCategory,omitempty"`
	Label          string          `json:"label" yaml:"label"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
	Version        string          `json:"version,omitempty" yaml:"version,omitempty"`
	OptionGroup    string          `json:"optionGroup,omitempty" yaml:"optionGroup,omitempty"`
}

// Bind returns the bind for a device class. Missing classes are not bindable.
func (a *DefaultAction) Bind(device Device) Bind {
	return a.Binds[device]
}

// excludedMaps are developer-only action maps
var excludedMaps = map[string]bool{"debug": true}

const excludedActionPrefix = "flashui"

// ParseDefaultProfile reads the game's default profile. Version and UI
// category are inherited from the owning action map. The first action with a
// given name wins. Actions in excluded maps, with an excluded prefix, or
// without label, description and category are dropped.
func ParseDefaultProfile(data []byte) ([]*DefaultAction, error) {
	actions := make([]*DefaultAction, 0)
	seen := mapset.New[string]()
	mapCount := 0

	var mapName, version, uiCategory string
	inMap, excluded := false, false
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
			case "actionmap":
				mapCount++
				inMap = true
				mapName = attr(ty, "name")
				version = attr(ty, "version")
				uiCategory = attr(ty, "UICategory")
				excluded = excludedMaps[mapName]
			case "action":
				if !inMap || excluded {
					continue
				}
				action := newDefaultAction(ty, mapName, version, uiCategory)
				if action == nil || seen.Has(action.Action) {
					continue
				}
				seen.Put(action.Action)
				actions = append(actions, action)
			}
		case xml.EndElement:
			if ty.Name.Local == "actionmap" {
				mapName, version, uiCategory = "", "", ""
				inMap, excluded = false, false
			}
		}
	}

	if mapCount == 0 {
		return nil, ErrNoActionMaps
	}
	return actions, nil
}

func newDefaultAction(element xml.StartElement, mapName, version,
	uiCategory string) *DefaultAction {
	name := attr(element, "name")
	if len(name) == 0 || strings.HasPrefix(name, excludedActionPrefix) {
		return nil
	}
	label := attr(element, "UILabel")
	description := attr(element, "UIDescription")
	category := attr(element, "Category")
	if len(label) == 0 && len(description) == 0 && len(category) == 0 {
		return nil
	}

	action := &DefaultAction{
		Action:         name,
		ActionMap:      mapName,
		Binds:          make(map[Device]Bind, len(Devices)),
		ActivationMode: attr(element, "activationMode"),
		Category:       category,
		UICategory:     uiCategory,
		Label:          strings.TrimSpace(label),
		Description:    strings.TrimSpace(description),
		Version:        version,
		OptionGroup:    attr(element, "optionGroup"),
	}
	for _, device := range Devices {
		action.Binds[device] = newBind(element, string(device))
	}
	return action
}

// FilterDefaultsByMap returns the actions of one action map
func FilterDefaultsByMap(actions []*DefaultAction, mapName string) []*DefaultAction {
	filtered := make([]*DefaultAction, 0)
	for _, action := range actions {
		if action.ActionMap == mapName {
			filtered = append(filtered, action)
		}
	}
	return filtered
}

// DefaultActionMapNames returns unique action map names in first-seen order
func DefaultActionMapNames(actions []*DefaultAction) []string {
	seen := mapset.New[string]()
	names := make([]string, 0)
	for _, action := range actions {
		if !seen.Has(action.ActionMap) {
			seen.Put(action.ActionMap)
			names = append(names, action.ActionMap)
		}
	}
	return names
}

// DefaultActionLookup indexes actions by name
func DefaultActionLookup(actions []*DefaultAction) map[string]*DefaultAction {
	lookup := make(map[string]*DefaultAction, len(actions))
	for _, action := range actions {
		lookup[action.Action] = action
	}
	return lookup
}

// DefaultActionGroup - actions of one action map
type DefaultActionGroup struct {
	ActionMap string
	Actions   []*DefaultAction
}

// GroupDefaultsByMap groups actions by action map, in first-seen order
func GroupDefaultsByMap(actions []*DefaultAction) []DefaultActionGroup {
	groups := make([]DefaultActionGroup, 0)
	positions := make(map[string]int)
	for _, action := range actions {
		pos, found := positions[action.ActionMap]
		if !found {
			pos = len(groups)
			positions[action.ActionMap] = pos
			groups = append(groups, DefaultActionGroup{ActionMap: action.ActionMap})
		}
		groups[pos].Actions = append(groups[pos].Actions, action)
	}
	return groups
}

// BindingStateFilter - which actions to keep relative to the selected devices
type BindingStateFilter string

const (
	// FilterAll keeps every action
	FilterAll BindingStateFilter = "all"
	// FilterBound keeps actions bound on at least one selected device
	FilterBound BindingStateFilter = "bound"
	// FilterUnbound keeps actions bound on none of the selected devices
	FilterUnbound BindingStateFilter = "unbound"
)

// ParseBindingStateFilter matches a state filter name. Empty means all.
func ParseBindingStateFilter(name string) (BindingStateFilter, error) {
	switch BindingStateFilter(strings.ToLower(strings.TrimSpace(name))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterBound:
		return FilterBound, nil
	case FilterUnbound:
		return FilterUnbound, nil
	}
	return FilterAll, fmt.Errorf("unknown binding state filter %q", name)
}

// DefaultFilter selects default actions. Zero values match everything.
type DefaultFilter struct {
	Search     string
	ActionMaps []string
	State      BindingStateFilter
	Devices    []Device
}

// FilterDefaults applies search, action map and binding state filters in turn
func FilterDefaults(actions []*DefaultAction, filter DefaultFilter) []*DefaultAction {
	query := strings.ToLower(strings.TrimSpace(filter.Search))
	maps := mapset.New[string]()
	for _, name := range filter.ActionMaps {
		maps.Put(name)
	}
	devices := filter.Devices
	if len(devices) == 0 {
		devices = Devices
	}

	filtered := make([]*DefaultAction, 0, len(actions))
	for _, action := range actions {
		if len(query) > 0 && !defaultMatches(action, query) {
			continue
		}
		if len(filter.ActionMaps) > 0 && !maps.Has(action.ActionMap) {
			continue
		}
		switch filter.State {
		case FilterBound:
			if !boundOnAny(action, devices) {
				continue
			}
		case FilterUnbound:
			if boundOnAny(action, devices) {
				continue
			}
		}
		filtered = append(filtered, action)
	}
	return filtered
}

func defaultMatches(action *DefaultAction, query string) bool {
	fields := []string{action.Label, action.Action, action.ActionMap, action.Description}
	for _, device := range Devices {
		if value, bound := action.Bind(device).Value(); bound {
			fields = append(fields, value)
		}
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func boundOnAny(action *DefaultAction, devices []Device) bool {
	for _, device := range devices {
		if action.Bind(device).State() == Bound {
			return true
		}
	}
	return false
}

// SortedDefaultActionMapNames returns unique action map names sorted
func SortedDefaultActionMapNames(actions []*DefaultAction) []string {
	names := DefaultActionMapNames(actions)
	sort.Strings(names)
	return names
}

// ResolveLabels replaces label and description references with localized text
func ResolveLabels(actions []*DefaultAction, loc Localization) {
	for _, action := range actions {
		action.Label = loc.Resolve(action.Label)
		action.Description = loc.Resolve(action.Description)
	}
}
