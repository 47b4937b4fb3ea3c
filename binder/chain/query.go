package chain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/ankurkotwal/bindchain/binder/classify"
)

// FilterByMode returns the mappings in one gameplay mode
func FilterByMode(mappings []*UnifiedMapping, mode classify.Mode) []*UnifiedMapping {
	return filter(mappings, func(m *UnifiedMapping) bool { return m.Mode == mode })
}

type modifierKind int

const (
	modifierAll modifierKind = iota
	modifierNone
	modifierAny
	modifierExact
)

// ModifierFilter selects mappings by modifier. The zero value keeps all.
type ModifierFilter struct {
	kind  modifierKind
	value string
}

// NoModifier keeps mappings without a modifier
func NoModifier() ModifierFilter { return ModifierFilter{kind: modifierNone} }

// AnyModifier keeps mappings with some modifier
func AnyModifier() ModifierFilter { return ModifierFilter{kind: modifierAny} }

// Modifier keeps mappings whose modifier is exactly name
func Modifier(name string) ModifierFilter {
	return ModifierFilter{kind: modifierExact, value: name}
}

// ParseModifierFilter reads the textual form used by the API and CLI:
// "" keeps all, "none" and "any" select presence, anything else is a name
func ParseModifierFilter(text string) ModifierFilter {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "":
		return ModifierFilter{}
	case "none":
		return NoModifier()
	case "any":
		return AnyModifier()
	default:
		return Modifier(strings.TrimSpace(text))
	}
}

func (f ModifierFilter) matches(m *UnifiedMapping) bool {
	switch f.kind {
	case modifierNone:
		return len(m.Modifier) == 0
	case modifierAny:
		return len(m.Modifier) > 0
	case modifierExact:
		return m.Modifier == f.value
	default:
		return true
	}
}

func (f ModifierFilter) String() string {
	switch f.kind {
	case modifierNone:
		return "none"
	case modifierAny:
		return "any"
	case modifierExact:
		return f.value
	default:
		return ""
	}
}

// FilterByModifier returns the mappings selected by the modifier filter
func FilterByModifier(mappings []*UnifiedMapping, modifier ModifierFilter) []*UnifiedMapping {
	return filter(mappings, modifier.matches)
}

// FilterByButton returns the mappings on one physical button
func FilterByButton(mappings []*UnifiedMapping, button string) []*UnifiedMapping {
	return filter(mappings, func(m *UnifiedMapping) bool { return m.Button == button })
}

// FilterBySource returns the mappings of one source
func FilterBySource(mappings []*UnifiedMapping, source Source) []*UnifiedMapping {
	return filter(mappings, func(m *UnifiedMapping) bool { return m.Source == source })
}

// ParseSource matches a source name
func ParseSource(name string) (Source, error) {
	for _, source := range Sources {
		if string(source) == strings.TrimSpace(name) {
			return source, nil
		}
	}
	return "", fmt.Errorf("unknown mapping source %q", name)
}

// Search matches the query case-insensitively against action, display name,
// button, modifier and description
func Search(mappings []*UnifiedMapping, query string) []*UnifiedMapping {
	lower := strings.ToLower(query)
	return filter(mappings, func(m *UnifiedMapping) bool {
		for _, field := range []string{m.Action, m.DisplayName, m.Button, m.Modifier, m.Description} {
			if strings.Contains(strings.ToLower(field), lower) {
				return true
			}
		}
		return false
	})
}

// ModeGroup - mappings of one gameplay mode
type ModeGroup struct {
	Mode     classify.Mode
	Mappings []*UnifiedMapping
}

// GroupByMode groups mappings by gameplay mode in first-seen order
func GroupByMode(mappings []*UnifiedMapping) []ModeGroup {
	groups := make([]ModeGroup, 0)
	positions := make(map[classify.Mode]int)
	for _, m := range mappings {
		pos, found := positions[m.Mode]
		if !found {
			pos = len(groups)
			positions[m.Mode] = pos
			groups = append(groups, ModeGroup{Mode: m.Mode})
		}
		groups[pos].Mappings = append(groups[pos].Mappings, m)
	}
	return groups
}

// ModifierGroup - mappings sharing a modifier. Modifier is empty for the
// group without one.
type ModifierGroup struct {
	Modifier string
	Mappings []*UnifiedMapping
}

// GroupByModifier groups mappings by modifier in first-seen order
func GroupByModifier(mappings []*UnifiedMapping) []ModifierGroup {
	groups := make([]ModifierGroup, 0)
	positions := make(map[string]int)
	for _, m := range mappings {
		pos, found := positions[m.Modifier]
		if !found {
			pos = len(groups)
			positions[m.Modifier] = pos
			groups = append(groups, ModifierGroup{Modifier: m.Modifier})
		}
		groups[pos].Mappings = append(groups[pos].Mappings, m)
	}
	return groups
}

// AvailableModes returns the sorted unique modes of the mappings
func AvailableModes(mappings []*UnifiedMapping) []classify.Mode {
	seen := mapset.New[classify.Mode]()
	modes := make([]classify.Mode, 0)
	for _, m := range mappings {
		if !seen.Has(m.Mode) {
			seen.Put(m.Mode)
			modes = append(modes, m.Mode)
		}
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })
	return modes
}

// AvailableModifiers returns the sorted unique non-empty modifiers
func AvailableModifiers(mappings []*UnifiedMapping) []string {
	seen := mapset.New[string]()
	modifiers := make([]string, 0)
	for _, m := range mappings {
		if len(m.Modifier) > 0 && !seen.Has(m.Modifier) {
			seen.Put(m.Modifier)
			modifiers = append(modifiers, m.Modifier)
		}
	}
	sort.Strings(modifiers)
	return modifiers
}

// Filter combines the single filters. Zero fields match everything.
type Filter struct {
	Mode     classify.Mode
	Modifier ModifierFilter
	Button   string
	Source   Source
	Search   string
}

// Query applies every set field of the filter
func Query(mappings []*UnifiedMapping, f Filter) []*UnifiedMapping {
	result := mappings
	if len(f.Mode) > 0 {
		result = FilterByMode(result, f.Mode)
	}
	result = FilterByModifier(result, f.Modifier)
	if len(f.Button) > 0 {
		result = FilterByButton(result, f.Button)
	}
	if len(f.Source) > 0 {
		result = FilterBySource(result, f.Source)
	}
	if len(strings.TrimSpace(f.Search)) > 0 {
		result = Search(result, strings.TrimSpace(f.Search))
	}
	return result
}

func filter(mappings []*UnifiedMapping, keep func(*UnifiedMapping) bool) []*UnifiedMapping {
	filtered := make([]*UnifiedMapping, 0, len(mappings))
	for _, m := range mappings {
		if keep(m) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
