// Package chain joins remapper output keys to game key bindings, producing
// one list of controller button -> game action records.
package chain

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	"github.com/ankurkotwal/bindchain/binder/classify"
	"github.com/ankurkotwal/bindchain/binder/rewasd"
	"github.com/ankurkotwal/bindchain/binder/starcitizen"
)

// Source - how a controller input reaches a game action
type Source string

const (
	// SourceChainResolved - controller -> remapper key -> game action
	SourceChainResolved Source = "chain-resolved"
	// SourceUnresolved - remapper emits keys the game does not bind
	SourceUnresolved Source = "remap-only-unresolved"
	// SourceDirect - controller input bound in the game, no remapper involved
	SourceDirect Source = "direct-game-binding"
)

// Sources lists every source in output order
var Sources = []Source{SourceChainResolved, SourceUnresolved, SourceDirect}

// Classifier names actions and places action maps in a gameplay mode
type Classifier interface {
	Mode(actionMap string) classify.Mode
	DisplayName(action string) string
}

// UnifiedMapping - one controller input and the game action it ends up at.
// Keys is only set when the remapper is involved.
type UnifiedMapping struct {
	ID          int                  `json:"id" yaml:"id"`
	Source      Source               `json:"source" yaml:"source"`
	Button      string               `json:"button" yaml:"button"`
	Modifier    string               `json:"modifier,omitempty" yaml:"modifier,omitempty"`
	Keys        []string             `json:"keys,omitempty" yaml:"keys,omitempty"`
	Action      string               `json:"action" yaml:"action"`
	DisplayName string               `json:"displayName" yaml:"displayName"`
	Mode        classify.Mode        `json:"mode" yaml:"mode"`
	ActionMap   string               `json:"actionMap" yaml:"actionMap"`
	Activator   rewasd.ActivatorType `json:"activator" yaml:"activator"`
	Timing      rewasd.ActivatorMode `json:"timing" yaml:"timing"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
}

// Stats - counts from one resolution
type Stats struct {
	RemapMappings  int `json:"remapMappings" yaml:"remapMappings"`
	GameBindings   int `json:"gameBindings" yaml:"gameBindings"`
	ResolvedChains int `json:"resolvedChains" yaml:"resolvedChains"`
	Unresolved     int `json:"unresolved" yaml:"unresolved"`
	DirectBindings int `json:"directBindings" yaml:"directBindings"`
}

// Result - output of a resolution. Errors are the upstream parse errors,
// remapper first.
type Result struct {
	Mappings []*UnifiedMapping `json:"mappings" yaml:"mappings"`
	Errors   []string          `json:"errors" yaml:"errors"`
	Stats    Stats             `json:"stats" yaml:"stats"`
}

// Resolve joins remapper mappings to game bindings. Either input may be nil.
// Identities are drawn from seq in output order: chain-resolved records,
// then unresolved remapper records, then direct gamepad bindings.
func Resolve(remap *rewasd.Result, bindings *starcitizen.BindingResult,
	cls Classifier, seq *Sequence) Result {
	if remap == nil {
		remap = &rewasd.Result{}
	}
	if bindings == nil {
		bindings = &starcitizen.BindingResult{}
	}
	if cls == nil {
		cls = classify.Default()
	}
	if seq == nil {
		seq = new(Sequence)
	}

	result := Result{
		Mappings: make([]*UnifiedMapping, 0),
		Errors:   make([]string, 0, len(remap.Errors)+len(bindings.Errors)),
	}
	result.Errors = append(result.Errors, remap.Errors...)
	result.Errors = append(result.Errors, bindings.Errors...)

	keyIndex := starcitizen.BuildIndex(bindings.Bindings, starcitizen.DeviceKeyboard)

	resolved := make([]*UnifiedMapping, 0)
	unresolved := make([]*UnifiedMapping, 0)
	for _, mapping := range remap.Mappings {
		matches := lookup(keyIndex, mapping.OutputKeys)
		if len(matches) == 0 {
			unresolved = append(unresolved, newUnresolved(mapping))
			continue
		}
		for _, binding := range matches {
			resolved = append(resolved, newChainResolved(mapping, binding, cls))
		}
	}

	direct := make([]*UnifiedMapping, 0)
	for _, binding := range bindings.Bindings {
		if binding.Device == starcitizen.DeviceGamepad {
			direct = append(direct, newDirect(binding, cls))
		}
	}

	for _, stream := range [][]*UnifiedMapping{resolved, unresolved, direct} {
		for _, unified := range stream {
			unified.ID = seq.Next()
			result.Mappings = append(result.Mappings, unified)
		}
	}

	result.Stats = Stats{
		RemapMappings:  len(remap.Mappings),
		GameBindings:   len(bindings.Bindings),
		ResolvedChains: len(resolved),
		Unresolved:     len(unresolved),
		DirectBindings: len(direct),
	}
	return result
}

// lookup finds the bindings reached by a key sequence. Multi-key output is
// first matched as a chord; without a chord match each key is tried alone.
func lookup(index starcitizen.BindingIndex, keys []string) []*starcitizen.Binding {
	if len(keys) > 1 {
		if matches := index[rewasd.JoinKeys(keys)]; len(matches) > 0 {
			return matches
		}
	}
	matches := make([]*starcitizen.Binding, 0)
	seen := mapset.New[*starcitizen.Binding]()
	for _, key := range keys {
		for _, binding := range index[strings.ToLower(key)] {
			if !seen.Has(binding) {
				seen.Put(binding)
				matches = append(matches, binding)
			}
		}
	}
	return matches
}

func newChainResolved(mapping *rewasd.Mapping, binding *starcitizen.Binding,
	cls Classifier) *UnifiedMapping {
	return &UnifiedMapping{
		Source:      SourceChainResolved,
		Button:      mapping.Button,
		Modifier:    mapping.Modifier,
		Keys:        append([]string(nil), mapping.OutputKeys...),
		Action:      binding.Action,
		DisplayName: cls.DisplayName(binding.Action),
		Mode:        cls.Mode(binding.ActionMap),
		ActionMap:   binding.ActionMap,
		Activator:   mapping.Activator,
		Timing:      mapping.Mode,
		Description: mapping.Description,
	}
}

func newUnresolved(mapping *rewasd.Mapping) *UnifiedMapping {
	joined := strings.Join(mapping.OutputKeys, " + ")
	return &UnifiedMapping{
		Source:      SourceUnresolved,
		Button:      mapping.Button,
		Modifier:    mapping.Modifier,
		Keys:        append([]string(nil), mapping.OutputKeys...),
		Action:      fmt.Sprintf("[%s]", joined),
		DisplayName: fmt.Sprintf("Keyboard: %s", joined),
		Mode:        classify.ModeUnknown,
		Activator:   mapping.Activator,
		Timing:      mapping.Mode,
		Description: mapping.Description,
	}
}

func newDirect(binding *starcitizen.Binding, cls Classifier) *UnifiedMapping {
	unified := &UnifiedMapping{
		Source:      SourceDirect,
		Button:      binding.Key,
		Action:      binding.Action,
		DisplayName: cls.DisplayName(binding.Action),
		Mode:        cls.Mode(binding.ActionMap),
		ActionMap:   binding.ActionMap,
		Activator:   rewasd.ActivatorSingle,
		Timing:      rewasd.ModeOneTime,
	}
	if len(binding.Modifiers) > 0 {
		unified.Modifier = binding.Modifiers[0]
	}
	if binding.ActivationMode == "double_tap" {
		unified.Activator = rewasd.ActivatorDouble
	}
	return unified
}

// ParseAndResolve parses both documents and resolves them. An empty remapper
// document means there is no remapper. Fatal parse errors of either document
// are reported in Errors so the other document's results are kept.
func ParseAndResolve(remapJSON, bindingsXML []byte, cls Classifier, seq *Sequence) Result {
	var remap *rewasd.Result
	var bindings *starcitizen.BindingResult

	if len(bytes.TrimSpace(remapJSON)) > 0 {
		parsed, err := rewasd.ParseJSON(remapJSON)
		if err != nil {
			parsed = &rewasd.Result{Errors: []string{fmt.Sprintf("Remap config: %s", err)}}
		}
		remap = parsed
	}
	if len(bytes.TrimSpace(bindingsXML)) > 0 {
		parsed, err := starcitizen.ParseActionMaps(bindingsXML)
		if err != nil {
			parsed = &starcitizen.BindingResult{Errors: []string{fmt.Sprintf("Game bindings: %s", err)}}
		}
		bindings = parsed
	}
	return Resolve(remap, bindings, cls, seq)
}
