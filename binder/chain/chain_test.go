package chain

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurkotwal/bindchain/binder/classify"
	"github.com/ankurkotwal/bindchain/binder/rewasd"
	"github.com/ankurkotwal/bindchain/binder/starcitizen"
)

func loadSamples(t *testing.T) ([]byte, []byte) {
	t.Helper()
	remap, err := os.ReadFile("../../testdata/sample.rewasd")
	require.NoError(t, err)
	bindings, err := os.ReadFile("../../testdata/sample-actionmaps.xml")
	require.NoError(t, err)
	return remap, bindings
}

func resolveSamples(t *testing.T) Result {
	t.Helper()
	remap, bindings := loadSamples(t)
	return ParseAndResolve(remap, bindings, classify.Default(), new(Sequence))
}

func ids(mappings []*UnifiedMapping) []int {
	result := make([]int, 0, len(mappings))
	for _, m := range mappings {
		result = append(result, m.ID)
	}
	return result
}

func TestParseAndResolveSamples(t *testing.T) {
	result := resolveSamples(t)

	assert.Equal(t, []string{"Unknown mask ID: 42", "Could not parse input: joy1_button3"}, result.Errors)
	assert.Equal(t, Stats{
		RemapMappings:  5,
		GameBindings:   6,
		ResolvedChains: 4,
		Unresolved:     1,
		DirectBindings: 2,
	}, result.Stats)
	require.Len(t, result.Mappings, 7)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, ids(result.Mappings))

	landing := result.Mappings[0]
	assert.Equal(t, SourceChainResolved, landing.Source)
	assert.Equal(t, "A", landing.Button)
	assert.Equal(t, []string{"N"}, landing.Keys)
	assert.Equal(t, "v_deploy_landing_system", landing.Action)
	assert.Equal(t, "Toggle Landing Gear", landing.DisplayName)
	assert.Equal(t, classify.ModeFlight, landing.Mode)
	assert.Equal(t, "spaceship_movement", landing.ActionMap)
	assert.Equal(t, "Train d'atterrissage", landing.Description)

	mining := result.Mappings[1]
	assert.Equal(t, "v_toggle_mining_mode", mining.Action)
	assert.Equal(t, classify.ModeGeneral, mining.Mode)
	assert.Equal(t, rewasd.ActivatorLong, mining.Activator)
	assert.Equal(t, rewasd.ModeHoldUntilRelease, mining.Timing)

	quantum := result.Mappings[2]
	assert.Equal(t, "DpadUp", quantum.Button)
	assert.Equal(t, "LB", quantum.Modifier)
	assert.Equal(t, []string{"LAlt", "2"}, quantum.Keys)
	assert.Equal(t, "v_toggle_quantum_mode", quantum.Action)

	scan := result.Mappings[3]
	assert.Equal(t, "P1", scan.Button)
	assert.Equal(t, "Mining", scan.Modifier)
	assert.Equal(t, classify.ModeScanning, scan.Mode)

	unresolved := result.Mappings[4]
	assert.Equal(t, SourceUnresolved, unresolved.Source)
	assert.Equal(t, "X", unresolved.Button)
	assert.Equal(t, []string{"F12"}, unresolved.Keys)
	assert.Equal(t, "[F12]", unresolved.Action)
	assert.Equal(t, "Keyboard: F12", unresolved.DisplayName)
	assert.Equal(t, classify.ModeUnknown, unresolved.Mode)
	assert.Empty(t, unresolved.ActionMap)

	flightReady := result.Mappings[5]
	assert.Equal(t, SourceDirect, flightReady.Source)
	assert.Equal(t, "X", flightReady.Button)
	assert.Equal(t, "LB", flightReady.Modifier)
	assert.Nil(t, flightReady.Keys)
	assert.Equal(t, rewasd.ActivatorDouble, flightReady.Activator)
	assert.Equal(t, rewasd.ModeOneTime, flightReady.Timing)
	assert.Equal(t, "Flight Ready", flightReady.DisplayName)

	gear := result.Mappings[6]
	assert.Equal(t, SourceDirect, gear.Source)
	assert.Equal(t, "DpadDown", gear.Button)
	assert.Empty(t, gear.Modifier)
	assert.Equal(t, rewasd.ActivatorSingle, gear.Activator)
}

func TestKeysPresentOnlyWithRemapper(t *testing.T) {
	result := resolveSamples(t)
	for _, m := range result.Mappings {
		if m.Source == SourceDirect {
			assert.Nil(t, m.Keys, m.ID)
		} else {
			assert.NotEmpty(t, m.Keys, m.ID)
		}
	}
}

func TestResolveSingleKey(t *testing.T) {
	remap := &rewasd.Result{Mappings: []*rewasd.Mapping{
		{Button: "A", OutputKeys: []string{"F"}, Activator: rewasd.ActivatorSingle, Mode: rewasd.ModeOneTime},
	}}
	bindings := &starcitizen.BindingResult{Bindings: []*starcitizen.Binding{
		{ActionMap: "spaceship_general", Action: "v_exit", Device: starcitizen.DeviceKeyboard, Key: "F"},
	}}
	result := Resolve(remap, bindings, classify.Default(), new(Sequence))
	require.Len(t, result.Mappings, 1)
	m := result.Mappings[0]
	assert.Equal(t, SourceChainResolved, m.Source)
	assert.Equal(t, "A", m.Button)
	assert.Len(t, m.Keys, 1)
	assert.Equal(t, "Exit", m.DisplayName)
}

func TestResolveMacroKeepsOrder(t *testing.T) {
	remap := &rewasd.Result{Mappings: []*rewasd.Mapping{
		{Button: "Y", OutputKeys: []string{"J", "K"}},
	}}
	bindings := &starcitizen.BindingResult{Bindings: []*starcitizen.Binding{
		{ActionMap: "seat_general", Action: "v_k", Device: starcitizen.DeviceKeyboard, Key: "K"},
		{ActionMap: "seat_general", Action: "v_j", Device: starcitizen.DeviceKeyboard, Key: "J"},
	}}
	result := Resolve(remap, bindings, nil, nil)
	require.Len(t, result.Mappings, 2)
	for _, m := range result.Mappings {
		assert.Equal(t, []string{"J", "K"}, m.Keys)
	}
	// Matches follow the macro's key order
	assert.Equal(t, "v_j", result.Mappings[0].Action)
	assert.Equal(t, "v_k", result.Mappings[1].Action)
	assert.Equal(t, 2, result.Stats.ResolvedChains)
}

func TestResolveChordPreferred(t *testing.T) {
	remap := &rewasd.Result{Mappings: []*rewasd.Mapping{
		{Button: "A", OutputKeys: []string{"LAlt", "1"}},
	}}
	bindings := &starcitizen.BindingResult{Bindings: []*starcitizen.Binding{
		{Action: "plain", Device: starcitizen.DeviceKeyboard, Key: "1"},
		{Action: "chord", Device: starcitizen.DeviceKeyboard, Key: "1", Modifiers: []string{"LAlt"}},
	}}
	result := Resolve(remap, bindings, nil, nil)
	require.Len(t, result.Mappings, 1)
	assert.Equal(t, "chord", result.Mappings[0].Action)

	// Both sides join in written order, modifiers first
	assert.Equal(t, "lalt+1", rewasd.JoinKeys(remap.Mappings[0].OutputKeys))
	assert.Equal(t, "lalt+1", bindings.Bindings[1].Chord())
}

func TestResolveDuplicateMatchesOnce(t *testing.T) {
	shared := &starcitizen.Binding{Action: "both", Device: starcitizen.DeviceKeyboard, Key: "Q"}
	remap := &rewasd.Result{Mappings: []*rewasd.Mapping{
		{Button: "A", OutputKeys: []string{"Q", "q"}},
	}}
	bindings := &starcitizen.BindingResult{Bindings: []*starcitizen.Binding{shared}}
	result := Resolve(remap, bindings, nil, nil)
	require.Len(t, result.Mappings, 1)
	assert.Equal(t, "both", result.Mappings[0].Action)
}

func TestResolveEmptyInputs(t *testing.T) {
	result := Resolve(nil, nil, nil, nil)
	assert.Empty(t, result.Mappings)
	assert.Empty(t, result.Errors)
	assert.Equal(t, Stats{}, result.Stats)

	result = ParseAndResolve(nil, nil, nil, nil)
	assert.Empty(t, result.Mappings)
	assert.Empty(t, result.Errors)
}

func TestSequenceReset(t *testing.T) {
	remap, bindings := loadSamples(t)
	seq := new(Sequence)
	first := ParseAndResolve(remap, bindings, classify.Default(), seq)
	second := ParseAndResolve(remap, bindings, classify.Default(), seq)
	assert.Equal(t, 8, second.Mappings[0].ID)

	seq.Reset()
	third := ParseAndResolve(remap, bindings, classify.Default(), seq)
	assert.Equal(t, ids(first.Mappings), ids(third.Mappings))
}

func TestBadRemapKeepsDirectBindings(t *testing.T) {
	_, bindings := loadSamples(t)

	result := ParseAndResolve([]byte("{not json"), bindings, nil, nil)
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Failed to parse JSON")
	assert.Len(t, FilterBySource(result.Mappings, SourceDirect), 2)

	result = ParseAndResolve([]byte("null"), bindings, nil, nil)
	assert.Contains(t, result.Errors[0], "Remap config")
	assert.Len(t, result.Mappings, 2)
}

func TestBadBindingsKeepsRemap(t *testing.T) {
	remap, _ := loadSamples(t)
	result := ParseAndResolve(remap, []byte("<ActionMaps><broken></ActionMaps>"), nil, nil)
	assert.Equal(t, "Unknown mask ID: 42", result.Errors[0])
	assert.Contains(t, result.Errors[1], "Game bindings")
	assert.Len(t, result.Mappings, 5)
	assert.Len(t, FilterBySource(result.Mappings, SourceUnresolved), 5)
}
