package rewasd

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadSample(t *testing.T) *Result {
	t.Helper()
	data, err := os.ReadFile("../../testdata/sample.rewasd")
	require.NoError(t, err)
	result, err := ParseJSON(data)
	require.NoError(t, err)
	return result
}

func TestParseSample(t *testing.T) {
	result := loadSample(t)

	require.Len(t, result.Mappings, 5)
	assert.Equal(t, []string{"Unknown mask ID: 42"}, result.Errors)
	assert.Len(t, result.Layers, 2)

	landing := result.Mappings[0]
	assert.Equal(t, "A", landing.Button)
	assert.Empty(t, landing.Modifier)
	assert.Nil(t, landing.Layer)
	assert.Equal(t, []string{"N"}, landing.OutputKeys)
	assert.Equal(t, 50*time.Millisecond, landing.Steps[0].Hold)
	assert.Equal(t, ActivatorSingle, landing.Activator)
	assert.Equal(t, ModeOneTime, landing.Mode)
	assert.Equal(t, "Train d'atterrissage", landing.Description)

	mining := result.Mappings[1]
	assert.Equal(t, "B", mining.Button)
	assert.Equal(t, ActivatorLong, mining.Activator)
	assert.Equal(t, ModeHoldUntilRelease, mining.Mode)

	quantum := result.Mappings[2]
	assert.Equal(t, "DpadUp", quantum.Button)
	assert.Equal(t, "LB", quantum.Modifier)
	require.NotNil(t, quantum.Layer)
	assert.Equal(t, 1, quantum.Layer.ID)
	assert.Equal(t, "LB", quantum.Layer.Description)
	assert.Equal(t, []string{"LAlt", "2"}, quantum.OutputKeys)

	unbound := result.Mappings[3]
	assert.Equal(t, "X", unbound.Button)
	assert.Equal(t, ActivatorSingle, unbound.Activator)
	assert.Equal(t, ModeOneTime, unbound.Mode)

	paddle := result.Mappings[4]
	assert.Equal(t, "P1", paddle.Button)
	assert.Equal(t, "Mining", paddle.Modifier)
	assert.Equal(t, []string{"U"}, paddle.OutputKeys)
	assert.Equal(t, ActivatorDouble, paddle.Activator)
	assert.Equal(t, ModeTurbo, paddle.Mode)
}

func TestParseSkipsLayerJumps(t *testing.T) {
	result := loadSample(t)
	for _, mapping := range result.Mappings {
		assert.NotEqual(t, 4, mapping.MaskID, "layer jump leaked into mappings")
		assert.NotEmpty(t, mapping.OutputKeys)
	}
}

func TestParseJumpWithMacroStillSkipped(t *testing.T) {
	one := 1
	config := &Config{
		Masks: []Mask{{ID: 1, Set: []MaskButton{{ButtonID: 5}}}},
		Mappings: []Entry{{
			Condition:   Condition{Mask: &MaskActivate{ID: &one}},
			JumpToLayer: &LayerJump{Layer: 2},
			Macros:      []MacroItem{{Keyboard: &KeyAction{Description: "DIK_F1"}}},
		}},
	}
	result, err := Parse(config)
	require.NoError(t, err)
	assert.Empty(t, result.Mappings)
	assert.Empty(t, result.Errors)
}

func TestParseChordMask(t *testing.T) {
	one := 1
	config := &Config{
		Masks: []Mask{{ID: 1, Set: []MaskButton{
			{ButtonID: 5, Description: "XB: LB"},
			{ButtonID: 1, Description: "XB: A"},
		}}},
		Mappings: []Entry{{
			Condition: Condition{Mask: &MaskActivate{ID: &one}},
			Macros:    []MacroItem{{Keyboard: &KeyAction{Description: "DIK_F1"}}},
		}},
	}
	result, err := Parse(config)
	require.NoError(t, err)
	require.Len(t, result.Mappings, 1)
	assert.Equal(t, "A", result.Mappings[0].Button)
	assert.Equal(t, "LB", result.Mappings[0].Modifier)
}

func TestParseUnknownButtonUsesDescription(t *testing.T) {
	one := 1
	config := &Config{
		Masks: []Mask{{ID: 1, Set: []MaskButton{{ButtonID: 90, Description: "XB: Dpad Left"}}}},
		Mappings: []Entry{{
			Condition: Condition{Mask: &MaskActivate{ID: &one}},
			Macros:    []MacroItem{{Keyboard: &KeyAction{ButtonID: 999}}},
		}},
	}
	result, err := Parse(config)
	require.NoError(t, err)
	require.Len(t, result.Mappings, 1)
	assert.Equal(t, "DpadLeft", result.Mappings[0].Button)
	assert.Equal(t, []string{"Key999"}, result.Mappings[0].OutputKeys)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(nil)
	assert.ErrorIs(t, err, ErrNoDocument)

	_, err = ParseJSON([]byte("null"))
	assert.ErrorIs(t, err, ErrNoDocument)

	result, err := ParseJSON([]byte("{not json"))
	require.NoError(t, err)
	assert.Empty(t, result.Mappings)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Failed to parse JSON")

	result, err = ParseJSON([]byte("{}"))
	require.NoError(t, err)
	assert.Empty(t, result.Mappings)
	assert.Empty(t, result.Errors)

	result, err = ParseJSON([]byte(`{"mappings":[{"condition":{}},{"condition":{"mask":{}}}]}`))
	require.NoError(t, err)
	assert.Empty(t, result.Mappings)
	assert.Empty(t, result.Errors)
}

func TestBuildKeyIndex(t *testing.T) {
	result := loadSample(t)

	assert.Len(t, result.Index["n"], 1)
	assert.Len(t, result.Index["lalt+2"], 1)
	assert.Len(t, result.Index["lalt"], 1)
	assert.Len(t, result.Index["2"], 1)

	// Two buttons reaching the same key are both kept
	first := &Mapping{Button: "A", OutputKeys: []string{"F1"}}
	second := &Mapping{Button: "B", OutputKeys: []string{"f1"}}
	index := BuildKeyIndex([]*Mapping{first, second})
	assert.Equal(t, []*Mapping{first, second}, index["f1"])
}

func TestFormatMapping(t *testing.T) {
	result := loadSample(t)
	assert.Equal(t, "A → N", FormatMapping(result.Mappings[0]))
	assert.Equal(t, "B (long) → M", FormatMapping(result.Mappings[1]))
	assert.Equal(t, "LB + DpadUp → LAlt + 2", FormatMapping(result.Mappings[2]))
}
