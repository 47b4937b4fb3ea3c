package card

import (
	"bytes"
	"image"
	"os"
	"testing"

	"github.com/pixiv/go-libjpeg/jpeg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ankurkotwal/bindchain/binder/chain"
	"github.com/ankurkotwal/bindchain/binder/classify"
	"github.com/ankurkotwal/bindchain/binder/common"
	"github.com/ankurkotwal/bindchain/binder/rewasd"
)

func testCardConfig() *common.CardConfig {
	return &common.CardConfig{
		Width:            800,
		RowHeight:        30,
		HeaderHeight:     60,
		Inset:            10,
		FontSize:         20,
		MinFontSize:      8,
		JpgQuality:       80,
		BackgroundColour: "#1B1F24",
		LightColour:      "#F2F2F2",
		DarkColour:       "#101214",
		AlternateColours: []string{"#3D6CB9", "#00A878"},
	}
}

func sampleMappings(t testing.TB) []*chain.UnifiedMapping {
	t.Helper()
	remap, err := os.ReadFile("../../testdata/sample.rewasd")
	require.NoError(t, err)
	bindings, err := os.ReadFile("../../testdata/sample-actionmaps.xml")
	require.NoError(t, err)
	return chain.ParseAndResolve(remap, bindings, classify.Default(), new(chain.Sequence)).Mappings
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data), &jpeg.DecoderOptions{})
	require.NoError(t, err)
	return img
}

func TestRenderSamples(t *testing.T) {
	cfg := testCardConfig()
	mappings := sampleMappings(t)
	data, err := Render(mappings, cfg, Options{
		Title:       "Sample",
		Version:     "0.1.0",
		ModeColours: common.ModeToColours{"Flight": "#AA0000"},
	})
	require.NoError(t, err)

	width, height := Size(mappings, cfg)
	// 7 mappings in 4 mode bands
	assert.Equal(t, 60+10+(7+4)*30+4*10+30, height)
	bounds := decode(t, data).Bounds()
	assert.Equal(t, width, bounds.Dx())
	assert.Equal(t, height, bounds.Dy())
}

func TestRenderEmpty(t *testing.T) {
	cfg := testCardConfig()
	data, err := Render(nil, cfg, Options{Title: "Nothing"})
	require.NoError(t, err)
	_, height := Size(nil, cfg)
	assert.Equal(t, height, decode(t, data).Bounds().Dy())
}

func TestRenderNeedsColours(t *testing.T) {
	cfg := testCardConfig()
	cfg.AlternateColours = nil
	_, err := Render(nil, cfg, Options{})
	assert.ErrorIs(t, err, ErrNoColours)
}

func TestLabels(t *testing.T) {
	m := &chain.UnifiedMapping{
		Source:      chain.SourceChainResolved,
		Button:      "DpadUp",
		Modifier:    "LB",
		Keys:        []string{"LAlt", "2"},
		DisplayName: "Quantum Mode",
		Activator:   rewasd.ActivatorLong,
	}
	assert.Equal(t, "LB + DpadUp (long)", ButtonLabel(m))
	assert.Equal(t, "Quantum Mode  [LAlt + 2]", ActionLabel(m))

	m = &chain.UnifiedMapping{Source: chain.SourceUnresolved, Button: "X",
		Keys: []string{"F12"}, DisplayName: "Keyboard: F12", Activator: rewasd.ActivatorSingle}
	assert.Equal(t, "X", ButtonLabel(m))
	assert.Equal(t, "Keyboard: F12", ActionLabel(m))
}

func TestBandColour(t *testing.T) {
	cfg := testCardConfig()
	colours := common.ModeToColours{"Mining": "#123456"}
	assert.Equal(t, "#123456", bandColour("Mining", 5, cfg, colours))
	assert.Equal(t, "#3D6CB9", bandColour("Flight", 0, cfg, colours))
	assert.Equal(t, "#00A878", bandColour("Flight", 3, cfg, nil))
}

func TestCalcFontSize(t *testing.T) {
	fonts := newFaceCache()
	short, err := calcFontSize(fonts, FontRegular, "A", 8, 24, 500, 40)
	require.NoError(t, err)
	assert.Equal(t, 24, short)

	long, err := calcFontSize(fonts, FontRegular,
		"A much longer label that has to shrink to fit", 8, 24, 150, 40)
	require.NoError(t, err)
	assert.Less(t, long, short)
	assert.GreaterOrEqual(t, long, 8)

	face, err := fonts.face(FontRegular, long)
	require.NoError(t, err)
	w, _ := measureString(face, "A much longer label that has to shrink to fit")
	if long > 8 {
		assert.LessOrEqual(t, w, 150)
	}

	// Nothing fits, the minimum is used
	tiny, err := calcFontSize(fonts, FontRegular, "Wide text", 8, 24, 2, 40)
	require.NoError(t, err)
	assert.Equal(t, 8, tiny)
}

func TestFaceCacheReuse(t *testing.T) {
	fonts := newFaceCache()
	first, err := fonts.face(FontBold, 12)
	require.NoError(t, err)
	second, err := fonts.face(FontBold, 12)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func BenchmarkRender(b *testing.B) {
	cfg := testCardConfig()
	mappings := sampleMappings(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		if _, err := Render(mappings, cfg, Options{Title: "Bench"}); err != nil {
			b.Fatal(err)
		}
	}
}
