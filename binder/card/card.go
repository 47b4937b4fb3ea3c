// Package card draws resolved mappings as a reference card image
package card

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"github.com/pixiv/go-libjpeg/jpeg"
	"golang.org/x/image/font"

	"github.com/ankurkotwal/bindchain/binder/chain"
	"github.com/ankurkotwal/bindchain/binder/common"
	"github.com/ankurkotwal/bindchain/binder/rewasd"
)

// ErrNoColours is returned when the card config has no band colours
var ErrNoColours = errors.New("no band colours configured")

// Options - per card settings that are not part of the layout config
type Options struct {
	Title   string
	Version string
	// Band colour per gameplay mode name. Modes without one cycle through
	// the configured alternate colours.
	ModeColours common.ModeToColours
}

// Size returns the card dimensions for the mappings
func Size(mappings []*chain.UnifiedMapping, cfg *common.CardConfig) (int, int) {
	groups := chain.GroupByMode(mappings)
	inset := int(math.Round(cfg.Inset))
	height := cfg.HeaderHeight + inset
	if len(groups) == 0 {
		height += cfg.RowHeight + inset
	}
	for _, group := range groups {
		// Band title plus one row per mapping
		height += (len(group.Mappings)+1)*cfg.RowHeight + inset
	}
	// Footer
	height += cfg.RowHeight
	return cfg.Width, height
}

// Render draws the mappings grouped by gameplay mode and returns JPEG bytes
func Render(mappings []*chain.UnifiedMapping, cfg *common.CardConfig, opts Options) ([]byte, error) {
	if len(cfg.AlternateColours) == 0 {
		return nil, ErrNoColours
	}
	width, height := Size(mappings, cfg)
	dc := gg.NewContext(width, height)
	dc.SetHexColor(cfg.BackgroundColour)
	dc.Clear()

	fonts := newFaceCache()
	if err := addHeader(dc, cfg, opts.Title, fonts); err != nil {
		return nil, err
	}

	y := float64(cfg.HeaderHeight) + cfg.Inset
	groups := chain.GroupByMode(mappings)
	if len(groups) == 0 {
		if err := drawRow(dc, cfg, fonts, "No mappings", "", y, cfg.DarkColour); err != nil {
			return nil, err
		}
		y += float64(cfg.RowHeight) + cfg.Inset
	}
	for idx, group := range groups {
		colour := bandColour(string(group.Mode), idx, cfg, opts.ModeColours)
		if err := drawBand(dc, cfg, fonts, string(group.Mode), y, colour); err != nil {
			return nil, err
		}
		y += float64(cfg.RowHeight)
		for row, m := range group.Mappings {
			background := cfg.BackgroundColour
			if row%2 == 1 {
				background = cfg.DarkColour
			}
			dc.SetHexColor(background)
			dc.DrawRectangle(cfg.Inset, y, float64(width)-2*cfg.Inset, float64(cfg.RowHeight))
			dc.Fill()
			if err := drawRow(dc, cfg, fonts, ButtonLabel(m), ActionLabel(m), y, colour); err != nil {
				return nil, err
			}
			y += float64(cfg.RowHeight)
		}
		y += cfg.Inset
	}

	if err := addFooter(dc, cfg, opts.Version, y, fonts); err != nil {
		return nil, err
	}

	var imgBytes bytes.Buffer
	if err := jpeg.Encode(&imgBytes, dc.Image(), &jpeg.EncoderOptions{Quality: cfg.JpgQuality}); err != nil {
		return nil, fmt.Errorf("jpeg encode failed: %w", err)
	}
	return imgBytes.Bytes(), nil
}

// ButtonLabel - "LB + A", with the press kind when it is not a plain press
func ButtonLabel(m *chain.UnifiedMapping) string {
	label := m.Button
	if len(m.Modifier) > 0 {
		label = fmt.Sprintf("%s + %s", m.Modifier, m.Button)
	}
	if len(m.Activator) > 0 && m.Activator != rewasd.ActivatorSingle {
		label = fmt.Sprintf("%s (%s)", label, m.Activator)
	}
	return label
}

// ActionLabel - display name followed by the remapper keys when present
func ActionLabel(m *chain.UnifiedMapping) string {
	if len(m.Keys) == 0 || m.Source == chain.SourceUnresolved {
		return m.DisplayName
	}
	return fmt.Sprintf("%s  [%s]", m.DisplayName, strings.Join(m.Keys, " + "))
}

func bandColour(mode string, idx int, cfg *common.CardConfig,
	modeColours common.ModeToColours) string {
	if colour, found := modeColours[mode]; found {
		return colour
	}
	return cfg.AlternateColours[idx%len(cfg.AlternateColours)]
}

func textHeight(cfg *common.CardConfig) int {
	return cfg.RowHeight - int(math.Round(cfg.Inset/2))
}

func addHeader(dc *gg.Context, cfg *common.CardConfig, title string, fonts faceCache) error {
	targetWidth := dc.Width() - int(math.Round(2*cfg.Inset))
	targetHeight := cfg.HeaderHeight - int(math.Round(2*cfg.Inset))
	fontSize, err := calcFontSize(fonts, FontBold, title, cfg.MinFontSize,
		targetHeight, targetWidth, targetHeight)
	if err != nil {
		return err
	}
	face, err := fonts.face(FontBold, fontSize)
	if err != nil {
		return err
	}
	dc.SetHexColor(cfg.DarkColour)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(cfg.HeaderHeight))
	dc.Fill()
	dc.SetHexColor(cfg.LightColour)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(title, cfg.Inset, float64(cfg.HeaderHeight)/2, 0, 0.35)
	return nil
}

func drawBand(dc *gg.Context, cfg *common.CardConfig, fonts faceCache, text string,
	y float64, colour string) error {
	fontSize, err := calcFontSize(fonts, FontBold, text, cfg.MinFontSize,
		int(cfg.FontSize), dc.Width(), textHeight(cfg))
	if err != nil {
		return err
	}
	face, err := fonts.face(FontBold, fontSize)
	if err != nil {
		return err
	}
	dc.SetHexColor(colour)
	dc.DrawRectangle(cfg.Inset, y, float64(dc.Width())-2*cfg.Inset, float64(cfg.RowHeight))
	dc.Fill()
	dc.SetHexColor(cfg.LightColour)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, 2*cfg.Inset, y+float64(cfg.RowHeight)/2, 0, 0.35)
	return nil
}

// drawRow draws the button label on a rounded background in the left column
// and the action text in the right column
func drawRow(dc *gg.Context, cfg *common.CardConfig, fonts faceCache, button string,
	action string, y float64, colour string) error {
	columnWidth := int(float64(dc.Width())*0.3) - int(math.Round(2*cfg.Inset))
	actionWidth := dc.Width() - columnWidth - int(math.Round(5*cfg.Inset))
	targetHeight := textHeight(cfg)

	fontSize, err := calcFontSize(fonts, FontRegular, button, cfg.MinFontSize,
		int(cfg.FontSize), columnWidth, targetHeight)
	if err != nil {
		return err
	}
	largeFont, err := fonts.face(FontRegular, fontSize)
	if err != nil {
		return err
	}
	smallFont, err := fonts.face(FontRegular, max(fontSize-1, 1))
	if err != nil {
		return err
	}
	drawTextWithBackgroundRec(dc, button, 2*cfg.Inset, y, cfg.RowHeight,
		largeFont, smallFont, colour, cfg.LightColour)

	if len(action) == 0 {
		return nil
	}
	fontSize, err = calcFontSize(fonts, FontRegular, action, cfg.MinFontSize,
		int(cfg.FontSize), actionWidth, targetHeight)
	if err != nil {
		return err
	}
	face, err := fonts.face(FontRegular, fontSize)
	if err != nil {
		return err
	}
	dc.SetHexColor(cfg.LightColour)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(action, float64(columnWidth)+3*cfg.Inset,
		y+float64(cfg.RowHeight)/2, 0, 0.35)
	return nil
}

func drawTextWithBackgroundRec(dc *gg.Context, text string, x float64, y float64,
	targetHeight int, largeFont font.Face, smallFont font.Face,
	backgroundColour string, textColour string) {
	w, h := measureString(largeFont, text)
	// Vertically center
	y += float64(targetHeight-h) / 2
	w2, h2 := measureString(smallFont, text)

	dc.SetHexColor(backgroundColour)
	dc.DrawRoundedRectangle(x, y, float64(w), float64(h), 6)
	dc.Fill()
	dc.SetHexColor(textColour)
	// One size smaller fits inside the rectangle
	dc.SetFontFace(smallFont)
	dc.DrawStringAnchored(text, x+float64(w-w2)/2, y+float64(h-h2)/2, 0, 0.83)
}

func addFooter(dc *gg.Context, cfg *common.CardConfig, version string, y float64,
	fonts faceCache) error {
	if len(version) == 0 {
		return nil
	}
	text := fmt.Sprintf("bindchain v%s", version)
	face, err := fonts.face(FontRegular, cfg.MinFontSize)
	if err != nil {
		return err
	}
	dc.SetHexColor(cfg.LightColour)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, float64(dc.Width())-cfg.Inset,
		y+float64(cfg.RowHeight)/2, 1, 0.35)
	return nil
}
