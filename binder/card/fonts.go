package card

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font names understood by the face cache
const (
	FontRegular = "regular"
	FontBold    = "bold"
)

var embeddedFonts = map[string][]byte{
	FontRegular: goregular.TTF,
	FontBold:    gobold.TTF,
}

// Parsed fonts are immutable and shared between renders
var fontCache sync.Map

func parseFont(name string) (*truetype.Font, error) {
	if v, found := fontCache.Load(name); found {
		return v.(*truetype.Font), nil
	}
	data, found := embeddedFonts[name]
	if !found {
		data = embeddedFonts[FontRegular]
	}
	parsed, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	fontCache.Store(name, parsed)
	return parsed, nil
}

// faceCache holds the faces of one render. font.Face is not safe for
// concurrent use, so each render owns its cache.
type faceCache map[string]map[int]font.Face

func newFaceCache() faceCache {
	return make(faceCache)
}

func (cache faceCache) face(name string, size int) (font.Face, error) {
	if faces, found := cache[name]; found {
		if face, found := faces[size]; found {
			return face, nil
		}
	} else {
		cache[name] = make(map[int]font.Face)
	}
	parsed, err := parseFont(name)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(parsed, &truetype.Options{Size: float64(size)})
	cache[name][size] = face
	return face, nil
}

func measureString(face font.Face, text string) (int, int) {
	return font.MeasureString(face, text).Round(), face.Metrics().Height.Round()
}

// calcFontSize returns the largest size between minSize and maxSize at which
// text fits the target box, or minSize when nothing fits
func calcFontSize(cache faceCache, name, text string, minSize, maxSize,
	targetWidth, targetHeight int) (int, error) {
	best := minSize
	low, high := minSize, maxSize
	for low <= high {
		size := (low + high) / 2
		face, err := cache.face(name, size)
		if err != nil {
			return 0, err
		}
		w, h := measureString(face, text)
		if w <= targetWidth && h <= targetHeight {
			best = size
			low = size + 1
		} else {
			high = size - 1
		}
	}
	return best, nil
}
