// Package fonts provides the font used to measure and rasterize diagram text.
//
// SVG output names a CSS font stack and leaves glyph selection to the viewer,
// but layout still needs text widths up front. Measurements use Go Regular,
// which ships with golang.org/x/image and is metrically close to Helvetica,
// so no system fonts are needed at build or run time.
package fonts

import (
	"math"
	"sync"
	"unicode/utf8"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font stack written into SVG documents.
const FontFamily = `"Helvetica Neue", Helvetica, Arial, sans-serif`

// fallbackCharWidth approximates an average glyph advance as a fraction of
// the font size when the embedded font cannot be parsed.
const fallbackCharWidth = 0.55

var (
	regular     *truetype.Font
	regularErr  error
	regularOnce sync.Once

	facesMu sync.Mutex
	faces   = map[float64]font.Face{}
)

// Regular returns the parsed Go Regular font.
func Regular() (*truetype.Font, error) {
	regularOnce.Do(func() {
		regular, regularErr = truetype.Parse(goregular.TTF)
	})
	return regular, regularErr
}

// Face returns a face for size points at 72 DPI. Faces are cached per size.
func Face(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	if face, ok := faces[size]; ok {
		return face, nil
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	faces[size] = face
	return face, nil
}

// TextWidth returns the advance width of s at size points, rounded up to a
// whole point so layout coordinates stay integral.
func TextWidth(s string, size float64) float64 {
	face, err := Face(size)
	if err != nil {
		return math.Ceil(float64(utf8.RuneCountInString(s)) * size * fallbackCharWidth)
	}
	facesMu.Lock()
	adv := font.MeasureString(face, s)
	facesMu.Unlock()
	return math.Ceil(float64(adv) / 64)
}
