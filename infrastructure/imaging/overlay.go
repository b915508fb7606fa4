package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"strings"

	"ember-scriptorium/domain/model"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Attribution is the fixed signature line composited under every quote.
const Attribution = "— We Burned, Quietly"

const (
	bottomMargin = 100 // gap between text block and lower edge
	boxPadding   = 30
	lineLeading  = 10
	shadowOffset = 2
	minFontSize  = 24
	maxFontSize  = 48
)

// Layout is the computed overlay geometry for a given image size and quote.
// It is a pure function of its inputs plus the bundled font metrics.
type Layout struct {
	FontSize   float64
	Lines      []string
	LineHeight int
	StartY     int
	Box        image.Rectangle
}

func fontSizeFor(width int) float64 {
	size := width / 20
	if size < minFontSize {
		size = minFontSize
	}
	if size > maxFontSize {
		size = maxFontSize
	}
	return float64(size)
}

func newFace(size float64) (font.Face, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bundled font: %w", err)
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// wrapText breaks text greedily at word boundaries so no line exceeds
// maxWidth. A single word wider than maxWidth gets its own line rather than
// being split.
func wrapText(face font.Face, text string, maxWidth int) []string {
	var lines []string
	var current string
	for _, word := range strings.Fields(text) {
		test := word
		if current != "" {
			test = current + " " + word
		}
		if font.MeasureString(face, test).Ceil() <= maxWidth {
			current = test
			continue
		}
		if current != "" {
			lines = append(lines, current)
			current = word
		} else {
			lines = append(lines, word)
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func layoutFor(face font.Face, width, height int, quoteText string) *Layout {
	maxWidth := width * 4 / 5
	fullText := fmt.Sprintf("\"%s\"\n\n%s", quoteText, Attribution)
	lines := wrapText(face, fullText, maxWidth)

	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil() + lineLeading
	totalHeight := len(lines) * lineHeight
	startY := height - totalHeight - bottomMargin

	box := image.Rect(
		width/2-maxWidth/2-boxPadding,
		startY-boxPadding,
		width/2+maxWidth/2+boxPadding,
		startY+totalHeight+boxPadding,
	)

	return &Layout{
		FontSize:   fontSizeFor(width),
		Lines:      lines,
		LineHeight: lineHeight,
		StartY:     startY,
		Box:        box,
	}
}

// ComputeLayout returns the overlay geometry for the given image dimensions
// and quote without touching any pixels.
func ComputeLayout(width, height int, quoteText string) (*Layout, error) {
	face, err := newFace(fontSizeFor(width))
	if err != nil {
		return nil, err
	}
	defer face.Close()
	return layoutFor(face, width, height, quoteText), nil
}

// ApplyOverlay composites the quote plus attribution onto the image: a
// semi-transparent dark box anchored in the lower third, each line centered
// with a dark shadow copy under a white foreground copy. Output is PNG.
func ApplyOverlay(imageBytes []byte, quoteText string) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrImageDecodeFailed, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	face, err := newFace(fontSizeFor(width))
	if err != nil {
		return nil, err
	}
	defer face.Close()

	layout := layoutFor(face, width, height, quoteText)

	canvas := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), src, bounds.Min, draw.Src)
	draw.Draw(canvas, layout.Box, image.NewUniform(color.NRGBA{A: 120}), image.Point{}, draw.Over)

	ascent := face.Metrics().Ascent.Ceil()
	for i, line := range layout.Lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		x := width/2 - lineWidth/2
		y := layout.StartY + i*layout.LineHeight + ascent

		drawer := &font.Drawer{
			Dst:  canvas,
			Src:  image.NewUniform(color.NRGBA{A: 100}),
			Face: face,
			Dot:  fixed.P(x+shadowOffset, y+shadowOffset),
		}
		drawer.DrawString(line)

		drawer.Src = image.NewUniform(color.White)
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(line)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode composited image: %w", err)
	}
	return buf.Bytes(), nil
}
