package render

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// LabelFontSize is the point size of START/END callouts.
const LabelFontSize = 13

// TextMeasurer reports the pixel width and height of a string in the label font.
type TextMeasurer interface {
	Measure(text string) (width, height float64)
}

// LabelFace loads the bold callout face.
func LabelFace() (font.Face, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse label font: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    LabelFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// FaceMeasurer measures text with a font face. Safe for concurrent use.
type FaceMeasurer struct {
	mu   sync.Mutex
	face font.Face
}

// NewFaceMeasurer wraps face. The face must not be shared with a Canvas.
func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	return &FaceMeasurer{face: face}
}

func (m *FaceMeasurer) Measure(text string) (float64, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w := font.MeasureString(m.face, text)
	metrics := m.face.Metrics()
	return float64(w) / 64, float64(metrics.Ascent+metrics.Descent) / 64
}

// NewPipeline builds a renderer and a canvas, each with its own copy of the label face.
func NewPipeline() (*Renderer, *Canvas, error) {
	measureFace, err := LabelFace()
	if err != nil {
		return nil, nil, err
	}
	drawFace, err := LabelFace()
	if err != nil {
		return nil, nil, err
	}
	return NewRenderer(NewFaceMeasurer(measureFace)), NewCanvas(drawFace), nil
}
