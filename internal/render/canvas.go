package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Canvas rasterizes draw commands with gg.
// font.Face is not safe for concurrent use, so rasterization is serialized.
type Canvas struct {
	mu   sync.Mutex
	face font.Face
}

// NewCanvas creates a new Canvas drawing label text with face.
func NewCanvas(face font.Face) *Canvas {
	return &Canvas{face: face}
}

// Rasterize replays cmds onto a fresh RGBA surface of the given size.
func (c *Canvas) Rasterize(cmds []Command, width, height int) (image.Image, error) {
	dc, err := c.replay(cmds, width, height)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// EncodePNG rasterizes cmds and writes the result as PNG.
func (c *Canvas) EncodePNG(w io.Writer, cmds []Command, width, height int) error {
	img, err := c.Rasterize(cmds, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (c *Canvas) replay(cmds []Command, width, height int) (*gg.Context, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	dc := gg.NewContext(width, height)
	for _, cmd := range cmds {
		c.draw(dc, cmd)
	}
	return dc, nil
}

func (c *Canvas) draw(dc *gg.Context, cmd Command) {
	switch cmd := cmd.(type) {
	case Clear:
		dc.SetRGBA(0, 0, 0, 0)
		dc.Clear()

	case Image:
		b := cmd.Src.Bounds()
		if b.Dx() == 0 || b.Dy() == 0 {
			return
		}
		dc.Push()
		dc.Translate(cmd.Viewport.X, cmd.Viewport.Y)
		dc.Scale(cmd.Viewport.Width/float64(b.Dx()), cmd.Viewport.Height/float64(b.Dy()))
		dc.DrawImage(cmd.Src, -b.Min.X, -b.Min.Y)
		dc.Pop()

	case Line:
		dc.SetColor(cmd.Color)
		dc.SetLineWidth(cmd.Width)
		dc.SetLineCap(gg.LineCapRound)
		dc.DrawLine(cmd.From.X, cmd.From.Y, cmd.To.X, cmd.To.Y)
		dc.Stroke()

	case Polygon:
		if len(cmd.Points) < 3 {
			return
		}
		dc.NewSubPath()
		dc.MoveTo(cmd.Points[0].X, cmd.Points[0].Y)
		for _, p := range cmd.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.SetColor(cmd.Fill)
		dc.Fill()

	case Circle:
		dc.DrawCircle(cmd.Center.X, cmd.Center.Y, cmd.Radius)
		dc.SetColor(cmd.Fill)
		dc.FillPreserve()
		dc.SetColor(cmd.Stroke)
		dc.SetLineWidth(cmd.StrokeWidth)
		dc.Stroke()

	case Label:
		dc.DrawRoundedRectangle(cmd.X, cmd.Y, cmd.Width, cmd.Height, cmd.CornerRadius)
		dc.SetColor(cmd.Fill)
		dc.FillPreserve()
		dc.SetColor(cmd.Border)
		dc.SetLineWidth(cmd.BorderWidth)
		dc.Stroke()
		if c.face != nil {
			dc.SetFontFace(c.face)
		}
		dc.SetColor(cmd.TextColor)
		dc.DrawString(cmd.Text, cmd.TextOrigin.X, cmd.TextOrigin.Y)
	}
}
