package render

import (
	"image"
	"image/color"
	"math"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/pkg/geospatial"
)

const (
	RouteThickness = 3.5
	SegmentOffset  = 8.0
	LabelOffset    = 20.0
	LabelPadding   = 4.0
	LabelCorner    = 3.0
	TailOutline    = 1.5
	LabelBorder    = 1.0
)

// Renderer turns a visualization model into draw commands. It keeps no state
// between calls, so the same inputs always give the same commands.
type Renderer struct {
	measurer TextMeasurer
}

// NewRenderer creates a new Renderer measuring callout text with m.
func NewRenderer(m TextMeasurer) *Renderer {
	return &Renderer{measurer: m}
}

// Render draws the background letterboxed into size and the route on top of it.
// A nil model or an empty path clears the surface and draws only the background.
// A non-positive size draws nothing.
func (r *Renderer) Render(model *domain.RouteVisualizationModel, size Size, background image.Image) []Command {
	if !size.valid() {
		return nil
	}

	cmds := []Command{Clear{Size: size}}
	vp := Letterbox(size, background)
	if background != nil {
		cmds = append(cmds, Image{Src: background, Viewport: vp})
	}

	if model == nil || model.Path.IsEmpty() {
		return cmds
	}

	cmds = append(cmds, r.segments(model.Path.Segments, vp)...)
	cmds = append(cmds, r.callouts(model.Path, vp, size)...)
	return cmds
}

func (r *Renderer) segments(segments []domain.RouteSegment, vp Viewport) []Command {
	totalByEdge := make(map[string]int, len(segments))
	for _, s := range segments {
		totalByEdge[EdgeKey(s.From.Code, s.To.Code)]++
	}
	indexByEdge := make(map[string]int, len(totalByEdge))

	var cmds []Command
	for i, s := range segments {
		start := vp.ToPixel(s.From.Location)
		end := vp.ToPixel(s.To.Location)

		key := EdgeKey(s.From.Code, s.To.Code)
		index := indexByEdge[key]
		indexByEdge[key] = index + 1

		offset := CanonicalPerpendicular(start, end, s.From.Code, s.To.Code).
			Scale(SpreadOffset(index, totalByEdge[key], SegmentOffset))
		start, end = start.Add(offset), end.Add(offset)

		c := LegColor(i)
		cmds = append(cmds, Line{From: start, To: end, Color: c, Width: RouteThickness})
		if i > 0 {
			cmds = append(cmds, arrowTail(start, c))
		}
		if head, ok := arrowHead(start, end, c); ok {
			cmds = append(cmds, head)
		}
	}
	return cmds
}

func arrowTail(at geospatial.Vec, c color.NRGBA) Command {
	return Circle{
		Center:      at,
		Radius:      math.Max(4, RouteThickness*0.9),
		Fill:        white,
		Stroke:      darker(c),
		StrokeWidth: TailOutline,
	}
}

// arrowHead is a filled triangle whose tip sits on end. Zero-length legs get none.
func arrowHead(start, end geospatial.Vec, c color.NRGBA) (Command, bool) {
	dir := geospatial.Direction(start, end)
	if dir == (geospatial.Vec{}) {
		return nil, false
	}
	length := math.Max(18, RouteThickness*4)
	halfWidth := math.Max(8, RouteThickness*2.5)

	base := end.Sub(dir.Scale(length))
	normal := geospatial.Vec{X: -dir.Y, Y: dir.X}.Scale(halfWidth)
	return Polygon{
		Points: []geospatial.Vec{end, base.Add(normal), base.Sub(normal)},
		Fill:   c,
	}, true
}

// callouts places START near the first stop and END near the last, each nudged away
// from its neighbouring stop. A single-stop route gets both, START above and END below.
func (r *Renderer) callouts(path *domain.RoutePath, vp Viewport, size Size) []Command {
	stops, segments := path.Stops, path.Segments
	var cmds []Command

	first := vp.ToPixel(stops[0].Location)
	if len(segments) > 0 {
		next := vp.ToPixel(segments[0].To.Location)
		first = first.Add(geospatial.Direction(next, first).Scale(LabelOffset))
	} else {
		first = first.Add(geospatial.Vec{Y: -LabelOffset})
	}
	cmds = append(cmds, r.label("START", first, size))

	last := vp.ToPixel(stops[len(stops)-1].Location)
	if len(stops) > 1 && len(segments) > 0 {
		prev := vp.ToPixel(segments[len(segments)-1].From.Location)
		last = last.Add(geospatial.Direction(prev, last).Scale(LabelOffset))
	} else {
		last = last.Add(geospatial.Vec{Y: LabelOffset})
	}
	cmds = append(cmds, r.label("END", last, size))
	return cmds
}

// label anchors a callout above point and keeps it on the surface. When it would
// leave the top edge it moves below the point; bottom overflow pins it to the bottom edge.
// The left and top edges win when the surface is smaller than the callout.
func (r *Renderer) label(text string, point geospatial.Vec, size Size) Label {
	tw, th := r.measurer.Measure(text)

	w := tw + LabelPadding*2
	h := th + LabelPadding*2
	x := point.X - tw/2 - LabelPadding
	y := point.Y - th - LabelPadding*2

	if x < 0 {
		x = 0
	}
	if x+w > size.Width {
		x = size.Width - w
	}
	if y < 0 {
		y = point.Y + LabelPadding
	}
	if y+h > size.Height {
		y = size.Height - h
	}
	// A surface smaller than the callout keeps its top-left corner on screen.
	x, y = math.Max(x, 0), math.Max(y, 0)

	return Label{
		Text:         text,
		X:            x,
		Y:            y,
		Width:        w,
		Height:       h,
		CornerRadius: LabelCorner,
		Fill:         labelFill,
		Border:       darkGray,
		BorderWidth:  LabelBorder,
		TextColor:    black,
		TextOrigin:   geospatial.Vec{X: x + LabelPadding, Y: y + h - LabelPadding},
	}
}
