package render

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/samirrijal/campusroute/internal/core/domain"
	"github.com/samirrijal/campusroute/internal/pkg/geospatial"
)

type fixedMeasurer struct{ w, h float64 }

func (m fixedMeasurer) Measure(string) (float64, float64) { return m.w, m.h }

func building(t *testing.T, code string, x, y float64) *domain.Building {
	t.Helper()
	b, err := domain.NewBuilding(code, "", domain.CampusCoordinate{X: x, Y: y})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func modelFor(stops []*domain.Building, segments []domain.RouteSegment) *domain.RouteVisualizationModel {
	m := domain.EmptyModel(0)
	m.Path = &domain.RoutePath{Stops: stops, Segments: segments}
	return m
}

func ofType[T Command](cmds []Command) []T {
	var out []T
	for _, c := range cmds {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

var surface = Size{Width: 400, Height: 200}

func TestRender_InvalidSize(t *testing.T) {
	r := NewRenderer(fixedMeasurer{40, 15})
	if cmds := r.Render(nil, Size{Width: 0, Height: 100}, nil); cmds != nil {
		t.Errorf("expected no commands, got %d", len(cmds))
	}
}

func TestRender_EmptyModelDrawsOnlyBackground(t *testing.T) {
	r := NewRenderer(fixedMeasurer{40, 15})
	bg := image.NewRGBA(image.Rect(0, 0, 200, 200))

	for _, m := range []*domain.RouteVisualizationModel{nil, domain.EmptyModel(1)} {
		cmds := r.Render(m, surface, bg)
		if len(cmds) != 2 {
			t.Fatalf("expected clear + image, got %d commands", len(cmds))
		}
		if _, ok := cmds[0].(Clear); !ok {
			t.Errorf("expected Clear first, got %T", cmds[0])
		}
		img, ok := cmds[1].(Image)
		if !ok {
			t.Fatalf("expected Image second, got %T", cmds[1])
		}
		if img.Viewport != (Viewport{X: 100, Y: 0, Width: 200, Height: 200}) {
			t.Errorf("unexpected letterbox %+v", img.Viewport)
		}
	}
}

func TestRender_ReturnTripIsOffsetNotRetraced(t *testing.T) {
	a := building(t, "A", 0.25, 0.5)
	b := building(t, "b", 0.75, 0.5)
	m := modelFor(
		[]*domain.Building{a, b, a},
		[]domain.RouteSegment{{From: a, To: b}, {From: b, To: a}},
	)

	lines := ofType[Line](NewRenderer(fixedMeasurer{40, 15}).Render(m, surface, nil))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].From != (geospatial.Vec{X: 100, Y: 96}) || lines[0].To != (geospatial.Vec{X: 300, Y: 96}) {
		t.Errorf("unexpected outbound line %+v -> %+v", lines[0].From, lines[0].To)
	}
	if lines[1].From != (geospatial.Vec{X: 300, Y: 104}) || lines[1].To != (geospatial.Vec{X: 100, Y: 104}) {
		t.Errorf("unexpected return line %+v -> %+v", lines[1].From, lines[1].To)
	}
}

func TestRender_TailsSkipFirstLegAndColorsCycle(t *testing.T) {
	var stops []*domain.Building
	var segments []domain.RouteSegment
	for i := 0; i < 9; i++ {
		stops = append(stops, building(t, string(rune('A'+i)), float64(i)/10, float64(i%2)/2))
	}
	for i := 1; i < len(stops); i++ {
		segments = append(segments, domain.RouteSegment{From: stops[i-1], To: stops[i]})
	}

	cmds := NewRenderer(fixedMeasurer{40, 15}).Render(modelFor(stops, segments), surface, nil)

	if n := len(ofType[Circle](cmds)); n != len(segments)-1 {
		t.Errorf("expected %d tails, got %d", len(segments)-1, n)
	}
	if n := len(ofType[Polygon](cmds)); n != len(segments) {
		t.Errorf("expected %d arrowheads, got %d", len(segments), n)
	}
	lines := ofType[Line](cmds)
	if lines[7].Color != lines[0].Color {
		t.Errorf("expected palette to wrap after %d legs", len(Palette))
	}
	if lines[1].Color == lines[0].Color {
		t.Error("expected consecutive legs to differ in color")
	}
}

func TestRender_ArrowHeadTipOnEnd(t *testing.T) {
	a := building(t, "A", 0.25, 0.5)
	b := building(t, "B", 0.75, 0.5)
	cmds := NewRenderer(fixedMeasurer{40, 15}).Render(modelFor([]*domain.Building{a, b}, []domain.RouteSegment{{From: a, To: b}}), surface, nil)

	heads := ofType[Polygon](cmds)
	if len(heads) != 1 {
		t.Fatalf("expected 1 arrowhead, got %d", len(heads))
	}
	p := heads[0].Points
	if p[0] != (geospatial.Vec{X: 300, Y: 100}) {
		t.Errorf("expected tip at end point, got %+v", p[0])
	}
	if p[1].X != 282 || p[2].X != 282 {
		t.Errorf("expected base 18px behind tip, got %+v", p)
	}
	wantBase := 2 * math.Max(8, RouteThickness*2.5)
	if p[1].Y-p[2].Y != wantBase {
		t.Errorf("expected %vpx wide base, got %v", wantBase, p[1].Y-p[2].Y)
	}
}

func TestRender_SingleStopCallouts(t *testing.T) {
	a := building(t, "A", 0.25, 0.5)
	labels := ofType[Label](NewRenderer(fixedMeasurer{40, 15}).Render(modelFor([]*domain.Building{a}, nil), surface, nil))
	if len(labels) != 2 {
		t.Fatalf("expected START and END, got %d labels", len(labels))
	}
	if labels[0].Text != "START" || labels[0].X != 76 || labels[0].Y != 57 {
		t.Errorf("unexpected START label %+v", labels[0])
	}
	if labels[1].Text != "END" || labels[1].Y != 97 {
		t.Errorf("unexpected END label %+v", labels[1])
	}
}

func TestRender_CalloutsNudgedAwayFromNeighbour(t *testing.T) {
	a := building(t, "A", 0.25, 0.5)
	b := building(t, "B", 0.75, 0.5)
	labels := ofType[Label](NewRenderer(fixedMeasurer{40, 15}).Render(modelFor([]*domain.Building{a, b}, []domain.RouteSegment{{From: a, To: b}}), surface, nil))

	// START sits 20px left of A, END 20px right of B.
	if labels[0].X != 80-20-4 {
		t.Errorf("unexpected START x %v", labels[0].X)
	}
	if labels[1].X != 320-20-4 {
		t.Errorf("unexpected END x %v", labels[1].X)
	}
}

func TestLabel_Clamping(t *testing.T) {
	r := NewRenderer(fixedMeasurer{40, 15})

	l := r.label("START", geospatial.Vec{X: 5, Y: 10}, surface)
	if l.X != 0 {
		t.Errorf("expected left clamp to 0, got %v", l.X)
	}
	if l.Y != 14 {
		t.Errorf("expected re-anchor below point, got %v", l.Y)
	}

	l = r.label("END", geospatial.Vec{X: 395, Y: 100}, surface)
	if l.X+l.Width != surface.Width {
		t.Errorf("expected right clamp, got x=%v w=%v", l.X, l.Width)
	}

	l = r.label("END", geospatial.Vec{X: 100, Y: 10}, Size{Width: 400, Height: 30})
	if l.Y+l.Height != 30 {
		t.Errorf("expected bottom clamp, got y=%v h=%v", l.Y, l.Height)
	}
}

func TestLabel_SurfaceSmallerThanCallout(t *testing.T) {
	r := NewRenderer(fixedMeasurer{40, 15})

	l := r.label("START", geospatial.Vec{X: 20, Y: 10}, Size{Width: 30, Height: 20})
	if l.X != 0 || l.Y != 0 {
		t.Errorf("expected callout pinned to the top-left corner, got x=%v y=%v", l.X, l.Y)
	}
	if l.TextOrigin.X < 0 || l.TextOrigin.Y < 0 {
		t.Errorf("expected text inside the surface, got %+v", l.TextOrigin)
	}
}

func TestRender_PixelIdenticalOnRepeat(t *testing.T) {
	renderer, canvas, err := NewPipeline()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := building(t, "22", 0.2, 0.3)
	b := building(t, "59", 0.7, 0.6)
	m := modelFor([]*domain.Building{a, b, a}, []domain.RouteSegment{{From: a, To: b}, {From: b, To: a}})

	bg := image.NewRGBA(image.Rect(0, 0, 80, 60))
	for x := 0; x < 80; x++ {
		bg.Set(x, 30, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	}

	var first, second bytes.Buffer
	if err := canvas.EncodePNG(&first, renderer.Render(m, surface, bg), 400, 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := canvas.EncodePNG(&second, renderer.Render(m, surface, bg), 400, 200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("expected identical output for identical input")
	}

	imgA, err := canvas.Rasterize(renderer.Render(m, surface, bg), 400, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	imgB, err := canvas.Rasterize(renderer.Render(m, surface, bg), 400, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rgbaA, okA := imgA.(*image.RGBA)
	rgbaB, okB := imgB.(*image.RGBA)
	if !okA || !okB {
		t.Fatalf("expected RGBA surfaces, got %T and %T", imgA, imgB)
	}
	if !bytes.Equal(rgbaA.Pix, rgbaB.Pix) {
		t.Error("expected pixel-identical surfaces")
	}
}

func TestCanonicalPerpendicular_DirectionIndependent(t *testing.T) {
	p, q := geospatial.Vec{X: 10, Y: 10}, geospatial.Vec{X: 50, Y: 40}
	if CanonicalPerpendicular(p, q, "B7", "c2") != CanonicalPerpendicular(q, p, "c2", "B7") {
		t.Error("expected the same perpendicular in both directions")
	}
	if EdgeKey("B7", "a1") != "a1->b7" || EdgeKey("a1", "B7") != "a1->b7" {
		t.Errorf("unexpected edge key %q", EdgeKey("B7", "a1"))
	}
}

func TestSpreadOffset(t *testing.T) {
	if SpreadOffset(0, 1, 8) != 0 {
		t.Error("a lone segment must not be offset")
	}
	got := []float64{SpreadOffset(0, 3, 8), SpreadOffset(1, 3, 8), SpreadOffset(2, 3, 8)}
	if got[0] != -8 || got[1] != 0 || got[2] != 8 {
		t.Errorf("expected [-8 0 8], got %v", got)
	}
}
