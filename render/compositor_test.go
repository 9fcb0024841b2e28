package render

import (
	"math"
	"testing"

	"github.com/lixenwraith/manege/core"
	"github.com/lixenwraith/manege/entity"
)

func TestRenderOpaqueNonOverlapping(t *testing.T) {
	c := NewCompositor()
	a := entity.New(0, core.RGBRed, 2)
	b := entity.New(1, core.RGBGreen, 6)

	px := c.Render([]*entity.Entity{a, b}, 10, core.Wrap)

	if len(px) != 10 {
		t.Fatalf("Expected 10 pixels, got %d", len(px))
	}
	for i, got := range px {
		want := core.RGBBlack
		switch i {
		case 2:
			want = core.RGBRed
		case 6:
			want = core.RGBGreen
		}
		if got != want {
			t.Errorf("Pixel %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestRenderHalfCellOverlap(t *testing.T) {
	c := NewCompositor()
	a := entity.New(0, core.RGBRed, 3)
	b := entity.New(1, core.RGBBlue, 3.5)
	b.ZIndex = 1

	px := c.Render([]*entity.Entity{a, b}, 10, core.Clip)

	// Cell 3: red fully, then blue covering half of it
	wantShared := Blend(core.RGBRed, core.RGBBlue, 0.5)
	if px[3] != wantShared {
		t.Errorf("Shared cell: expected %v, got %v", wantShared, px[3])
	}
	if wantShared != (core.RGB{R: 128, G: 0, B: 128}) {
		t.Errorf("Expected interpolation formula result {128 0 128}, got %v", wantShared)
	}
	// Cell 4: blue half over black
	if want := (core.RGB{R: 0, G: 0, B: 128}); px[4] != want {
		t.Errorf("Edge cell: expected %v, got %v", want, px[4])
	}
}

func TestRenderZOrder(t *testing.T) {
	c := NewCompositor()
	top := entity.New(0, core.RGBRed, 4)
	top.ZIndex = 5
	bottom := entity.New(1, core.RGBGreen, 4)

	px := c.Render([]*entity.Entity{top, bottom}, 8, core.Wrap)
	if px[4] != core.RGBRed {
		t.Errorf("Expected higher z-index on top, got %v", px[4])
	}

	// Equal z-index: later input paints last
	top.ZIndex = 0
	px = c.Render([]*entity.Entity{top, bottom}, 8, core.Wrap)
	if px[4] != core.RGBGreen {
		t.Errorf("Expected tie to keep input order, got %v", px[4])
	}
}

func TestRenderDoesNotReorderInput(t *testing.T) {
	c := NewCompositor()
	a := entity.New(0, core.RGBRed, 1)
	a.ZIndex = 3
	b := entity.New(1, core.RGBGreen, 2)
	in := []*entity.Entity{a, b}

	c.Render(in, 5, core.Wrap)
	if in[0] != a || in[1] != b {
		t.Error("Expected caller slice order to be untouched")
	}
}

func TestRenderHiddenAndOpacity(t *testing.T) {
	c := NewCompositor()
	a := entity.New(0, core.RGBWhite, 1)
	a.Hidden = true
	b := entity.New(1, core.RGB{R: 200, G: 100, B: 0}, 3)
	b.Opacity = 0.5

	px := c.Render([]*entity.Entity{a, b}, 5, core.Wrap)

	if px[1] != core.RGBBlack {
		t.Errorf("Expected hidden entity not drawn, got %v", px[1])
	}
	if want := (core.RGB{R: 100, G: 50, B: 0}); px[3] != want {
		t.Errorf("Expected half opacity blend %v, got %v", want, px[3])
	}
}

func TestRenderBounds(t *testing.T) {
	c := NewCompositor()
	e := entity.New(0, core.RGBGreen, 9)
	e.Width = 3 // covers cells 8, 9, 10

	px := c.Render([]*entity.Entity{e}, 10, core.Wrap)
	if px[8] != core.RGBGreen || px[9] != core.RGBGreen || px[0] != core.RGBGreen {
		t.Errorf("Expected wrap to paint cells 8, 9 and 0, got %v", px)
	}

	px = c.Render([]*entity.Entity{e}, 10, core.Clip)
	if px[0] != core.RGBBlack {
		t.Errorf("Expected clip to drop the overflow cell, got %v", px[0])
	}
	if px[9] != core.RGBGreen {
		t.Errorf("Expected in-range cells to be painted, got %v", px[9])
	}

	// Negative side
	e.Position = 0
	px = c.Render([]*entity.Entity{e}, 10, core.Wrap)
	if px[9] != core.RGBGreen || px[1] != core.RGBGreen {
		t.Errorf("Expected wrap on the low side to paint cell 9, got %v", px)
	}
}

func TestRenderNarrowEntity(t *testing.T) {
	c := NewCompositor()
	e := entity.New(0, core.RGB{R: 200, G: 200, B: 200}, 2)
	e.Width = 0.5

	px := c.Render([]*entity.Entity{e}, 5, core.Wrap)

	// Entirely inside cell 2, covers half of it
	if want := (core.RGB{R: 100, G: 100, B: 100}); px[2] != want {
		t.Errorf("Expected %v, got %v", want, px[2])
	}
}

func TestRenderEmpty(t *testing.T) {
	c := NewCompositor()
	if px := c.Render(nil, 0, core.Wrap); px != nil {
		t.Error("Expected nil for empty strip")
	}
	px := c.Render(nil, 3, core.Wrap)
	for i, p := range px {
		if p != core.RGBBlack {
			t.Errorf("Pixel %d: expected black, got %v", i, p)
		}
	}
}

func TestCoverage(t *testing.T) {
	e := entity.New(0, core.RGBRed, 3.25)
	e.Width = 2
	// span [2.75, 4.75]
	want := map[int]float64{1: 0, 2: 0.25, 3: 1, 4: 0.75, 5: 0}
	for i, w := range want {
		if got := Coverage(e, i); math.Abs(got-w) > 1e-9 {
			t.Errorf("Cell %d: expected %f, got %f", i, w, got)
		}
	}
}
