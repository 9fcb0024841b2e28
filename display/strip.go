package display

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/manege/core"
)

const (
	defaultGlyph     = '█'
	defaultCellWidth = 2
)

// Strip draws the pixel strip as one row of colored blocks on a tcell screen
// The screen lifecycle (Init/Fini) stays with the caller
type Strip struct {
	screen    tcell.Screen
	x, y      int
	cellWidth int
	glyph     rune
	status    string
}

// NewStrip creates a strip drawn at column x, row y
func NewStrip(screen tcell.Screen, x, y int) *Strip {
	return &Strip{
		screen:    screen,
		x:         x,
		y:         y,
		cellWidth: defaultCellWidth,
		glyph:     defaultGlyph,
	}
}

// SetCellWidth sets how many terminal columns one pixel uses
func (s *Strip) SetCellWidth(w int) {
	if w > 0 {
		s.cellWidth = w
	}
}

// SetStatus sets the text line drawn under the strip
func (s *Strip) SetStatus(text string) {
	s.status = text
}

// Show paints pixels and flushes the screen
// Pixels beyond the screen width are not drawn
func (s *Strip) Show(pixels []core.RGB) error {
	width, height := s.screen.Size()
	bg := tcell.StyleDefault.Background(tcell.ColorBlack)

	for col := s.x; col < width; col++ {
		s.screen.SetContent(col, s.y, ' ', nil, bg)
	}

	for i, c := range pixels {
		style := bg.Foreground(Color(c))
		for k := 0; k < s.cellWidth; k++ {
			col := s.x + i*s.cellWidth + k
			if col >= width {
				break
			}
			s.screen.SetContent(col, s.y, s.glyph, nil, style)
		}
	}

	if statusRow := s.y + 2; statusRow < height {
		for col := 0; col < width; col++ {
			s.screen.SetContent(col, statusRow, ' ', nil, bg)
		}
		text := tcell.StyleDefault.Foreground(tcell.ColorGray).Background(tcell.ColorBlack)
		col := s.x
		for _, r := range s.status {
			if col >= width {
				break
			}
			s.screen.SetContent(col, statusRow, r, nil, text)
			col++
		}
	}

	s.screen.Show()
	return nil
}

// Fill paints every pixel one color, used to black out the strip
func (s *Strip) Fill(c core.RGB, size int) error {
	pixels := make([]core.RGB, size)
	for i := range pixels {
		pixels[i] = c
	}
	return s.Show(pixels)
}

// Color converts to a tcell true color
func Color(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
