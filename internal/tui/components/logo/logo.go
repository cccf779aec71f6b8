package logo

import (
	"image/color"
	"strings"
	"unicode"

	"github.com/MakeNowJust/heredoc"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

var Scroll = heredoc.Doc(`
   ▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄▄
  █▀ ▄▄▄▄▄▄▄▄▄▄▄▄ ▀█
  █  ▀▀▀▀▀▀▀▀▀▀▀▀  █
  █  ▄▄▄▄▄▄▄▄▄▄    █
  █  ▀▀▀▀▀▀▀▀▀▀    █
  █  ▄▄▄▄▄▄▄▄▄▄▄▄  █
  █▄ ▀▀▀▀▀▀▀▀▀▀▀▀ ▄█
   ▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀▀
`)

// Logo is a piece of block art drawn cell by cell so the cells around it stay
// untouched.
type Logo struct {
	face  string
	color color.Color
}

func Standard(c color.Color) *Logo {
	return &Logo{
		face:  Scroll,
		color: c,
	}
}

// Size is the width and height of the art in cells.
func (l *Logo) Size() (int, int) {
	lines := strings.Split(strings.TrimRight(l.face, "\n"), "\n")
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w, len(lines)
}

func (l *Logo) Draw(scr uv.Screen, area uv.Rectangle) {
	style := uv.Style{Fg: l.color}
	for y, line := range strings.Split(l.face, "\n") {
		if area.Min.Y+y >= area.Max.Y {
			return
		}
		for x, r := range []rune(line) {
			if unicode.IsSpace(r) || area.Min.X+x >= area.Max.X {
				continue
			}
			cell := uv.Cell{
				Style:   style,
				Content: string(r),
				Width:   1,
			}
			scr.SetCell(area.Min.X+x, area.Min.Y+y, &cell)
		}
	}
}

// Render draws the art centered in a width by height block with caption
// below it. Only the caption is drawn when the art does not fit.
func (l *Logo) Render(width, height int, caption string) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	scr := uv.NewScreenBuffer(width, height)
	w, h := l.Size()
	line := height / 2
	if h+2 <= height {
		y := (height - h - 2) / 2
		l.Draw(scr, uv.Rect(max(0, (width-w)/2), y, w, h))
		line = y + h + 1
	}

	if caption != "" {
		cw := min(ansi.StringWidth(caption), width)
		uv.NewStyledString(caption).Draw(scr, uv.Rect(max(0, (width-cw)/2), line, cw, 1))
	}
	return scr.Render()
}
