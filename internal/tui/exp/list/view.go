package list

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

// Renderer turns one item into its terminal representation.
type Renderer[T any] func(item T, index int) string

// child is one rendered item of the current window.
type child struct {
	index int
	view  string
	rect  Rect
}

func (l *List[T]) renderItem(item T, index int) string {
	if l.renderer != nil {
		return l.renderer(item, index)
	}
	switch v := any(item).(type) {
	case interface{ View() string }:
		return v.View()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(item)
}

// renderWindow renders the items of the current window and places them in
// the content block. Children flow along the cross axis and wrap when the
// next one would overflow the list's own size, so the placement of the first
// children is what the next pass measures.
func (l *List[T]) renderWindow() {
	l.viewportItems = l.items[l.start:l.end]
	l.children = l.children[:0]

	a := l.axes
	limit := l.ownSize().Along(a.cross)
	var cross, line, lineSize float64
	for i, item := range l.viewportItems {
		index := l.start + i
		view := l.renderItem(item, index)
		w, h := lipgloss.Size(view)
		box := Size{Width: float64(w), Height: float64(h)}
		if l.childWidth > 0 {
			box.Width = l.childWidth
		}
		if l.childHeight > 0 {
			box.Height = l.childHeight
		}
		if cross > 0 && cross+box.Along(a.cross) > limit {
			cross = 0
			line += lineSize
			lineSize = 0
		}
		var p Point
		if a.scroll == AxisY {
			p = Point{X: cross, Y: line}
		} else {
			p = Point{X: line, Y: cross}
		}
		l.children = append(l.children, child{index: index, view: view, rect: Rect{Point: p, Size: box}})
		cross += box.Along(a.cross)
		lineSize = max(lineSize, box.Along(a.scroll))
	}
}

func (l *List[T]) ownSize() Size {
	return Size{Width: float64(l.width), Height: float64(l.height)}
}

// visibleOffset is where the list's visible region starts inside its own
// content, in scroll-axis cells.
func (l *List[T]) visibleOffset() float64 {
	return max(0, l.rawScroll()-l.elementsOffset())
}

// View implements tea.ViewModel. It composes the rendered children at their
// translated positions and clips them to the list's size.
func (l *List[T]) View() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}

	area := uv.Rect(0, 0, l.width, l.height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())

	a := l.axes
	shift := l.canvas.translate - l.visibleOffset()
	limit := l.ownSize().Along(a.scroll)
	for _, c := range l.children {
		lead := c.rect.Point.Along(a.scroll) + shift
		size := c.rect.Size.Along(a.scroll)
		if lead+size <= 0 || lead >= limit {
			continue
		}
		from := int(math.Max(0, -lead))
		to := int(math.Min(size, limit-lead))
		view := clip(c.view, a.scroll, from, to)
		if view == "" {
			continue
		}
		w, h := lipgloss.Size(view)
		var x, y int
		if a.scroll == AxisY {
			x, y = int(c.rect.X), int(lead)+from
		} else {
			x, y = int(lead)+from, int(c.rect.Y)
		}
		uv.NewStyledString(view).Draw(scr, uv.Rect(x, y, w, h))
	}

	view := scr.Render()
	if l.resize {
		return view
	}
	return lipgloss.NewStyle().
		Width(l.width).
		Height(l.height).
		MaxHeight(l.height).
		Render(view)
}

// clip keeps the cells [from, to) of view along the axis.
func clip(view string, axis Axis, from, to int) string {
	if to <= from {
		return ""
	}
	lines := strings.Split(view, "\n")
	if axis == AxisY {
		from = min(from, len(lines))
		to = min(to, len(lines))
		return strings.Join(lines[from:to], "\n")
	}
	for i, line := range lines {
		lines[i] = ansi.Cut(line, from, to)
	}
	return strings.Join(lines, "\n")
}
