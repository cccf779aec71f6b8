package list

import "math"

// Geometry is the snapshot a single pass computes from the scroll target, the
// rendered children and the configuration. It is never stored between passes.
type Geometry struct {
	Count int
	// View is the client size of the scroll target minus the scrollbar
	// deductions.
	View Size
	// Child is the size of one item, explicit or measured.
	Child Size
	// PerLine is the number of items sharing one scroll-axis position (items
	// per row when vertical, per column when horizontal).
	PerLine int
	// PerLineByCalc is PerLine derived arithmetically from the view size.
	PerLineByCalc int
	// PerPage is the number of lines that fit in the view along the scroll
	// axis.
	PerPage int
	// Extent is the total scrollable size along the scroll axis.
	Extent float64
}

// clampCount turns an arithmetic item count into a usable divisor: NaN,
// infinities and anything below one become one.
func clampCount(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 1 {
		return 1
	}
	return int(v)
}

func (l *List[T]) viewSize() Size {
	client := l.target.ClientSize()
	return Size{
		Width:  max(0, client.Width-l.scrollbarWidth),
		Height: max(0, client.Height-l.scrollbarHeight),
	}
}

// childSize resolves the item size. Explicit sizes win per axis; otherwise the
// bounding box of the first rendered child is used, and when nothing has been
// rendered yet the view size stands in for it. That last estimate is wrong for
// almost every list, which is why a collection change starts a stabilization
// loop.
func (l *List[T]) childSize(view Size) Size {
	child := Size{Width: l.childWidth, Height: l.childHeight}
	if child.Width > 0 && child.Height > 0 {
		return child
	}
	measured := view
	if len(l.children) > 0 {
		measured = l.children[0].rect.Size
	}
	if child.Width <= 0 {
		child.Width = measured.Width
	}
	if child.Height <= 0 {
		child.Height = measured.Height
	}
	return child
}

// countPerLine counts the leading rendered children that share the first
// child's scroll-axis coordinate.
func (l *List[T]) countPerLine() int {
	n := 0
	for i, c := range l.children {
		if i > 0 && c.rect.Point.Along(l.axes.scroll) != l.children[0].rect.Point.Along(l.axes.scroll) {
			break
		}
		n++
	}
	return n
}

func (l *List[T]) rawScroll() float64 {
	return l.target.ScrollOffset(l.axes.scroll)
}

// elementsOffset is the position of the list inside a delegated scroll
// target. The list's own pane never carries an offset.
func (l *List[T]) elementsOffset() float64 {
	if l.target == ScrollTarget(l.self) {
		return 0
	}
	return l.position.Along(l.axes.scroll)
}

func (l *List[T]) calculateDimensions() Geometry {
	a := l.axes
	count := len(l.items)
	view := l.viewSize()
	child := l.childSize(view)

	perLine := max(1, l.countPerLine())
	perLineByCalc := clampCount(math.Floor(view.Along(a.cross) / child.Along(a.cross)))
	perPage := clampCount(math.Floor(view.Along(a.scroll) / child.Along(a.scroll)))

	scroll := max(0, l.rawScroll())
	extent := child.Along(a.scroll) * math.Ceil(float64(count)/float64(perLine))

	// A last, partial line can be the only thing rendered near the end of the
	// list; counting it would report one item per line.
	if perPage == 1 && math.Floor(scroll/extent*float64(count))+float64(perLineByCalc) >= float64(count) {
		perLine = perLineByCalc
	}

	l.writeExtent(extent)

	return Geometry{
		Count:         count,
		View:          view,
		Child:         child,
		PerLine:       perLine,
		PerLineByCalc: perLineByCalc,
		PerPage:       perPage,
		Extent:        extent,
	}
}
