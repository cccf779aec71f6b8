package list

import "math"

// Surface receives the presentation writes of a pass: the total scrollable
// extent of the placeholder and the leading offset of the rendered content
// block. Both are along the list's scroll axis.
type Surface interface {
	SetExtent(axis Axis, extent float64)
	SetTranslate(axis Axis, offset float64)
}

// canvas is the surface every list starts with. View reads from it.
type canvas struct {
	extent    float64
	translate float64
	writes    int
}

func (c *canvas) SetExtent(_ Axis, extent float64) {
	c.extent = extent
	c.writes++
}

func (c *canvas) SetTranslate(_ Axis, offset float64) {
	c.translate = offset
	c.writes++
}

// renderCache remembers the last values written to the surface so repeated
// passes with unchanged geometry don't write again.
type renderCache struct {
	extent    float64
	translate float64
}

func newRenderCache() renderCache {
	return renderCache{extent: -1, translate: -1}
}

func (l *List[T]) writeExtent(extent float64) {
	if extent == l.cache.extent {
		return
	}
	l.cache.extent = extent
	l.surface.SetExtent(l.axes.scroll, extent)
	if l.surface != Surface(l.canvas) {
		l.canvas.SetExtent(l.axes.scroll, extent)
	}
	if t, ok := l.target.(contentSizer); ok {
		t.reserveExtent(l.id, l.axes.scroll, l.elementsOffset()+extent)
	}
}

func (l *List[T]) writeTranslate(offset float64) {
	if math.IsNaN(offset) {
		offset = 0
	}
	if offset == l.cache.translate {
		return
	}
	l.cache.translate = offset
	l.surface.SetTranslate(l.axes.scroll, offset)
	if l.surface != Surface(l.canvas) {
		l.canvas.SetTranslate(l.axes.scroll, offset)
	}
}
