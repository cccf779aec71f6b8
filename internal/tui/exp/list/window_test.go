package list

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeWindow(t *testing.T) {
	t.Parallel()

	vertical := axesFor(Vertical)
	column := Geometry{
		Count:   100,
		View:    Size{Width: 20, Height: 10},
		Child:   Size{Width: 20, Height: 1},
		PerLine: 1,
		PerPage: 10,
		Extent:  100,
	}
	grid := Geometry{
		Count:   100,
		View:    Size{Width: 20, Height: 10},
		Child:   Size{Width: 5, Height: 1},
		PerLine: 4,
		PerPage: 10,
		Extent:  25,
	}

	tests := []struct {
		name      string
		g         Geometry
		axes      axisSet
		scroll    float64
		buffer    int
		start     int
		end       int
		translate float64
	}{
		{"column at top", column, vertical, 0, 0, 0, 11, 0},
		{"column in the middle", column, vertical, 50, 0, 50, 61, 50},
		{"column at the end", column, vertical, 90, 0, 89, 100, 89},
		{"column with buffer", column, vertical, 50, 2, 48, 63, 48},
		{"buffer at top", column, vertical, 0, 2, 0, 13, 0},
		{"grid in the middle", grid, vertical, 10, 0, 40, 84, 10},
		{"grid past the end", grid, vertical, 25, 0, 56, 100, 14},
		{
			"partial last line",
			Geometry{Count: 10, Child: Size{Width: 5, Height: 1}, PerLine: 4, PerPage: 1, Extent: 3},
			vertical, 2, 0, 4, 10, 1,
		},
		{
			"horizontal",
			Geometry{Count: 50, View: Size{Width: 20, Height: 2}, Child: Size{Width: 4, Height: 2}, PerLine: 1, PerPage: 5, Extent: 200},
			axesFor(Horizontal), 40, 0, 10, 16, 40,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := computeWindow(tt.g, tt.axes, tt.scroll, tt.buffer)
			assert.Equal(t, tt.start, w.start, "start")
			assert.Equal(t, tt.end, w.end, "end")
			assert.Equal(t, tt.translate, w.translate, "translate")
		})
	}
}

func TestComputeWindowEmpty(t *testing.T) {
	t.Parallel()

	g := Geometry{Child: Size{Width: 20, Height: 1}, PerLine: 1, PerPage: 10}
	for _, buffer := range []int{0, 3} {
		w := computeWindow(g, axesFor(Vertical), 0, buffer)
		assert.Equal(t, 0, w.start)
		assert.Equal(t, 0, w.end)
		assert.Zero(t, w.translate)
	}
}

func TestComputeWindowBounds(t *testing.T) {
	t.Parallel()

	geometries := []Geometry{
		{Count: 100, Child: Size{Width: 20, Height: 1}, PerLine: 1, PerPage: 10, Extent: 100},
		{Count: 100, Child: Size{Width: 5, Height: 1}, PerLine: 4, PerPage: 10, Extent: 25},
		{Count: 7, Child: Size{Width: 5, Height: 3}, PerLine: 3, PerPage: 2, Extent: 9},
		{Count: 1, Child: Size{Width: 20, Height: 10}, PerLine: 1, PerPage: 1, Extent: 10},
	}
	for gi, g := range geometries {
		for buffer := range 4 {
			for scroll := 0.0; scroll <= g.Extent; scroll += 0.5 {
				t.Run(fmt.Sprintf("%d/buffer=%d/scroll=%.1f", gi, buffer, scroll), func(t *testing.T) {
					w := computeWindow(g, axesFor(Vertical), scroll, buffer)
					require.GreaterOrEqual(t, w.start, 0)
					require.LessOrEqual(t, w.start, w.end)
					require.LessOrEqual(t, w.end, g.Count)
					require.LessOrEqual(t, w.end-w.start, g.PerLine*(g.PerPage+2)+2*buffer)
				})
			}
		}
	}
}

func TestClampScroll(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 50.0, clampScroll(50, 100, 0))
	assert.Equal(t, 100.0, clampScroll(150, 100, 0))
	assert.Equal(t, 100.0, clampScroll(150, 100, 5))
	assert.Equal(t, 15.0, clampScroll(20, 100, 5))
	assert.Zero(t, clampScroll(3, 100, 5))
}

func TestScrollOffsetFor(t *testing.T) {
	t.Parallel()

	column := Geometry{Child: Size{Width: 20, Height: 1}, PerLine: 1}
	grid := Geometry{Child: Size{Width: 5, Height: 1}, PerLine: 4}
	axes := axesFor(Vertical)

	assert.Equal(t, 30.0, scrollOffsetFor(column, axes, 30, 0))
	assert.Equal(t, 28.0, scrollOffsetFor(column, axes, 30, 2))
	assert.Equal(t, 10.0, scrollOffsetFor(grid, axes, 41, 0))
	assert.Equal(t, 7.0, scrollOffsetFor(grid, axes, 41, 3))
	assert.Zero(t, scrollOffsetFor(column, axes, 0, 5))
}

func TestChangeEvent(t *testing.T) {
	t.Parallel()

	ev := ChangeEvent{Start: 3, End: 7}
	assert.Equal(t, 4, ev.Len())
	assert.True(t, ev.Contains(3))
	assert.True(t, ev.Contains(6))
	assert.False(t, ev.Contains(7))
	assert.False(t, ev.Contains(2))
}
