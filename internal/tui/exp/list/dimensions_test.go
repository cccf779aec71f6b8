package list

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampCount(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, clampCount(math.NaN()))
	assert.Equal(t, 1, clampCount(math.Inf(1)))
	assert.Equal(t, 1, clampCount(0))
	assert.Equal(t, 1, clampCount(0.5))
	assert.Equal(t, 3, clampCount(3.9))
}

func TestCalculateDimensions(t *testing.T) {
	t.Parallel()

	t.Run("view size stands in before anything is rendered", func(t *testing.T) {
		t.Parallel()
		l := New(makeItems(100, 20), WithSize(20, 10))
		g := l.Geometry()
		assert.Equal(t, Size{Width: 20, Height: 10}, g.Child)
		assert.Equal(t, 1, g.PerLine)
		assert.Equal(t, 1, g.PerPage)
		assert.Equal(t, 1000.0, g.Extent)
		assert.Equal(t, 1000.0, l.Pane().ContentExtent(AxisY))
	})

	t.Run("explicit child size", func(t *testing.T) {
		t.Parallel()
		l := New(makeItems(100, 20), WithSize(20, 10), WithChildSize(10, 2))
		g := l.Geometry()
		assert.Equal(t, Size{Width: 10, Height: 2}, g.Child)
		assert.Equal(t, 2, g.PerLineByCalc)
		assert.Equal(t, 5, g.PerPage)
		assert.Equal(t, 200.0, g.Extent)
	})

	t.Run("explicit size along one axis", func(t *testing.T) {
		t.Parallel()
		l := New(makeItems(100, 20), WithSize(20, 10), WithChildHeight(2))
		g := l.Geometry()
		assert.Equal(t, Size{Width: 20, Height: 2}, g.Child)
	})

	t.Run("scrollbar is deducted from the view", func(t *testing.T) {
		t.Parallel()
		l := New(makeItems(100, 20), WithSize(20, 10), WithScrollbar(1, 2))
		g := l.Geometry()
		assert.Equal(t, Size{Width: 19, Height: 8}, g.View)
	})

	t.Run("measured from the rendered children", func(t *testing.T) {
		t.Parallel()
		l := New(makeItems(100, 5), WithSize(20, 10), WithFrameInterval(0))
		newDriver(t, l).run(l.Init())
		g := l.Geometry()
		assert.Equal(t, Size{Width: 5, Height: 1}, g.Child)
		assert.Equal(t, 4, g.PerLine)
		assert.Equal(t, 4, g.PerLineByCalc)
		assert.Equal(t, 10, g.PerPage)
		assert.Equal(t, 25.0, g.Extent)
	})
}

func TestCalculateDimensionsLastLine(t *testing.T) {
	t.Parallel()

	setup := func(scroll float64) Geometry {
		l := New(makeItems(10, 5), WithSize(20, 2))
		// only the last, partial line is rendered
		l.children = []child{{index: 9, rect: Rect{Size: Size{Width: 5, Height: 2}}}}
		l.Pane().SetContentExtent(AxisY, 100)
		l.Pane().ScrollTo(AxisY, scroll)
		return l.calculateDimensions()
	}

	g := setup(18)
	require.Equal(t, 1, g.PerPage)
	assert.Equal(t, 4, g.PerLine)
	assert.Equal(t, 4, g.PerLineByCalc)
	// the extent is computed from the counted line size
	assert.Equal(t, 20.0, g.Extent)

	g = setup(0)
	assert.Equal(t, 1, g.PerLine)
}

func TestElementsOffset(t *testing.T) {
	t.Parallel()

	l := New(makeItems(10, 20), WithSize(20, 10))
	l.SetPosition(0, 5)
	assert.Zero(t, l.elementsOffset())

	l.SetScrollTarget(NewPane(20, 10))
	assert.Equal(t, 5.0, l.elementsOffset())

	h := New(makeItems(10, 20), WithSize(20, 10), WithHorizontal(), WithScrollTarget(NewPane(20, 10)))
	h.SetPosition(3, 5)
	assert.Equal(t, 3.0, h.elementsOffset())
}
