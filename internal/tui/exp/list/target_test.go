package list

import (
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter(n *int) func() tea.Cmd {
	return func() tea.Cmd {
		*n++
		return nil
	}
}

func TestPane(t *testing.T) {
	t.Parallel()

	t.Run("scroll is clamped to the content", func(t *testing.T) {
		t.Parallel()
		p := NewPane(20, 10)
		p.SetContentExtent(AxisY, 100)

		p.ScrollTo(AxisY, 50)
		assert.Equal(t, 50.0, p.ScrollOffset(AxisY))

		p.ScrollTo(AxisY, 500)
		assert.Equal(t, 90.0, p.ScrollOffset(AxisY))

		p.ScrollBy(AxisY, -1000)
		assert.Zero(t, p.ScrollOffset(AxisY))
		assert.Zero(t, p.ScrollOffset(AxisX))
	})

	t.Run("subscribers only hear real moves", func(t *testing.T) {
		t.Parallel()
		p := NewPane(20, 10)
		p.SetContentExtent(AxisY, 100)
		var calls int
		p.Subscribe(EventScroll, counter(&calls))

		p.ScrollTo(AxisY, 10)
		p.ScrollTo(AxisY, 10)
		p.ScrollTo(AxisY, math.NaN())
		assert.Equal(t, 1, calls)
		assert.Equal(t, 10.0, p.ScrollOffset(AxisY))
	})

	t.Run("shrinking content pulls the offset back silently", func(t *testing.T) {
		t.Parallel()
		p := NewPane(20, 10)
		p.SetContentExtent(AxisY, 100)
		p.ScrollTo(AxisY, 80)
		var calls int
		p.Subscribe(EventScroll, counter(&calls))

		p.SetContentExtent(AxisY, 30)
		assert.Equal(t, 20.0, p.ScrollOffset(AxisY))
		assert.Zero(t, calls)

		p.SetContentExtent(AxisY, math.NaN())
		assert.Zero(t, p.ContentExtent(AxisY))
		assert.Zero(t, p.ScrollOffset(AxisY))
	})

	t.Run("unsubscribe is idempotent", func(t *testing.T) {
		t.Parallel()
		p := NewPane(20, 10)
		var a, b int
		unsubA := p.Subscribe(EventScroll, counter(&a))
		p.Subscribe(EventScroll, counter(&b))
		require.Equal(t, 2, p.Subscribers(EventScroll))

		unsubA()
		unsubA()
		assert.Equal(t, 1, p.Subscribers(EventScroll))

		p.SetContentExtent(AxisY, 100)
		p.ScrollTo(AxisY, 5)
		assert.Zero(t, a)
		assert.Equal(t, 1, b)
	})

	t.Run("handlers may unsubscribe while notified", func(t *testing.T) {
		t.Parallel()
		p := NewPane(20, 10)
		p.SetContentExtent(AxisY, 100)
		var calls int
		var unsub func()
		unsub = p.Subscribe(EventScroll, func() tea.Cmd {
			calls++
			unsub()
			return nil
		})
		p.Subscribe(EventScroll, counter(&calls))

		p.ScrollTo(AxisY, 5)
		assert.Equal(t, 2, calls)
		assert.Equal(t, 1, p.Subscribers(EventScroll))
	})
}

func TestScreen(t *testing.T) {
	t.Parallel()

	s := NewScreen(80, 24)
	var resizes, scrolls int
	s.Subscribe(EventResize, counter(&resizes))
	s.Subscribe(EventScroll, counter(&scrolls))

	s.Resize(tea.WindowSizeMsg{Width: 80, Height: 24})
	assert.Zero(t, resizes)

	s.Resize(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 1, resizes)
	assert.Equal(t, Size{Width: 100, Height: 30}, s.ClientSize())
	assert.Zero(t, scrolls)
}
