package list

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func press(code rune, mod tea.KeyMod) tea.KeyPressMsg {
	return tea.KeyPressMsg(tea.Key{Code: code, Mod: mod})
}

func TestKeyNavigation(t *testing.T) {
	t.Parallel()

	t.Run("keys scroll the list's own pane", func(t *testing.T) {
		t.Parallel()
		l, d := newTestList(t, makeItems(100, 20))
		pane := l.Pane()

		_, cmd := l.Update(press(tea.KeyDown, 0))
		d.run(cmd)
		assert.Equal(t, 1.0, pane.ScrollOffset(AxisY))
		assert.Equal(t, ChangeEvent{Start: 1, End: 12}, l.Window())

		_, cmd = l.Update(press(tea.KeyPgDown, 0))
		d.run(cmd)
		assert.Equal(t, 11.0, pane.ScrollOffset(AxisY))

		_, cmd = l.Update(press(tea.KeyUp, 0))
		d.run(cmd)
		assert.Equal(t, 10.0, pane.ScrollOffset(AxisY))

		_, cmd = l.Update(press(tea.KeyDown, tea.ModShift))
		d.run(cmd)
		assert.Equal(t, 11.0, pane.ScrollOffset(AxisY))

		_, cmd = l.Update(press('d', 0))
		d.run(cmd)
		assert.Equal(t, 16.0, pane.ScrollOffset(AxisY))

		_, cmd = l.Update(press(tea.KeyEnd, 0))
		d.run(cmd)
		assert.Equal(t, 90.0, pane.ScrollOffset(AxisY))
		assert.Equal(t, ChangeEvent{Start: 89, End: 100}, l.Window())

		_, cmd = l.Update(press(tea.KeyHome, 0))
		d.run(cmd)
		assert.Zero(t, pane.ScrollOffset(AxisY))
		assert.Equal(t, ChangeEvent{Start: 0, End: 11}, l.Window())
	})

	t.Run("keys are ignored for delegated targets", func(t *testing.T) {
		t.Parallel()
		ancestor := NewPane(20, 10)
		l, _ := newTestList(t, makeItems(100, 20), WithScrollTarget(ancestor))

		_, cmd := l.Update(press(tea.KeyDown, 0))
		assert.Nil(t, cmd)
		assert.Zero(t, ancestor.ScrollOffset(AxisY))
	})

	t.Run("forwarded input scrolls the delegated target", func(t *testing.T) {
		t.Parallel()
		ancestor := NewPane(20, 10)
		l, d := newTestList(t, makeItems(100, 20), WithScrollTarget(ancestor))

		d.run(l.HandleTargetInput(press(tea.KeyDown, 0)))
		assert.Equal(t, 1.0, ancestor.ScrollOffset(AxisY))
		assert.Equal(t, ChangeEvent{Start: 1, End: 12}, l.Window())

		d.run(l.HandleTargetInput(tea.MouseWheelMsg{Button: tea.MouseWheelDown}))
		assert.Equal(t, 1.0+ScrollStep, ancestor.ScrollOffset(AxisY))

		d.run(l.HandleTargetInput(press(tea.KeyEnd, 0)))
		assert.Equal(t, 90.0, ancestor.ScrollOffset(AxisY))
		assert.Equal(t, ChangeEvent{Start: 89, End: 100}, l.Window())

		assert.Nil(t, l.HandleTargetInput(tea.FocusMsg{}))
	})
}

func TestKeyMapFor(t *testing.T) {
	t.Parallel()

	t.Run("help follows the orientation", func(t *testing.T) {
		t.Parallel()
		vertical := KeyMapFor(Vertical)
		assert.Equal(t, "↓/j", vertical.Down.Help().Key)
		assert.Equal(t, "↑/k", vertical.Up.Help().Key)
		assert.Equal(t, vertical, DefaultKeyMap())

		horizontal := KeyMapFor(Horizontal)
		assert.Equal(t, "→/l", horizontal.Down.Help().Key)
		assert.Equal(t, "←/h", horizontal.Up.Help().Key)
		assert.Equal(t, "shift+→", horizontal.DownOneItem.Help().Key)
	})

	t.Run("horizontal lists scroll with left and right", func(t *testing.T) {
		t.Parallel()
		items := make([]string, 50)
		for i := range items {
			items[i] = fmt.Sprintf("%-4d", i)
		}
		l, d := newTestList(t, items, WithSize(20, 1), WithHorizontal())
		pane := l.Pane()

		_, cmd := l.Update(press('l', 0))
		d.run(cmd)
		assert.Equal(t, 1.0, pane.ScrollOffset(AxisX))

		_, cmd = l.Update(press(tea.KeyRight, 0))
		d.run(cmd)
		assert.Equal(t, 2.0, pane.ScrollOffset(AxisX))

		_, cmd = l.Update(press('j', 0))
		assert.Nil(t, cmd)
		_, cmd = l.Update(press(tea.KeyDown, 0))
		assert.Nil(t, cmd)
		assert.Equal(t, 2.0, pane.ScrollOffset(AxisX))

		_, cmd = l.Update(press(tea.KeyLeft, 0))
		d.run(cmd)
		assert.Equal(t, 1.0, pane.ScrollOffset(AxisX))
	})

	t.Run("vertical lists ignore left and right", func(t *testing.T) {
		t.Parallel()
		l, _ := newTestList(t, makeItems(100, 20))

		_, cmd := l.Update(press('l', 0))
		assert.Nil(t, cmd)
		_, cmd = l.Update(press(tea.KeyRight, 0))
		assert.Nil(t, cmd)
		assert.Zero(t, l.Pane().ScrollOffset(AxisY))
	})
}

func TestMouseWheel(t *testing.T) {
	t.Parallel()

	t.Run("enabled", func(t *testing.T) {
		t.Parallel()
		l, d := newTestList(t, makeItems(100, 20), WithEnableMouse())

		_, cmd := l.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		d.run(cmd)
		assert.Equal(t, float64(ScrollStep), l.Pane().ScrollOffset(AxisY))

		_, cmd = l.Update(tea.MouseWheelMsg{Button: tea.MouseWheelUp})
		d.run(cmd)
		assert.Zero(t, l.Pane().ScrollOffset(AxisY))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		l, _ := newTestList(t, makeItems(100, 20))

		_, cmd := l.Update(tea.MouseWheelMsg{Button: tea.MouseWheelDown})
		assert.Nil(t, cmd)
		assert.Zero(t, l.Pane().ScrollOffset(AxisY))
	})
}
