package list

import (
	"log/slog"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// DefaultScrollAnimation is how long a programmatic scroll takes unless
// configured otherwise.
const DefaultScrollAnimation = 1500 * time.Millisecond

type animState int

const (
	animIdle animState = iota
	animRunning
)

// scrollAnimMsg advances the scroll animation of list id. Messages whose
// generation is not the running one belong to a cancelled animation.
type scrollAnimMsg struct {
	id  int64
	gen int
}

// animator tweens the scroll position of the target from one value to
// another. It is advanced by scrollAnimMsg ticks; only one animation runs at a
// time and starting a new one supersedes the old.
type animator struct {
	state     animState
	gen       int
	from, to  float64
	startedAt time.Time
	duration  time.Duration
}

// easeOutQuad decelerates towards the end of the animation.
func easeOutQuad(k float64) float64 {
	return k * (2 - k)
}

func (a *animator) start(from, to float64, now time.Time, d time.Duration) int {
	a.gen++
	a.state = animRunning
	a.from, a.to = from, to
	a.startedAt = now
	a.duration = d
	return a.gen
}

// cancel stops the running animation. Ticks already scheduled for it are
// ignored when they arrive.
func (a *animator) cancel() {
	if a.state != animRunning {
		return
	}
	a.state = animIdle
	a.gen++
}

func (a *animator) running() bool {
	return a.state == animRunning
}

// value returns the tweened position at now and whether the animation has
// reached its target.
func (a *animator) value(now time.Time) (float64, bool) {
	if a.duration <= 0 {
		return a.to, true
	}
	k := float64(now.Sub(a.startedAt)) / float64(a.duration)
	if k >= 1 {
		return a.to, true
	}
	k = max(0, k)
	v := a.from + (a.to-a.from)*easeOutQuad(k)
	return v, v == a.to
}

func (l *List[T]) animTick(gen int) tea.Cmd {
	id := l.id
	return tea.Tick(l.frameInterval, func(time.Time) tea.Msg {
		return scrollAnimMsg{id: id, gen: gen}
	})
}

func (l *List[T]) handleScrollAnim(msg scrollAnimMsg) tea.Cmd {
	if msg.gen != l.anim.gen || !l.anim.running() {
		return nil
	}
	v, done := l.anim.value(l.now())
	if math.IsNaN(v) {
		l.anim.cancel()
		return nil
	}
	cmds := []tea.Cmd{
		l.target.ScrollTo(l.axes.scroll, v),
		l.Refresh(false),
	}
	if done {
		l.anim.state = animIdle
		slog.Debug("Scroll animation finished", "list", l.id, "offset", v)
	} else {
		cmds = append(cmds, l.animTick(msg.gen))
	}
	return tea.Batch(cmds...)
}

// ScrollToItem scrolls the target so that item is at the start of the view.
// Items that are not in the collection are ignored.
func (l *List[T]) ScrollToItem(item T) tea.Cmd {
	index := -1
	for i, it := range l.items {
		if it == item {
			index = i
			break
		}
	}
	return l.ScrollToIndex(index)
}

// ScrollToIndex scrolls the target so that the item at index is at the start
// of the view. Out of range indexes are ignored.
func (l *List[T]) ScrollToIndex(index int) tea.Cmd {
	if index < 0 || index >= len(l.items) {
		return nil
	}
	g := l.calculateDimensions()
	offset := scrollOffsetFor(g, l.axes, index, l.buffer) + l.elementsOffset()
	return l.ScrollToPosition(offset)
}

// ScrollToPosition scrolls the target to offset along the scroll axis,
// animating unless the scroll animation duration is zero. Any animation in
// flight is cancelled first.
func (l *List[T]) ScrollToPosition(offset float64) tea.Cmd {
	if l.anim.running() {
		slog.Debug("Scroll animation cancelled", "list", l.id)
	}
	l.anim.cancel()
	if math.IsNaN(offset) {
		return nil
	}
	if l.animation <= 0 {
		return l.target.ScrollTo(l.axes.scroll, offset)
	}
	from := l.target.ScrollOffset(l.axes.scroll)
	gen := l.anim.start(from, offset, l.now(), l.animation)
	slog.Debug("Scroll animation started", "list", l.id, "from", from, "to", offset, "duration", l.animation)
	return l.handleScrollAnim(scrollAnimMsg{id: l.id, gen: gen})
}

// Animating reports whether a scroll animation is in flight.
func (l *List[T]) Animating() bool {
	return l.anim.running()
}
