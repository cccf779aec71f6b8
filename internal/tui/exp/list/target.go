package list

import (
	"math"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// Event is the kind of change a ScrollTarget reports to its subscribers.
type Event int

const (
	EventScroll Event = iota
	EventResize
)

// ScrollTarget is the container whose scroll position drives the window
// computation. The list itself (self), a caller-owned ancestor Pane, or the
// terminal Screen can act as the target.
type ScrollTarget interface {
	// ClientSize is the visible size of the container.
	ClientSize() Size
	// ScrollOffset is the current scroll position along the axis.
	ScrollOffset(Axis) float64
	// ScrollTo moves the scroll position and returns the commands produced
	// by the scroll subscribers.
	ScrollTo(Axis, float64) tea.Cmd
	// Subscribe registers fn for the event and returns a function that
	// removes it. The returned function is safe to call more than once.
	Subscribe(Event, func() tea.Cmd) func()
}

type subscriber struct {
	id    int
	event Event
	fn    func() tea.Cmd
}

type subscribers struct {
	nextID  int
	entries []subscriber
}

func (s *subscribers) add(ev Event, fn func() tea.Cmd) func() {
	id := s.nextID
	s.nextID++
	s.entries = append(s.entries, subscriber{id: id, event: ev, fn: fn})
	return func() { s.remove(id) }
}

func (s *subscribers) remove(id int) {
	for i, e := range s.entries {
		if e.id == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return
		}
	}
}

func (s *subscribers) emit(ev Event) tea.Cmd {
	var cmds []tea.Cmd
	// handlers may unsubscribe while we iterate
	entries := append([]subscriber(nil), s.entries...)
	for _, e := range entries {
		if e.event == ev {
			cmds = append(cmds, e.fn())
		}
	}
	return tea.Batch(cmds...)
}

func (s *subscribers) count(ev Event) int {
	n := 0
	for _, e := range s.entries {
		if e.event == ev {
			n++
		}
	}
	return n
}

// Pane is a clipped scroll container. Every list owns one for itself; callers
// create their own to let an ancestor region drive one or more lists. Each
// list placed in a pane reserves the extent up to its far edge, and the
// content extent is the furthest of those edges.
type Pane struct {
	size     Size
	offset   [2]float64
	extent   [2]float64
	reserved [2]map[int64]float64
	subs     subscribers
}

// NewPane returns a pane with the given client size.
func NewPane(width, height int) *Pane {
	return &Pane{size: Size{Width: float64(width), Height: float64(height)}}
}

// ClientSize implements ScrollTarget.
func (p *Pane) ClientSize() Size {
	return p.size
}

// SetSize changes the client size. It does not notify subscribers; whoever
// resizes the pane is expected to refresh the lists that depend on it.
func (p *Pane) SetSize(width, height int) {
	p.size = Size{Width: float64(width), Height: float64(height)}
	p.clamp(AxisX)
	p.clamp(AxisY)
}

// ScrollOffset implements ScrollTarget.
func (p *Pane) ScrollOffset(a Axis) float64 {
	return p.offset[a]
}

// MaxScrollOffset is the largest offset ScrollTo accepts along the axis.
func (p *Pane) MaxScrollOffset(a Axis) float64 {
	return max(0, p.extent[a]-p.size.Along(a))
}

// ScrollTo implements ScrollTarget. The offset is clamped into the scrollable
// range; subscribers are only notified when the offset actually moves.
func (p *Pane) ScrollTo(a Axis, v float64) tea.Cmd {
	if math.IsNaN(v) {
		return nil
	}
	v = min(max(0, v), p.MaxScrollOffset(a))
	if v == p.offset[a] {
		return nil
	}
	p.offset[a] = v
	return p.subs.emit(EventScroll)
}

// ScrollBy moves the scroll position by delta cells.
func (p *Pane) ScrollBy(a Axis, delta float64) tea.Cmd {
	return p.ScrollTo(a, p.offset[a]+delta)
}

// ContentExtent is the scrollable size of the pane's content along the axis.
func (p *Pane) ContentExtent(a Axis) float64 {
	return p.extent[a]
}

// SetContentExtent sets the scrollable size of the content along the axis.
// A shrinking extent pulls the offset back into range without notifying
// subscribers. The next list reservation along the axis replaces it.
func (p *Pane) SetContentExtent(a Axis, v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	p.extent[a] = v
	p.clamp(a)
}

// reserveExtent records how far along the axis the list owner reaches and
// sets the content extent to the furthest reach of all lists in the pane.
func (p *Pane) reserveExtent(owner int64, a Axis, v float64) {
	if p.reserved[a] == nil {
		p.reserved[a] = make(map[int64]float64)
	}
	p.reserved[a][owner] = v
	p.SetContentExtent(a, p.reach(a))
}

// releaseExtent drops the reservations of owner.
func (p *Pane) releaseExtent(owner int64) {
	for i := range p.reserved {
		if _, ok := p.reserved[i][owner]; !ok {
			continue
		}
		delete(p.reserved[i], owner)
		p.SetContentExtent(Axis(i), p.reach(Axis(i)))
	}
}

func (p *Pane) reach(a Axis) float64 {
	var v float64
	for _, r := range p.reserved[a] {
		v = max(v, r)
	}
	return v
}

func (p *Pane) clamp(a Axis) {
	p.offset[a] = min(max(0, p.offset[a]), p.MaxScrollOffset(a))
}

// Subscribe implements ScrollTarget.
func (p *Pane) Subscribe(ev Event, fn func() tea.Cmd) func() {
	return p.subs.add(ev, fn)
}

// Subscribers reports how many handlers are registered for the event.
func (p *Pane) Subscribers(ev Event) int {
	return p.subs.count(ev)
}

// Screen is the terminal viewport. It scrolls like a Pane and additionally
// reports terminal resizes to its subscribers.
type Screen struct {
	Pane
}

// NewScreen returns a screen target with the given terminal size.
func NewScreen(width, height int) *Screen {
	return &Screen{Pane: Pane{size: Size{Width: float64(width), Height: float64(height)}}}
}

// Resize applies a terminal size change and notifies resize subscribers.
func (s *Screen) Resize(msg tea.WindowSizeMsg) tea.Cmd {
	if float64(msg.Width) == s.size.Width && float64(msg.Height) == s.size.Height {
		return nil
	}
	s.SetSize(msg.Width, msg.Height)
	return s.subs.emit(EventResize)
}

// contentSizer is implemented by targets that grow with the lists placed in
// them.
type contentSizer interface {
	reserveExtent(owner int64, a Axis, v float64)
	releaseExtent(owner int64)
}
