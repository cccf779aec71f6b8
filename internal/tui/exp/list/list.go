package list

import (
	"log/slog"
	"math"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
)

const (
	ItemNotFound = -1
	// ScrollStep is how many cells a mouse wheel notch scrolls.
	ScrollStep = 2
	// DefaultFrameInterval is the delay between two animation frames.
	DefaultFrameInterval = time.Second / 60
	// maxStabilizationPasses bounds the stabilization loop for lists whose
	// measurements never agree with the previous pass.
	maxStabilizationPasses = 64
)

// lastID hands out list identities so frame and animation messages don't
// cross-talk between lists.
var lastID atomic.Int64

// frameMsg runs one windowing pass for list id.
type frameMsg struct {
	id int64
}

type confOptions struct {
	width, height int
	orientation   Orientation
	// zero means measure from the first rendered child
	childWidth, childHeight         float64
	buffer                          int
	animation                       time.Duration
	scrollbarWidth, scrollbarHeight float64
	target                          ScrollTarget
	frameInterval                   time.Duration
	surface                         Surface
	keyMap                          *KeyMap
	enableMouse                     bool
	resize                          bool
}

type ListOption func(*confOptions)

// WithSize sets the size of the list.
func WithSize(width, height int) ListOption {
	return func(l *confOptions) {
		l.width = width
		l.height = height
	}
}

// WithOrientation sets the scroll direction.
func WithOrientation(o Orientation) ListOption {
	return func(l *confOptions) {
		l.orientation = o
	}
}

// WithHorizontal makes the list scroll horizontally.
func WithHorizontal() ListOption {
	return WithOrientation(Horizontal)
}

// WithChildSize sets an explicit item size, disabling measurement.
func WithChildSize(width, height int) ListOption {
	return func(l *confOptions) {
		l.childWidth = float64(max(0, width))
		l.childHeight = float64(max(0, height))
	}
}

// WithChildWidth sets an explicit item width; the height is still measured.
func WithChildWidth(width int) ListOption {
	return func(l *confOptions) {
		l.childWidth = float64(max(0, width))
	}
}

// WithChildHeight sets an explicit item height; the width is still measured.
func WithChildHeight(height int) ListOption {
	return func(l *confOptions) {
		l.childHeight = float64(max(0, height))
	}
}

// WithBuffer keeps n extra items rendered on each side of the window.
func WithBuffer(n int) ListOption {
	return func(l *confOptions) {
		l.buffer = max(0, n)
	}
}

// WithScrollAnimation sets the duration of programmatic scrolls. Zero jumps.
func WithScrollAnimation(d time.Duration) ListOption {
	return func(l *confOptions) {
		l.animation = max(0, d)
	}
}

// WithScrollbar deducts scrollbar space from the view size.
func WithScrollbar(width, height int) ListOption {
	return func(l *confOptions) {
		l.scrollbarWidth = float64(max(0, width))
		l.scrollbarHeight = float64(max(0, height))
	}
}

// WithScrollTarget delegates scroll tracking to a Pane or Screen. Nil keeps
// the list's own pane.
func WithScrollTarget(t ScrollTarget) ListOption {
	return func(l *confOptions) {
		l.target = t
	}
}

// WithFrameInterval sets the delay between animation frames.
func WithFrameInterval(d time.Duration) ListOption {
	return func(l *confOptions) {
		l.frameInterval = max(0, d)
	}
}

// WithSurface sends the extent and translate writes to s as well.
func WithSurface(s Surface) ListOption {
	return func(l *confOptions) {
		l.surface = s
	}
}

func WithKeyMap(keyMap KeyMap) ListOption {
	return func(l *confOptions) {
		l.keyMap = &keyMap
	}
}

func WithEnableMouse() ListOption {
	return func(l *confOptions) {
		l.enableMouse = true
	}
}

// WithResizeByList leaves the view at its composed size instead of padding
// it to the list size.
func WithResizeByList() ListOption {
	return func(l *confOptions) {
		l.resize = true
	}
}

// List renders a window of a large collection. Only the items inside the
// window are rendered; the window follows the scroll position of the list's
// scroll target.
type List[T comparable] struct {
	*confOptions

	id       int64
	axes     axisSet
	items    []T
	renderer Renderer[T]
	now      func() time.Time

	self        *Pane
	target      ScrollTarget
	unsubScroll func()
	unsubResize func()
	// position of the list inside a delegated scroll target
	position Point

	canvas  *canvas
	surface Surface
	cache   renderCache

	children      []child
	viewportItems []T

	start, end                 int
	previousStart, previousEnd int
	hasPrevious                bool

	stabilizing bool
	passes      int

	framePending bool
	forcePending bool
	rehome       *int

	anim animator
}

// New returns a list over items. The list tracks its own pane unless a scroll
// target is given.
func New[T comparable](items []T, opts ...ListOption) *List[T] {
	l := &List[T]{
		confOptions: &confOptions{
			animation:     DefaultScrollAnimation,
			frameInterval: DefaultFrameInterval,
		},
		id:          lastID.Add(1),
		items:       items,
		now:         time.Now,
		canvas:      &canvas{},
		cache:       newRenderCache(),
		stabilizing: true,
	}
	for _, opt := range opts {
		opt(l.confOptions)
	}
	l.axes = axesFor(l.orientation)
	if l.keyMap == nil {
		keyMap := KeyMapFor(l.orientation)
		l.keyMap = &keyMap
	}
	l.self = NewPane(l.width, l.height)
	l.surface = l.confOptions.surface
	if l.surface == nil {
		l.surface = l.canvas
	}
	l.attach(l.confOptions.target)
	return l
}

// ID identifies the list in the messages it sends.
func (l *List[T]) ID() int64 {
	return l.id
}

// SetRenderer sets how items are turned into their views. Without one, items
// implementing View or String are asked directly and anything else is
// printed with fmt.
func (l *List[T]) SetRenderer(r Renderer[T]) {
	l.renderer = r
	l.cache = newRenderCache()
}

// Init implements tea.Model.
func (l *List[T]) Init() tea.Cmd {
	return l.Refresh(false)
}

// Update implements tea.Model.
func (l *List[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != l.id {
			return l, nil
		}
		return l, l.handleFrame()
	case scrollAnimMsg:
		if msg.id != l.id {
			return l, nil
		}
		return l, l.handleScrollAnim(msg)
	case tea.MouseWheelMsg:
		if l.enableMouse && l.target == ScrollTarget(l.self) {
			return l, l.handleMouseWheel(l.self, msg)
		}
		return l, nil
	case tea.KeyPressMsg:
		if l.target != ScrollTarget(l.self) {
			return l, nil
		}
		return l, l.handleKey(l.self, msg)
	}
	return l, nil
}

// HandleTargetInput scrolls the list's target, whatever it is, for a key
// press or a mouse wheel message. Owners of an ancestor target forward their
// input through it.
func (l *List[T]) HandleTargetInput(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return l.handleKey(l.target, msg)
	case tea.MouseWheelMsg:
		return l.handleMouseWheel(l.target, msg)
	}
	return nil
}

func (l *List[T]) handleMouseWheel(t ScrollTarget, msg tea.MouseWheelMsg) tea.Cmd {
	switch msg.Button {
	case tea.MouseWheelDown, tea.MouseWheelRight:
		return scrollBy(t, l.axes.scroll, ScrollStep)
	case tea.MouseWheelUp, tea.MouseWheelLeft:
		return scrollBy(t, l.axes.scroll, -ScrollStep)
	}
	return nil
}

func (l *List[T]) handleKey(t ScrollTarget, msg tea.KeyPressMsg) tea.Cmd {
	a := l.axes.scroll
	page := l.viewSize().Along(a)
	item := l.childSize(l.viewSize()).Along(a)
	switch {
	case key.Matches(msg, l.keyMap.Down):
		return scrollBy(t, a, 1)
	case key.Matches(msg, l.keyMap.Up):
		return scrollBy(t, a, -1)
	case key.Matches(msg, l.keyMap.DownOneItem):
		return scrollBy(t, a, item)
	case key.Matches(msg, l.keyMap.UpOneItem):
		return scrollBy(t, a, -item)
	case key.Matches(msg, l.keyMap.HalfPageDown):
		return scrollBy(t, a, page/2)
	case key.Matches(msg, l.keyMap.HalfPageUp):
		return scrollBy(t, a, -page/2)
	case key.Matches(msg, l.keyMap.PageDown):
		return scrollBy(t, a, page)
	case key.Matches(msg, l.keyMap.PageUp):
		return scrollBy(t, a, -page)
	case key.Matches(msg, l.keyMap.End):
		return t.ScrollTo(a, maxScrollOffset(t, a))
	case key.Matches(msg, l.keyMap.Home):
		return t.ScrollTo(a, 0)
	}
	return nil
}

func scrollBy(t ScrollTarget, a Axis, delta float64) tea.Cmd {
	return t.ScrollTo(a, t.ScrollOffset(a)+delta)
}

func maxScrollOffset(t ScrollTarget, a Axis) float64 {
	if m, ok := t.(interface{ MaxScrollOffset(Axis) float64 }); ok {
		return m.MaxScrollOffset(a)
	}
	return math.MaxFloat64
}

// Refresh schedules a windowing pass on the next frame. Requests made while a
// frame is already pending are folded into it. With force the new window is
// announced even if it did not change.
func (l *List[T]) Refresh(force bool) tea.Cmd {
	return l.requestFrame(force)
}

func (l *List[T]) requestFrame(force bool) tea.Cmd {
	if force {
		l.forcePending = true
	}
	if l.framePending {
		return nil
	}
	l.framePending = true
	id := l.id
	return tea.Tick(l.frameInterval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

// FramePending reports whether a pass is scheduled.
func (l *List[T]) FramePending() bool {
	return l.framePending
}

func (l *List[T]) handleFrame() tea.Cmd {
	l.framePending = false
	force := l.forcePending
	l.forcePending = false

	var cmds []tea.Cmd
	if l.rehome != nil {
		delta := *l.rehome
		l.rehome = nil
		g := l.calculateDimensions()
		shift := float64(delta) / float64(g.PerLine) * g.Child.Along(l.axes.scroll)
		cmds = append(cmds, l.target.ScrollTo(l.axes.scroll, l.rawScroll()+shift))
	}
	cmds = append(cmds, l.calculateItems(force))
	return tea.Batch(cmds...)
}

// calculateItems is one windowing pass: measure, compute the window, write
// the offsets, render the window and notify.
func (l *List[T]) calculateItems(force bool) tea.Cmd {
	g := l.calculateDimensions()
	scroll := clampScroll(l.rawScroll(), g.Extent, l.elementsOffset())
	w := computeWindow(g, l.axes, scroll, l.buffer)

	l.writeTranslate(w.translate)

	if !l.hasPrevious || w.start != l.previousStart || w.end != l.previousEnd || force {
		l.start, l.end = w.start, w.end
		l.renderWindow()
		cmds := l.notify(w.start, w.end)
		if l.stabilizing {
			l.passes++
			if l.passes >= maxStabilizationPasses {
				slog.Warn("Virtual list did not stabilize, settling", "list", l.id, "passes", l.passes, "start", w.start, "end", w.end)
				l.settle()
			}
			cmds = append(cmds, l.requestFrame(false))
		}
		return tea.Batch(cmds...)
	}

	if l.stabilizing {
		l.settle()
		// one more pass now that a representative child is rendered
		return l.requestFrame(false)
	}
	return nil
}

func (l *List[T]) settle() {
	l.stabilizing = false
	slog.Debug("Virtual list stabilized", "list", l.id, "passes", l.passes, "start", l.start, "end", l.end)
}

// Stabilizing reports whether the list is still converging after a
// collection change.
func (l *List[T]) Stabilizing() bool {
	return l.stabilizing
}

// ItemsOption changes how SetItems treats the new collection.
type ItemsOption func(*itemsOptions)

type itemsOptions struct {
	preserve bool
	delta    int
}

// PreserveIndex keeps the current items in view when delta items were
// inserted (or, negative, removed) in front of them. The window is shifted by
// delta and the scroll position follows once the shifted window is laid out.
func PreserveIndex(delta int) ItemsOption {
	return func(o *itemsOptions) {
		o.preserve = true
		o.delta = delta
	}
}

// SetItems replaces the collection. A new collection restarts stabilization.
func (l *List[T]) SetItems(items []T, opts ...ItemsOption) tea.Cmd {
	var o itemsOptions
	for _, opt := range opts {
		opt(&o)
	}

	prev := l.items
	l.items = items
	if len(prev) == 0 || !sameCollection(prev, items) {
		l.stabilizing = true
		l.passes = 0
	}
	l.cache = newRenderCache()

	if !o.preserve {
		l.hasPrevious = false
		return l.Refresh(false)
	}

	n := len(items)
	l.previousStart = min(max(0, l.previousStart+o.delta), n)
	l.previousEnd = min(max(l.previousStart, l.previousEnd+o.delta), n)
	l.start, l.end = l.previousStart, l.previousEnd
	l.renderWindow()
	delta := o.delta
	l.rehome = &delta
	return l.Refresh(false)
}

func sameCollection[T any](a, b []T) bool {
	return len(a) == len(b) && len(a) > 0 && &a[0] == &b[0]
}

// Items returns the whole collection.
func (l *List[T]) Items() []T {
	return l.items
}

// ViewportItems returns the items of the current window.
func (l *List[T]) ViewportItems() []T {
	return l.viewportItems
}

// Window returns the current window.
func (l *List[T]) Window() ChangeEvent {
	return ChangeEvent{Start: l.start, End: l.end}
}

// Previous returns the window the last notification was diffed against.
func (l *List[T]) Previous() (ChangeEvent, bool) {
	return ChangeEvent{Start: l.previousStart, End: l.previousEnd}, l.hasPrevious
}

// Geometry computes a fresh geometry snapshot.
func (l *List[T]) Geometry() Geometry {
	return l.calculateDimensions()
}

// Translate is the leading offset last written for the content block.
func (l *List[T]) Translate() float64 {
	return l.canvas.translate
}

// Extent is the scrollable extent last written for the placeholder.
func (l *List[T]) Extent() float64 {
	return l.canvas.extent
}

// ScrollTarget returns the target the list follows.
func (l *List[T]) ScrollTarget() ScrollTarget {
	return l.target
}

// Pane is the list's own scroll container.
func (l *List[T]) Pane() *Pane {
	return l.self
}

// SetScrollTarget switches the scroll target. Nil selects the list's own
// pane. Listeners of the previous target are removed before the new ones are
// attached.
func (l *List[T]) SetScrollTarget(t ScrollTarget) tea.Cmd {
	if t == nil {
		t = l.self
	}
	if t == l.target {
		return nil
	}
	l.attach(t)
	l.cache = newRenderCache()
	return l.Refresh(false)
}

func (l *List[T]) attach(t ScrollTarget) {
	l.detach()
	if t == nil {
		t = l.self
	}
	l.target = t
	l.unsubScroll = t.Subscribe(EventScroll, l.onTargetEvent)
	if _, ok := t.(*Screen); ok {
		l.unsubResize = t.Subscribe(EventResize, l.onTargetEvent)
	}
	slog.Debug("Virtual list attached to scroll target", "list", l.id, "target", targetKind(t))
}

func (l *List[T]) detach() {
	if t, ok := l.target.(contentSizer); ok {
		t.releaseExtent(l.id)
	}
	if l.unsubScroll != nil {
		l.unsubScroll()
		l.unsubScroll = nil
	}
	if l.unsubResize != nil {
		l.unsubResize()
		l.unsubResize = nil
	}
}

func (l *List[T]) onTargetEvent() tea.Cmd {
	return l.requestFrame(false)
}

func targetKind(t ScrollTarget) string {
	switch t.(type) {
	case *Screen:
		return "screen"
	case *Pane:
		return "pane"
	}
	return "custom"
}

// SetPosition records where the list sits inside a delegated scroll target.
func (l *List[T]) SetPosition(x, y int) tea.Cmd {
	l.position = Point{X: float64(x), Y: float64(y)}
	l.cache = newRenderCache()
	return l.Refresh(false)
}

// SetSize implements layout.Sizeable.
func (l *List[T]) SetSize(width int, height int) tea.Cmd {
	if l.width == width && l.height == height {
		return nil
	}
	l.width, l.height = width, height
	l.self.SetSize(width, height)
	return l.Refresh(false)
}

func (l *List[T]) GetSize() (int, int) {
	return l.width, l.height
}

// SetBuffer changes the buffer amount.
func (l *List[T]) SetBuffer(n int) tea.Cmd {
	l.buffer = max(0, n)
	return l.Refresh(true)
}

// SetScrollAnimation changes the duration of programmatic scrolls.
func (l *List[T]) SetScrollAnimation(d time.Duration) {
	l.animation = max(0, d)
}

// Close removes the list's listeners and stops any scroll animation. It is
// safe to call more than once.
func (l *List[T]) Close() {
	l.detach()
	l.anim.cancel()
	l.framePending = false
}
