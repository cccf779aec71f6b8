package tui

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/charmbracelet/vscroll/internal/source"
	"github.com/charmbracelet/vscroll/internal/tui/components/logo"
	"github.com/charmbracelet/vscroll/internal/tui/exp/list"
	"github.com/charmbracelet/vscroll/internal/tui/styles"
	"github.com/charmbracelet/vscroll/internal/tui/util"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

const (
	headerHeight = 1
	defaultCard  = 24

	// maxFollowBatch bounds how many followed lines are prepended at once.
	maxFollowBatch = 4096
)

// Options describe what the demo scrolls through.
type Options struct {
	// Title is shown in the header, e.g. "10,000 generated items".
	Title string
	Items []source.Item
	// Follow, when set, delivers items that are prepended as they arrive.
	Follow <-chan source.Item
	// Seed drives the random jumps.
	Seed uint64
}

// ConfigReloadedMsg carries a configuration re-read after a file change.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// followMsg carries the followed lines that were ready, oldest first.
type followMsg struct {
	items  []source.Item
	closed bool
}

type appModel struct {
	cfg   *config.Config
	title string

	width, height int
	ready         bool

	list      *list.List[source.Item]
	listKeys  list.KeyMap
	pane      *list.Pane
	screen    *list.Screen
	indexSize int

	all     []source.Item
	pattern string
	follow  <-chan source.Item
	rand    *rand.Rand

	filter    textinput.Model
	filtering bool

	keyMap KeyMap
	help   help.Model
	logo   *logo.Logo

	status util.InfoMsg
}

// New returns the demo model. The scroll target, orientation and item sizes
// come from cfg.
func New(cfg *config.Config, opts Options) tea.Model {
	t := styles.CurrentTheme()

	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "fuzzy filter"

	h := help.New()
	h.Styles = t.S().Help

	orientation := list.Vertical
	if cfg.Viewport.Orientation == config.OrientationHorizontal {
		orientation = list.Horizontal
	}

	m := &appModel{
		cfg:      cfg,
		title:    opts.Title,
		listKeys: list.KeyMapFor(orientation),
		all:      opts.Items,
		follow:   opts.Follow,
		rand:     rand.New(rand.NewPCG(opts.Seed, opts.Seed>>1|1)),
		filter:   filter,
		keyMap:   DefaultKeyMap(),
		help:     h,
		logo:     logo.Standard(t.Primary),
	}

	listOpts := append(cfg.Viewport.ListOptions(), list.WithKeyMap(m.listKeys))
	switch cfg.Viewport.ScrollTarget {
	case config.ScrollTargetPane:
		m.pane = list.NewPane(0, 0)
		listOpts = append(listOpts, list.WithScrollTarget(m.pane))
	case config.ScrollTargetScreen:
		m.screen = list.NewScreen(0, 0)
		listOpts = append(listOpts, list.WithScrollTarget(m.screen))
	}
	m.list = list.New(opts.Items, listOpts...)
	m.list.SetRenderer(m.renderItem)
	m.indexSize = len(fmt.Sprint(len(opts.Items)))
	return m
}

// Init implements tea.Model. The list starts windowing on the first window
// size message.
func (m *appModel) Init() tea.Cmd {
	return waitForFollow(m.follow)
}

func waitForFollow(ch <-chan source.Item) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		item, ok := <-ch
		if !ok {
			return followMsg{closed: true}
		}
		msg := followMsg{items: []source.Item{item}}
		for len(msg.items) < maxFollowBatch {
			select {
			case item, ok := <-ch:
				if !ok {
					msg.closed = true
					return msg
				}
				msg.items = append(msg.items, item)
			default:
				return msg
			}
		}
		return msg
	}
}

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.layout()
	case tea.KeyPressMsg:
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		return m, m.handleKey(msg)
	case tea.MouseWheelMsg:
		if m.delegated() {
			if m.cfg.Viewport.Mouse {
				return m, m.list.HandleTargetInput(msg)
			}
			return m, nil
		}
		_, cmd := m.list.Update(msg)
		return m, cmd
	case followMsg:
		cmd := m.prepend(msg.items)
		if msg.closed {
			m.follow = nil
			return m, tea.Batch(cmd, util.ReportWarn("Stopped following"))
		}
		return m, tea.Batch(cmd, waitForFollow(m.follow))
	case ConfigReloadedMsg:
		return m, m.reload(msg)
	case util.InfoMsg:
		m.status = msg
		return m, nil
	case list.ChangeMsg:
		if msg.ListID == m.list.ID() {
			slog.Debug("Window changed", "start", msg.Start, "end", msg.End)
		}
		return m, nil
	}

	_, cmd := m.list.Update(msg)
	return m, cmd
}

func (m *appModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		m.list.Close()
		return tea.Quit
	case key.Matches(msg, m.keyMap.Filter):
		m.filtering = true
		m.filter.SetValue(m.pattern)
		m.filter.CursorEnd()
		return m.filter.Focus()
	case key.Matches(msg, m.keyMap.Jump):
		items := m.list.Items()
		if len(items) == 0 {
			return nil
		}
		i := m.rand.IntN(len(items))
		return tea.Batch(
			util.ReportInfo(fmt.Sprintf("Jumping to %s", items[i].Title)),
			m.list.ScrollToIndex(i),
		)
	case key.Matches(msg, m.keyMap.Copy):
		return m.copyVisible()
	case key.Matches(msg, m.keyMap.Compact):
		if err := m.cfg.SetCompactMode(!m.compact()); err != nil {
			return util.ReportError(err)
		}
		return m.layout()
	case key.Matches(msg, m.keyMap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.layout()
	}

	if m.delegated() {
		return m.list.HandleTargetInput(msg)
	}
	_, cmd := m.list.Update(msg)
	return cmd
}

func (m *appModel) updateFilter(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.Accept):
		m.filtering = false
		m.filter.Blur()
		m.pattern = strings.TrimSpace(m.filter.Value())
		return tea.Batch(m.applyItems(), m.layout())
	case key.Matches(msg, m.keyMap.Cancel):
		m.filtering = false
		m.filter.Blur()
		m.filter.Reset()
		m.pattern = ""
		return tea.Batch(m.applyItems(), m.layout())
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return cmd
}

// prepend puts the followed items in front of the collection, newest first,
// keeping the items in view where they are.
func (m *appModel) prepend(items []source.Item) tea.Cmd {
	n := len(items)
	if n == 0 {
		return nil
	}
	all := make([]source.Item, 0, n+len(m.all))
	for i := n - 1; i >= 0; i-- {
		all = append(all, items[i])
	}
	m.all = append(all, m.all...)
	m.indexSize = len(fmt.Sprint(len(m.all)))
	if m.pattern != "" {
		return m.applyItems()
	}
	return m.applyItems(list.PreserveIndex(n))
}

func (m *appModel) applyItems(opts ...list.ItemsOption) tea.Cmd {
	return m.list.SetItems(source.Filter(m.all, m.pattern), opts...)
}

func (m *appModel) copyVisible() tea.Cmd {
	items := m.list.ViewportItems()
	if len(items) == 0 {
		return util.ReportWarn("Nothing to copy")
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = item.Title
	}
	text := strings.Join(lines, "\n")
	return tea.Sequence(
		tea.SetClipboard(text),
		func() tea.Msg {
			_ = clipboard.WriteAll(text)
			return nil
		},
		util.ReportInfo(fmt.Sprintf("Copied %d items", len(items))),
	)
}

func (m *appModel) reload(msg ConfigReloadedMsg) tea.Cmd {
	if msg.Err != nil {
		return util.ReportError(fmt.Errorf("failed to reload config: %w", msg.Err))
	}
	v := msg.Config.Viewport
	m.cfg.Viewport.BufferAmount = v.BufferAmount
	m.cfg.Viewport.ScrollAnimationMS = v.ScrollAnimationMS
	m.cfg.Options.TUI = msg.Config.Options.TUI
	m.list.SetScrollAnimation(v.ScrollAnimation())
	return tea.Batch(
		m.list.SetBuffer(v.BufferAmount),
		m.layout(),
		util.ReportInfo("Configuration reloaded"),
	)
}

func (m *appModel) compact() bool {
	return m.cfg.Options.TUI != nil && m.cfg.Options.TUI.CompactMode
}

func (m *appModel) delegated() bool {
	return m.pane != nil || m.screen != nil
}

func (m *appModel) horizontal() bool {
	return m.cfg.Viewport.Orientation == config.OrientationHorizontal
}

// layout sizes the list and its target for the current terminal size and
// forces a pass so items are rendered at the new width.
func (m *appModel) layout() tea.Cmd {
	if m.width <= 0 || m.height <= 0 {
		return nil
	}
	var cmds []tea.Cmd
	if !m.ready {
		m.ready = true
		if m.delegated() && !m.horizontal() {
			cmds = append(cmds, m.list.SetPosition(0, len(m.leadLines())))
		}
	}

	rows := m.regionHeight()
	if m.pane != nil {
		m.pane.SetSize(m.width, rows)
	}
	if m.screen != nil {
		// the footer is not part of the scrolled screen
		cmds = append(cmds, m.screen.Resize(tea.WindowSizeMsg{Width: m.width, Height: rows}))
	}
	listHeight := rows
	if m.horizontal() {
		listHeight = max(0, rows-len(m.leadLines()))
	}
	cmds = append(cmds, m.list.SetSize(m.width, listHeight), m.list.Refresh(true))
	return tea.Batch(cmds...)
}

// regionHeight is the number of rows between header and footer. The screen
// target owns the header too.
func (m *appModel) regionHeight() int {
	h := m.height - m.footerHeight()
	if m.screen == nil {
		h -= headerHeight
	}
	return max(0, h)
}

func (m *appModel) footerHeight() int {
	if m.compact() {
		return 1
	}
	return 1 + lipgloss.Height(m.helpView())
}

// leadLines is the content scrolled together with the list before its first
// item.
func (m *appModel) leadLines() []string {
	if !m.delegated() {
		return nil
	}
	t := styles.CurrentTheme()
	kind := "pane"
	var lines []string
	if m.screen != nil {
		kind = "screen"
		lines = append(lines, m.headerView())
	}
	if m.horizontal() {
		return lines
	}
	return append(lines,
		t.S().Title.Render("Scrolling the "+kind),
		t.S().Muted.Render(ansi.Truncate("This banner scrolls away with the list below it.", m.width, "…")),
		"",
	)
}

func (m *appModel) renderItem(item source.Item, index int) string {
	t := styles.CurrentTheme()
	if m.horizontal() {
		width := m.cfg.Viewport.ChildWidth
		if width <= 0 {
			width = defaultCard
		}
		inner := max(1, width-4)
		card := t.S().Card
		return card.Width(width - card.GetHorizontalBorderSize()).Render(
			t.S().Base.Render(ansi.Truncate(item.Title, inner, "…")) + "\n" +
				t.S().Text.Render(ansi.Truncate(item.Detail, inner, "…")),
		)
	}

	line := t.S().Muted.Render(fmt.Sprintf("%*d ", m.indexSize, index+1)) +
		t.S().Base.Render(item.Title)
	if item.Detail != "" {
		line += " " + t.S().Text.Render(item.Detail)
	}
	line = ansi.Truncate(line, m.width, "…")
	return line + strings.Repeat(" ", max(0, m.width-ansi.StringWidth(line)))
}

func (m *appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	var sections []string
	if m.screen == nil {
		sections = append(sections, m.headerView())
	}
	sections = append(sections, m.regionView(), m.footerView())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *appModel) headerView() string {
	t := styles.CurrentTheme()
	header := t.S().Title.Render("vscroll")
	if m.title != "" {
		header += " " + t.S().Muted.Render(m.title)
	}
	return ansi.Truncate(header, m.width, "…")
}

// regionView draws the scrolled region: the lead lines still in view followed
// by the list.
func (m *appModel) regionView() string {
	rows := m.regionHeight()
	lead := m.leadLines()
	if !m.horizontal() && m.delegated() {
		offset := int(m.list.ScrollTarget().ScrollOffset(list.AxisY))
		lead = lead[min(offset, len(lead)):]
	}

	var body string
	if len(m.list.Items()) == 0 {
		caption := "No items"
		if m.pattern != "" {
			caption = fmt.Sprintf("Nothing matches %q", m.pattern)
		}
		body = m.logo.Render(m.width, max(0, rows-len(lead)), caption)
	} else {
		body = m.list.View()
	}

	lines := append(lead, strings.Split(body, "\n")...)
	if len(lines) > rows {
		lines = lines[:rows]
	}
	for len(lines) < rows {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) footerView() string {
	status := m.statusView()
	if m.compact() {
		return status
	}
	return status + "\n" + m.helpView()
}

func (m *appModel) statusView() string {
	t := styles.CurrentTheme()
	var left string
	switch {
	case m.filtering:
		left = m.filter.View()
	case m.status.Msg != "":
		style := t.S().Text
		switch m.status.Type {
		case util.InfoTypeWarn:
			style = style.Foreground(t.Warning)
		case util.InfoTypeError:
			style = style.Foreground(t.Error)
		}
		left = style.Render(m.status.Msg)
	case m.pattern != "":
		left = t.S().Muted.Render(fmt.Sprintf("filter: %s", m.pattern))
	}

	var right string
	if count, w := len(m.list.Items()), m.list.Window(); count > 0 && w.Len() > 0 {
		right = t.S().Muted.Render(fmt.Sprintf("%s-%s of %s",
			humanize.Comma(int64(w.Start+1)),
			humanize.Comma(int64(w.End)),
			humanize.Comma(int64(count)),
		))
	}

	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.width, "…")
}

func (m *appModel) helpView() string {
	if m.filtering {
		return m.help.View(filterKeyMap{m.keyMap})
	}
	return m.help.View(helpKeyMap{app: m.keyMap, list: m.listKeys})
}

// helpKeyMap shows the demo's keys next to the list's.
type helpKeyMap struct {
	app  KeyMap
	list list.KeyMap
}

func (k helpKeyMap) ShortHelp() []key.Binding {
	return append(k.list.ShortHelp()[:2:2], k.app.ShortHelp()...)
}

func (k helpKeyMap) FullHelp() [][]key.Binding {
	return append(k.list.FullHelp(), k.app.FullHelp()...)
}
