package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/charmbracelet/vscroll/internal/log"
	"github.com/charmbracelet/vscroll/internal/tui/exp/list"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Print the settled window for a list geometry",
	Long: heredoc.Doc(`
		Run the windowing engine without a terminal UI: build a list of
		synthetic items, let it settle, scroll it and print the resulting
		window and geometry. Width and height default to the terminal size.
	`),
	Example: heredoc.Doc(`
		# Where does a 100 item list scrolled to row 50 start and end?
		vscroll window --count 100 --width 20 --height 10 --scroll 50

		# A grid of 5 cell wide items with a buffer, as YAML
		vscroll window --item-width 5 --buffer 2 --format yaml
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log.SetupConsole(cmd.ErrOrStderr(), cfg.Options.Debug)

		req := windowRequest{}
		flags := cmd.Flags()
		req.Count, _ = flags.GetInt("count")
		req.Width, _ = flags.GetInt("width")
		req.Height, _ = flags.GetInt("height")
		req.ItemWidth, _ = flags.GetInt("item-width")
		req.ItemHeight, _ = flags.GetInt("item-height")
		req.Scroll, _ = flags.GetFloat64("scroll")
		format, _ := flags.GetString("format")
		timeout, _ := flags.GetDuration("timeout")

		if req.Width <= 0 || req.Height <= 0 {
			w, h, err := term.GetSize(os.Stdout.Fd())
			if err != nil {
				w, h = defaultWidth, defaultHeight
			}
			if req.Width <= 0 {
				req.Width = w
			}
			if req.Height <= 0 {
				req.Height = h
			}
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		report, err := computeWindow(ctx, cfg.Viewport, req)
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), format, report)
	},
}

func init() {
	rootCmd.AddCommand(windowCmd)
	addViewportFlags(windowCmd)
	windowCmd.Flags().Int("count", 1000, "Number of items")
	windowCmd.Flags().Int("width", 0, "List width in cells, the terminal width when zero")
	windowCmd.Flags().Int("height", 0, "List height in cells, the terminal height when zero")
	windowCmd.Flags().Int("item-width", 0, "Width of the rendered items, the list width when zero")
	windowCmd.Flags().Int("item-height", 1, "Height of the rendered items")
	windowCmd.Flags().Float64("scroll", 0, "Scroll offset along the scroll axis")
	windowCmd.Flags().StringP("format", "f", "text", "Output format: text, json or yaml")
	windowCmd.Flags().Duration("timeout", 5*time.Second, "Give up when the list has not settled by then")
}

type windowRequest struct {
	Count      int
	Width      int
	Height     int
	ItemWidth  int
	ItemHeight int
	Scroll     float64
}

type windowReport struct {
	Items       int     `json:"items" yaml:"items"`
	Orientation string  `json:"orientation" yaml:"orientation"`
	Target      string  `json:"target" yaml:"target"`
	ViewWidth   float64 `json:"view_width" yaml:"view_width"`
	ViewHeight  float64 `json:"view_height" yaml:"view_height"`
	ChildWidth  float64 `json:"child_width" yaml:"child_width"`
	ChildHeight float64 `json:"child_height" yaml:"child_height"`
	PerLine     int     `json:"per_line" yaml:"per_line"`
	PerPage     int     `json:"per_page" yaml:"per_page"`
	Extent      float64 `json:"extent" yaml:"extent"`
	Scroll      float64 `json:"scroll" yaml:"scroll"`
	Buffer      int     `json:"buffer" yaml:"buffer"`
	Start       int     `json:"start" yaml:"start"`
	End         int     `json:"end" yaml:"end"`
	Translate   float64 `json:"translate" yaml:"translate"`
}

// syntheticItems returns count items rendered as width by height blocks.
func syntheticItems(count, width, height int) []string {
	items := make([]string, max(0, count))
	for i := range items {
		line := ansi.Truncate(fmt.Sprintf("%-*d", width, i), width, "")
		items[i] = strings.Repeat(line+"\n", max(1, height)-1) + line
	}
	return items
}

// windowModel drives a list until it settles, scrolls its target and waits
// for it to settle again.
type windowModel struct {
	list     *list.List[string]
	target   list.ScrollTarget
	axis     list.Axis
	scroll   float64
	scrolled bool
	done     bool
}

func (m *windowModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m *windowModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	_, cmd := m.list.Update(msg)
	return m, tea.Batch(cmd, m.next())
}

func (m *windowModel) next() tea.Cmd {
	if m.done || m.list.Stabilizing() || m.list.FramePending() {
		return nil
	}
	if !m.scrolled {
		m.scrolled = true
		if cmd := m.target.ScrollTo(m.axis, m.scroll); cmd != nil {
			return cmd
		}
	}
	m.done = true
	return tea.Quit
}

func (m *windowModel) View() string {
	return ""
}

// computeWindow runs a list over synthetic items in a headless program and
// reports where it settled.
func computeWindow(ctx context.Context, v *config.ViewportConfig, req windowRequest) (windowReport, error) {
	itemWidth := req.ItemWidth
	if itemWidth <= 0 {
		itemWidth = req.Width
	}

	opts := append(v.ListOptions(),
		list.WithSize(req.Width, req.Height),
		list.WithFrameInterval(0),
	)
	// the pane and screen stand in for the region the list would be placed
	// in, sized like the list itself
	target := config.ScrollTargetSelf
	switch v.ScrollTarget {
	case config.ScrollTargetPane:
		target = v.ScrollTarget
		opts = append(opts, list.WithScrollTarget(list.NewPane(req.Width, req.Height)))
	case config.ScrollTargetScreen:
		target = v.ScrollTarget
		opts = append(opts, list.WithScrollTarget(list.NewScreen(req.Width, req.Height)))
	}
	l := list.New(syntheticItems(req.Count, itemWidth, req.ItemHeight), opts...)
	defer l.Close()

	axis := list.AxisY
	if v.Orientation == config.OrientationHorizontal {
		axis = list.AxisX
	}
	m := &windowModel{list: l, target: l.ScrollTarget(), axis: axis, scroll: req.Scroll}

	program := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
		tea.WithoutSignalHandler(),
	)
	if _, err := program.Run(); err != nil {
		return windowReport{}, fmt.Errorf("failed to compute window: %w", err)
	}
	if !m.done {
		return windowReport{}, fmt.Errorf("list did not settle")
	}

	g := l.Geometry()
	w := l.Window()
	return windowReport{
		Items:       g.Count,
		Orientation: string(v.Orientation),
		Target:      string(target),
		ViewWidth:   g.View.Width,
		ViewHeight:  g.View.Height,
		ChildWidth:  g.Child.Width,
		ChildHeight: g.Child.Height,
		PerLine:     g.PerLine,
		PerPage:     g.PerPage,
		Extent:      g.Extent,
		Scroll:      m.target.ScrollOffset(axis),
		Buffer:      v.BufferAmount,
		Start:       w.Start,
		End:         w.End,
		Translate:   l.Translate(),
	}, nil
}

func writeReport(w io.Writer, format string, r windowReport) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return enc.Close()
	case "text", "":
		num := func(f float64) string {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		rows := [][2]string{
			{"items", strconv.Itoa(r.Items)},
			{"orientation", r.Orientation},
			{"target", r.Target},
			{"view", num(r.ViewWidth) + "x" + num(r.ViewHeight)},
			{"child", num(r.ChildWidth) + "x" + num(r.ChildHeight)},
			{"per line", strconv.Itoa(r.PerLine)},
			{"per page", strconv.Itoa(r.PerPage)},
			{"extent", num(r.Extent)},
			{"scroll", num(r.Scroll)},
			{"buffer", strconv.Itoa(r.Buffer)},
			{"window", fmt.Sprintf("[%d, %d)", r.Start, r.End)},
			{"translate", num(r.Translate)},
		}
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%-12s%s\n", row[0], row[1]); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q, use text, json or yaml", format)
}
