package styles

import (
	"image/color"
	"sync"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

type Theme struct {
	Name   string
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Tertiary  color.Color

	BgBase   color.Color
	BgSubtle color.Color

	FgBase      color.Color
	FgMuted     color.Color
	FgHalfMuted color.Color
	FgSelected  color.Color

	Border      color.Color
	BorderFocus color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	styles     *Styles
	stylesOnce sync.Once
}

type Styles struct {
	Base  lipgloss.Style
	Muted lipgloss.Style
	Text  lipgloss.Style
	Title lipgloss.Style

	// Card is the box drawn around items of a horizontal list.
	Card lipgloss.Style

	Help help.Styles
}

var (
	current     *Theme
	currentOnce sync.Once
)

// CurrentTheme returns the theme the UI draws with.
func CurrentTheme() *Theme {
	currentOnce.Do(func() {
		current = NewCharmtoneTheme()
	})
	return current
}

func NewCharmtoneTheme() *Theme {
	return &Theme{
		Name:   "charmtone",
		IsDark: true,

		Primary:   charmtone.Charple,
		Secondary: charmtone.Dolly,
		Tertiary:  charmtone.Bok,

		BgBase:   charmtone.Pepper,
		BgSubtle: charmtone.Charcoal,

		FgBase:      charmtone.Ash,
		FgMuted:     charmtone.Squid,
		FgHalfMuted: charmtone.Smoke,
		FgSelected:  charmtone.Salt,

		Border:      charmtone.Charcoal,
		BorderFocus: charmtone.Charple,

		Success: charmtone.Guac,
		Error:   charmtone.Sriracha,
		Warning: charmtone.Zest,
		Info:    charmtone.Malibu,
	}
}

// S returns the styles derived from the theme's colors.
func (t *Theme) S() *Styles {
	t.stylesOnce.Do(func() {
		t.styles = t.buildStyles()
	})
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)
	return &Styles{
		Base:  base,
		Muted: base.Foreground(t.FgMuted),
		Text:  base.Foreground(t.FgHalfMuted),
		Title: base.Foreground(t.Primary).Bold(true),
		Card: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Help: help.Styles{
			ShortKey:       base.Foreground(t.FgMuted),
			ShortDesc:      base.Foreground(t.FgHalfMuted),
			ShortSeparator: base.Foreground(t.Border),
			Ellipsis:       base.Foreground(t.Border),
			FullKey:        base.Foreground(t.FgMuted),
			FullDesc:       base.Foreground(t.FgHalfMuted),
			FullSeparator:  base.Foreground(t.Border),
		},
	}
}
