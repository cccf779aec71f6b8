package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/vscroll/internal/tui/exp/list"
	"github.com/tidwall/sjson"
)

const (
	appName              = "vscroll"
	defaultDataDirectory = ".vscroll"
	defaultItemCount     = 10_000
)

type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

type ScrollTarget string

const (
	// ScrollTargetSelf makes the list scroll inside its own pane.
	ScrollTargetSelf ScrollTarget = "self"
	// ScrollTargetPane places the list inside a scrolling region below a
	// header.
	ScrollTargetPane ScrollTarget = "pane"
	// ScrollTargetScreen scrolls the whole terminal.
	ScrollTargetScreen ScrollTarget = "screen"
)

type ViewportConfig struct {
	Orientation Orientation `json:"orientation,omitempty" jsonschema:"enum=vertical,enum=horizontal,default=vertical"`
	// Zero means measured from the first rendered item.
	ChildWidth  int `json:"child_width,omitempty" jsonschema:"minimum=0"`
	ChildHeight int `json:"child_height,omitempty" jsonschema:"minimum=0"`
	// Extra items rendered on each side of the window.
	BufferAmount int `json:"buffer_amount,omitempty" jsonschema:"minimum=0"`
	// Nil keeps the default; zero disables the animation.
	ScrollAnimationMS *int         `json:"scroll_animation_ms,omitempty" jsonschema:"minimum=0"`
	ScrollbarWidth    int          `json:"scrollbar_width,omitempty" jsonschema:"minimum=0"`
	ScrollbarHeight   int          `json:"scrollbar_height,omitempty" jsonschema:"minimum=0"`
	ScrollTarget      ScrollTarget `json:"scroll_target,omitempty" jsonschema:"enum=self,enum=pane,enum=screen,default=self"`
	FrameMS           int          `json:"frame_ms,omitempty" jsonschema:"minimum=0"`
	Mouse             bool         `json:"mouse,omitempty"`
}

type TUIOptions struct {
	CompactMode bool `json:"compact_mode,omitempty"`
}

type SourceOptions struct {
	Count  int    `json:"count,omitempty" jsonschema:"minimum=0"`
	Glob   string `json:"glob,omitempty"`
	Hidden bool   `json:"hidden,omitempty"`
}

type Options struct {
	TUI           *TUIOptions    `json:"tui,omitempty"`
	Source        *SourceOptions `json:"source,omitempty"`
	Debug         bool           `json:"debug,omitempty"`
	DataDirectory string         `json:"data_directory,omitempty"` // Relative to the cwd
}

// Config holds the configuration for vscroll.
type Config struct {
	Viewport *ViewportConfig `json:"viewport,omitempty"`

	Options *Options `json:"options,omitempty"`

	// Internal
	workingDir    string `json:"-"`
	dataConfigDir string `json:"-"`
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// Validate reports the first invalid viewport setting.
func (v *ViewportConfig) Validate() error {
	switch v.Orientation {
	case "", OrientationVertical, OrientationHorizontal:
	default:
		return fmt.Errorf("invalid orientation %q", v.Orientation)
	}
	switch v.ScrollTarget {
	case "", ScrollTargetSelf, ScrollTargetPane, ScrollTargetScreen:
	default:
		return fmt.Errorf("invalid scroll target %q", v.ScrollTarget)
	}
	for name, n := range map[string]int{
		"child_width":      v.ChildWidth,
		"child_height":     v.ChildHeight,
		"buffer_amount":    v.BufferAmount,
		"scrollbar_width":  v.ScrollbarWidth,
		"scrollbar_height": v.ScrollbarHeight,
		"frame_ms":         v.FrameMS,
	} {
		if n < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, n)
		}
	}
	if v.ScrollAnimationMS != nil && *v.ScrollAnimationMS < 0 {
		return fmt.Errorf("scroll_animation_ms must not be negative, got %d", *v.ScrollAnimationMS)
	}
	return nil
}

// ScrollAnimation is the configured animation duration.
func (v *ViewportConfig) ScrollAnimation() time.Duration {
	if v.ScrollAnimationMS == nil {
		return list.DefaultScrollAnimation
	}
	return time.Duration(*v.ScrollAnimationMS) * time.Millisecond
}

// ListOptions maps the viewport settings to list options. The scroll target
// is not included; the caller owns the target instance.
func (v *ViewportConfig) ListOptions() []list.ListOption {
	opts := []list.ListOption{
		list.WithBuffer(v.BufferAmount),
		list.WithScrollAnimation(v.ScrollAnimation()),
		list.WithScrollbar(v.ScrollbarWidth, v.ScrollbarHeight),
	}
	if v.Orientation == OrientationHorizontal {
		opts = append(opts, list.WithHorizontal())
	}
	if v.ChildWidth > 0 {
		opts = append(opts, list.WithChildWidth(v.ChildWidth))
	}
	if v.ChildHeight > 0 {
		opts = append(opts, list.WithChildHeight(v.ChildHeight))
	}
	if v.FrameMS > 0 {
		opts = append(opts, list.WithFrameInterval(time.Duration(v.FrameMS)*time.Millisecond))
	}
	if v.Mouse {
		opts = append(opts, list.WithEnableMouse())
	}
	return opts
}

func (c *Config) SetCompactMode(enabled bool) error {
	if c.Options == nil {
		c.Options = &Options{}
	}
	if c.Options.TUI == nil {
		c.Options.TUI = &TUIOptions{}
	}
	c.Options.TUI.CompactMode = enabled
	return c.SetConfigField("options.tui.compact_mode", enabled)
}

func (c *Config) SetConfigField(key string, value any) error {
	// read the data
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
