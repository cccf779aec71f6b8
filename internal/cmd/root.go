package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/charmbracelet/vscroll/internal/version"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
}

var rootCmd = &cobra.Command{
	Use:   "vscroll",
	Short: "Virtual scrolling for very large lists in the terminal",
	Long: heredoc.Doc(`
		vscroll renders only the part of a large collection that is in view.
		The window follows the scroll position of the list, an ancestor pane or
		the whole screen, and settles on the measured size of its items.
	`),
	Example: heredoc.Doc(`
		# Scroll through ten thousand generated items
		vscroll demo

		# Browse the Go files of a project in a grid of cards
		vscroll demo --dir . --glob '**/*.go' --horizontal --child-width 30

		# Print the window for a 40 row terminal scrolled to row 500
		vscroll window --height 40 --scroll 500 --format json
	`),
	SilenceUsage: true,
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
	); err != nil {
		os.Exit(1)
	}
}

// ResolveCwd changes into the --cwd directory when given and returns the
// working directory.
func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}

// loadConfig loads the configuration for the working directory and applies
// the viewport flags of cmd on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	cfg, err := config.Load(cwd, debug)
	if err != nil {
		return nil, err
	}
	applyViewportFlags(cmd, cfg.Viewport)
	if err := cfg.Viewport.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func addViewportFlags(cmd *cobra.Command) {
	cmd.Flags().String("target", "", "Scroll target: self, pane or screen")
	cmd.Flags().Bool("horizontal", false, "Scroll horizontally")
	cmd.Flags().Int("buffer", 0, "Extra items rendered on each side of the window")
	cmd.Flags().Int("child-width", 0, "Item width in cells, measured when zero")
	cmd.Flags().Int("child-height", 0, "Item height in cells, measured when zero")
	cmd.Flags().Int("animation", 0, "Scroll animation in milliseconds, zero jumps")
}

// applyViewportFlags overrides the settings whose flags were given.
func applyViewportFlags(cmd *cobra.Command, v *config.ViewportConfig) {
	flags := cmd.Flags()
	if flags.Changed("target") {
		target, _ := flags.GetString("target")
		v.ScrollTarget = config.ScrollTarget(target)
	}
	if flags.Changed("horizontal") {
		horizontal, _ := flags.GetBool("horizontal")
		v.Orientation = config.OrientationVertical
		if horizontal {
			v.Orientation = config.OrientationHorizontal
		}
	}
	if flags.Changed("buffer") {
		v.BufferAmount, _ = flags.GetInt("buffer")
	}
	if flags.Changed("child-width") {
		v.ChildWidth, _ = flags.GetInt("child-width")
	}
	if flags.Changed("child-height") {
		v.ChildHeight, _ = flags.GetInt("child-height")
	}
	if flags.Changed("animation") {
		ms, _ := flags.GetInt("animation")
		v.ScrollAnimationMS = &ms
	}
}
