package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MakeNowJust/heredoc"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/charmbracelet/vscroll/internal/log"
	"github.com/charmbracelet/vscroll/internal/source"
	"github.com/charmbracelet/vscroll/internal/tui"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Scroll through a large collection interactively",
	Long: heredoc.Doc(`
		Open a virtual list over generated items, the files of a directory, the
		output of a command or the lines of a followed file. Only the items in
		view are rendered.

		Followed files are shown newest first; the items you are looking at
		stay in place while new lines arrive.
	`),
	Example: heredoc.Doc(`
		# Ten thousand generated items
		vscroll demo

		# A million items scrolled by the whole screen
		vscroll demo --count 1000000 --target screen

		# Files of a project, hidden files included
		vscroll demo --dir ~/src/project --hidden

		# Follow a log file
		vscroll demo --follow /var/log/system.log

		# The output of a command, one item per line
		vscroll demo --exec 'seq 1 100000'
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if mouse, _ := cmd.Flags().GetBool("mouse"); mouse {
			cfg.Viewport.Mouse = true
		}
		log.Setup(cfg.DataLogFile(), cfg.Options.Debug)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		opts, err := demoSource(ctx, cmd, cfg)
		if err != nil {
			return err
		}

		programOpts := []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithContext(ctx),
		}
		if cfg.Viewport.Mouse {
			programOpts = append(programOpts, tea.WithMouseCellMotion())
		}
		program := tea.NewProgram(tui.New(cfg, opts), programOpts...)

		if w, err := config.NewWatcher(cfg.WorkingDir(), cfg.Options.Debug); err != nil {
			slog.Warn("Config changes will not be picked up", "error", err)
		} else {
			defer w.Close()
			go func() {
				defer log.RecoverPanic("config-watcher", nil)
				w.Run(ctx, func(reloaded *config.Config, err error) {
					if reloaded != nil {
						applyViewportFlags(cmd, reloaded.Viewport)
					}
					program.Send(tui.ConfigReloadedMsg{Config: reloaded, Err: err})
				})
			}()
		}

		if _, err := program.Run(); err != nil {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("TUI error: %v", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addViewportFlags(demoCmd)
	demoCmd.Flags().Int("count", 0, "Number of generated items")
	demoCmd.Flags().Uint64("seed", 0, "Seed for generated items and random jumps, random when zero")
	demoCmd.Flags().String("dir", "", "List the files below this directory")
	demoCmd.Flags().String("glob", "", "Only list files matching this pattern, e.g. '**/*.go'")
	demoCmd.Flags().Bool("hidden", false, "Include hidden files")
	demoCmd.Flags().String("follow", "", "Follow the lines appended to this file")
	demoCmd.Flags().StringP("exec", "e", "", "List the output lines of this shell command")
	demoCmd.Flags().Bool("mouse", false, "Scroll with the mouse wheel")
	demoCmd.MarkFlagsMutuallyExclusive("count", "dir", "follow", "exec")
}

// demoSource builds the collection selected by the flags, falling back to the
// source options of the configuration.
func demoSource(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (tui.Options, error) {
	flags := cmd.Flags()
	src := *cfg.Options.Source
	if flags.Changed("count") {
		src.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("glob") {
		src.Glob, _ = flags.GetString("glob")
	}
	if flags.Changed("hidden") {
		src.Hidden, _ = flags.GetBool("hidden")
	}
	seed, _ := flags.GetUint64("seed")
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	dir, _ := flags.GetString("dir")
	follow, _ := flags.GetString("follow")
	command, _ := flags.GetString("exec")

	switch {
	case follow != "":
		lines, err := source.Follow(ctx, follow)
		if err != nil {
			return tui.Options{}, err
		}
		return tui.Options{
			Title:  "following " + follow,
			Follow: lines,
			Seed:   seed,
		}, nil
	case command != "":
		items, err := source.Command(ctx, cfg.WorkingDir(), command)
		if err != nil {
			return tui.Options{}, err
		}
		return tui.Options{
			Title: fmt.Sprintf("%s lines of %s", humanize.Comma(int64(len(items))), command),
			Items: items,
			Seed:  seed,
		}, nil
	case dir != "":
		items, err := source.Files(ctx, dir, source.FilesOptions{Glob: src.Glob, Hidden: src.Hidden})
		if err != nil {
			return tui.Options{}, err
		}
		slog.Debug("Listed files", "dir", dir, "count", len(items))
		return tui.Options{
			Title: fmt.Sprintf("%s files in %s", humanize.Comma(int64(len(items))), dir),
			Items: items,
			Seed:  seed,
		}, nil
	default:
		items := source.Generate(src.Count, seed)
		return tui.Options{
			Title: fmt.Sprintf("%s generated items", humanize.Comma(int64(len(items)))),
			Items: items,
			Seed:  seed,
		}, nil
	}
}
