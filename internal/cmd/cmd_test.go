package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/vscroll/internal/config"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertical() *config.ViewportConfig {
	return &config.ViewportConfig{
		Orientation:  config.OrientationVertical,
		ScrollTarget: config.ScrollTargetSelf,
	}
}

func TestWindowReport(t *testing.T) {
	t.Parallel()

	report, err := computeWindow(t.Context(), vertical(), windowRequest{
		Count:      100,
		Width:      20,
		Height:     10,
		ItemHeight: 1,
		Scroll:     50,
	})
	require.NoError(t, err)

	for _, format := range []string{"text", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			require.NoError(t, writeReport(&buf, format, report))
			golden.RequireEqual(t, buf.Bytes())
		})
	}

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()
		require.Error(t, writeReport(&bytes.Buffer{}, "xml", report))
	})
}

func TestComputeWindow(t *testing.T) {
	t.Parallel()

	t.Run("grid", func(t *testing.T) {
		t.Parallel()
		report, err := computeWindow(t.Context(), vertical(), windowRequest{
			Count:      100,
			Width:      20,
			Height:     10,
			ItemWidth:  5,
			ItemHeight: 1,
			Scroll:     10,
		})
		require.NoError(t, err)
		assert.Equal(t, 4, report.PerLine)
		assert.Equal(t, 25.0, report.Extent)
		assert.Equal(t, 40, report.Start)
		assert.Equal(t, 84, report.End)
		assert.Equal(t, 10.0, report.Translate)
	})

	t.Run("buffer", func(t *testing.T) {
		t.Parallel()
		v := vertical()
		v.BufferAmount = 2
		report, err := computeWindow(t.Context(), v, windowRequest{
			Count:      100,
			Width:      20,
			Height:     10,
			ItemHeight: 1,
			Scroll:     50,
		})
		require.NoError(t, err)
		assert.Equal(t, 48, report.Start)
		assert.Equal(t, 63, report.End)
		assert.Equal(t, 48.0, report.Translate)
	})

	t.Run("scroll is clamped", func(t *testing.T) {
		t.Parallel()
		report, err := computeWindow(t.Context(), vertical(), windowRequest{
			Count:      100,
			Width:      20,
			Height:     10,
			ItemHeight: 1,
			Scroll:     5000,
		})
		require.NoError(t, err)
		assert.Equal(t, 90.0, report.Scroll)
		assert.Equal(t, 89, report.Start)
		assert.Equal(t, 100, report.End)
	})

	for _, target := range []config.ScrollTarget{config.ScrollTargetPane, config.ScrollTargetScreen} {
		t.Run(string(target), func(t *testing.T) {
			t.Parallel()
			v := vertical()
			v.ScrollTarget = target
			report, err := computeWindow(t.Context(), v, windowRequest{
				Count:      100,
				Width:      20,
				Height:     10,
				ItemHeight: 1,
				Scroll:     50,
			})
			require.NoError(t, err)
			assert.Equal(t, string(target), report.Target)
			assert.Equal(t, 50.0, report.Scroll)
			assert.Equal(t, 50, report.Start)
			assert.Equal(t, 61, report.End)
		})
	}

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		report, err := computeWindow(t.Context(), vertical(), windowRequest{
			Width:      20,
			Height:     10,
			ItemHeight: 1,
		})
		require.NoError(t, err)
		assert.Zero(t, report.Items)
		assert.Zero(t, report.End)
	})
}

func TestSyntheticItems(t *testing.T) {
	t.Parallel()

	items := syntheticItems(12, 3, 2)
	require.Len(t, items, 12)
	assert.Equal(t, "0  \n0  ", items[0])
	assert.Equal(t, "11 \n11 ", items[11])
	assert.Equal(t, "12", strings.TrimSpace(syntheticItems(13, 4, 0)[12]))
	assert.Equal(t, "10", syntheticItems(11, 2, 1)[10])
	assert.Equal(t, "1", syntheticItems(11, 1, 1)[10], "truncated to the item width")
	assert.Empty(t, syntheticItems(-1, 4, 1))
}

// isolate points the config locations at temporary directories and makes a
// fresh working directory current.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, k := range []string{"VSCROLL_ORIENTATION", "VSCROLL_SCROLL_TARGET", "VSCROLL_BUFFER", "VSCROLL_SCROLL_ANIMATION_MS", "VSCROLL_DEBUG"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestWindowCommand(t *testing.T) {
	isolate(t)
	out := execute(t, "window", "--count", "100", "--width", "20", "--height", "10", "--scroll", "50")
	golden.RequireEqual(t, []byte(out))
}

func TestWindowCommandTarget(t *testing.T) {
	isolate(t)
	t.Cleanup(func() {
		f := windowCmd.Flags().Lookup("target")
		_ = f.Value.Set("")
		f.Changed = false
	})

	out := execute(t, "window", "--count", "100", "--width", "20", "--height", "10", "--scroll", "50", "--target", "pane")
	assert.Contains(t, out, "target      pane\n")
	assert.Contains(t, out, "window      [50, 61)\n")
}

func TestDirsCommand(t *testing.T) {
	isolate(t)
	out := execute(t, "dirs", "--config")
	assert.Equal(t, filepath.Dir(config.GlobalConfig())+"\n", out)
}

func TestInitCommand(t *testing.T) {
	dir := isolate(t)

	out := execute(t, "init")
	assert.Contains(t, out, config.ProjectConfigFilename)
	_, err := os.Stat(filepath.Join(dir, config.ProjectConfigFilename))
	require.NoError(t, err)

	out = execute(t, "init")
	assert.Contains(t, out, "already initialized")
}

func TestApplyViewportFlags(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "test"}
	addViewportFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--horizontal", "--buffer", "3", "--animation", "0", "--target", "screen"}))

	v := vertical()
	v.ChildWidth = 7
	applyViewportFlags(cmd, v)
	assert.Equal(t, config.OrientationHorizontal, v.Orientation)
	assert.Equal(t, 3, v.BufferAmount)
	assert.Equal(t, 7, v.ChildWidth)
	assert.Equal(t, config.ScrollTargetScreen, v.ScrollTarget)
	require.NotNil(t, v.ScrollAnimationMS)
	assert.Zero(t, *v.ScrollAnimationMS)
}
