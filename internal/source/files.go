package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
	ignore "github.com/sabhiram/go-gitignore"
)

type FilesOptions struct {
	// Glob filters files by their slash separated path relative to the
	// root, e.g. "**/*.go". Empty keeps every file.
	Glob string
	// Hidden includes dot files and directories.
	Hidden bool
}

// Files lists the files below root as items, sorted by path. Files ignored
// by the root's .gitignore are skipped.
func Files(ctx context.Context, root string, opts FilesOptions) ([]Item, error) {
	if opts.Glob != "" && !doublestar.ValidatePattern(opts.Glob) {
		return nil, fmt.Errorf("invalid glob pattern %q", opts.Glob)
	}

	var gitignore *ignore.GitIgnore
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		gitignore = gi
	} else if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .gitignore", "root", root, "error", err)
	}

	var (
		mu    sync.Mutex
		items []Item
	)
	conf := fastwalk.Config{
		Follow: false,
	}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Debug("Skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == ".git" || skip(rel, d, opts, gitignore) {
				return filepath.SkipDir
			}
			return nil
		}
		if skip(rel, d, opts, gitignore) {
			return nil
		}
		if opts.Glob != "" {
			if ok, _ := doublestar.Match(opts.Glob, rel); !ok {
				return nil
			}
		}

		var detail string
		if info, err := d.Info(); err == nil {
			detail = humanize.Bytes(uint64(info.Size()))
		}

		mu.Lock()
		items = append(items, Item{ID: rel, Title: rel, Detail: detail})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	slices.SortFunc(items, func(a, b Item) int {
		return strings.Compare(a.ID, b.ID)
	})
	return items, nil
}

func skip(rel string, d fs.DirEntry, opts FilesOptions, gitignore *ignore.GitIgnore) bool {
	if !opts.Hidden && strings.HasPrefix(d.Name(), ".") {
		return true
	}
	if gitignore == nil {
		return false
	}
	if d.IsDir() {
		return gitignore.MatchesPath(rel + "/")
	}
	return gitignore.MatchesPath(rel)
}
